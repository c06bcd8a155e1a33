package gacha

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/auraroll/internal/config"
)

// ErrInvalidItem is returned when an inventory slot does not exist.
var ErrInvalidItem = errors.New("invalid item choice")

// At most one tiered luck effect applies; the first present wins.
var tieredLuck = []struct {
	effect string
	mult   float64
}{
	{config.EffectGodmode, 100},
	{config.EffectUltimateLuck, 50},
	{config.EffectMegaLuck, 25},
	{config.EffectLuck, 10},
}

// Bonus effects stack with each other and with the tiered pick.
var bonusLuck = []struct {
	effect string
	mult   float64
}{
	{config.EffectRareBoost, 5},
	{config.EffectShinyBoost, 3},
	{config.EffectBiomeLuck, 2},
}

// ActiveEffect is a running timed effect.
type ActiveEffect struct {
	Item      string
	Effect    string
	ExpiresAt float64
	Remaining float64 // seconds
}

// ActiveEffects lists unexpired effects, soonest expiry first.
func (e *Engine) ActiveEffects() []ActiveEffect {
	now := e.now()
	var out []ActiveEffect
	for item, exp := range e.state.ItemEffects {
		if exp <= now {
			continue
		}
		def, _ := e.catalog.Item(item)
		out = append(out, ActiveEffect{Item: item, Effect: def.Effect, ExpiresAt: exp, Remaining: exp - now})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpiresAt != out[j].ExpiresAt {
			return out[i].ExpiresAt < out[j].ExpiresAt
		}
		return out[i].Item < out[j].Item
	})
	return out
}

func (e *Engine) activeEffectTypes() map[string]bool {
	types := make(map[string]bool)
	for _, a := range e.ActiveEffects() {
		if a.Effect != "" {
			types[a.Effect] = true
		}
	}
	return types
}

// LuckMultiplier combines the active effect types into the divisor applied
// to every rarity. It is 1 with no effects.
func (e *Engine) LuckMultiplier() float64 {
	types := e.activeEffectTypes()
	mult := 1.0
	for _, t := range tieredLuck {
		if types[t.effect] {
			mult *= t.mult
			break
		}
	}
	for _, b := range bonusLuck {
		if types[b.effect] {
			mult *= b.mult
		}
	}
	return mult
}

// ShinyChance returns N for the 1-in-N shiny sub-roll.
func (e *Engine) ShinyChance() int {
	types := e.activeEffectTypes()
	set := e.catalog.Settings
	switch {
	case types[config.EffectGodmode]:
		return set.GodmodeShinyChance
	case types[config.EffectShinyBoost]:
		return set.BoostedShinyChance
	default:
		return set.ShinyChance
	}
}

// ApplyItemEffects removes every effect whose expiry has passed and
// returns the expired item names.
func (e *Engine) ApplyItemEffects() []string {
	now := e.now()
	var expired []string
	for item, exp := range e.state.ItemEffects {
		if exp <= now {
			expired = append(expired, item)
		}
	}
	sort.Strings(expired)
	for _, item := range expired {
		delete(e.state.ItemEffects, item)
		e.emit(EventEffectExpired, item, "")
	}
	return expired
}

// UsedItem reports what using an inventory item did.
type UsedItem struct {
	Item     string
	Effect   string // empty for flavor items
	Duration float64
}

// UseItem consumes the inventory item at index (0-based). Effect items
// start or refresh their timer; other items are consumed with no effect.
func (e *Engine) UseItem(index int) (UsedItem, error) {
	var used UsedItem
	err := e.perform(func() error {
		st := e.state
		if index < 0 || index >= len(st.ItemInventory) {
			return fmt.Errorf("%w: %d", ErrInvalidItem, index+1)
		}
		item := st.ItemInventory[index]
		st.ItemInventory = append(st.ItemInventory[:index:index], st.ItemInventory[index+1:]...)
		used.Item = item

		def, ok := e.catalog.Item(item)
		if !ok || !def.HasEffect() {
			e.emit(EventItemUsed, item, "")
			return nil
		}
		if st.ItemEffects == nil {
			st.ItemEffects = make(map[string]float64)
		}
		st.ItemEffects[item] = e.now() + def.DurationSeconds
		used.Effect = def.Effect
		used.Duration = def.DurationSeconds
		e.emit(EventEffectStarted, item, fmt.Sprintf("%s boost for %.0f seconds!", def.Effect, def.DurationSeconds))
		return nil
	})
	return used, err
}
