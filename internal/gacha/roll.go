package gacha

import "slices"

// PoolEntry is one candidate of a roll with its adjusted rarity.
type PoolEntry struct {
	Aura     string
	Rarity   int // base rarity
	Adjusted int // 1-in-N after biome, weather and luck
}

// RollOutcome describes the result of a single roll.
type RollOutcome struct {
	Index    int // value of total_rolls for this roll
	Aura     string
	Rarity   int
	Shiny    bool
	Fallback bool // the attempt bound ran out and the fallback aura was forced
	Tier     Tier
	Biome    string
	Weather  string
}

// Name returns the collected name, with the shiny prefix when shiny.
func (o RollOutcome) Name() string {
	if o.Shiny {
		return ShinyName(o.Aura)
	}
	return o.Aura
}

// Modifiers returns the rarity multipliers of the current biome and weather.
// Unknown names count as 1.
func (e *Engine) Modifiers() (biome, weather float64) {
	biome, weather = 1.0, 1.0
	if b, ok := e.catalog.Biome(e.state.CurrentBiome); ok {
		biome = b.Modifier
	}
	if w, ok := e.catalog.WeatherByName(e.state.CurrentWeather); ok {
		weather = w.Modifier()
	}
	return biome, weather
}

// RollPool returns the candidates the next roll would draw from in the
// current biome and weather. It never returns an empty pool.
func (e *Engine) RollPool() []PoolEntry {
	biomeMod, weatherMod := e.Modifiers()
	luck := e.LuckMultiplier()

	var pool []PoolEntry
	for _, a := range e.catalog.Auras {
		if !a.SpawnsIn(e.state.CurrentBiome) {
			continue
		}
		pool = append(pool, PoolEntry{
			Aura:     a.Name,
			Rarity:   a.Rarity,
			Adjusted: adjustedRarity(a.Rarity, biomeMod, weatherMod, luck),
		})
	}
	if len(pool) == 0 {
		fb := e.catalog.LowestRarityAura()
		pool = append(pool, PoolEntry{
			Aura:     fb.Name,
			Rarity:   fb.Rarity,
			Adjusted: adjustedRarity(fb.Rarity, biomeMod, weatherMod, luck),
		})
	}
	return pool
}

// RollOnce performs one roll.
func (e *Engine) RollOnce() RollOutcome {
	var out RollOutcome
	_ = e.perform(func() error {
		out = e.roll()
		return nil
	})
	return out
}

// RollMultiple performs n rolls back to back. Each roll keeps the full
// single-roll ordering.
func (e *Engine) RollMultiple(n int) []RollOutcome {
	if n <= 0 {
		return nil
	}
	out := make([]RollOutcome, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.RollOnce())
	}
	return out
}

func (e *Engine) roll() RollOutcome {
	st := e.state
	st.TotalRolls++
	e.UpdateBiomeAndWeather()

	pool := e.RollPool()
	attempts := len(pool) * e.catalog.Settings.AttemptFactor
	for i := 0; i < attempts; i++ {
		idx := e.rng.IntN(len(pool))
		entry := pool[idx]
		if e.rng.IntN(entry.Adjusted)+1 == 1 {
			shiny := e.rng.IntN(e.ShinyChance())+1 == 1
			return e.award(entry.Aura, entry.Rarity, shiny, false)
		}
		if len(pool) > 1 {
			pool = slices.Delete(pool, idx, idx+1)
		}
	}

	fb := e.catalog.LowestRarityAura()
	return e.award(fb.Name, fb.Rarity, false, true)
}

func (e *Engine) award(aura string, rarity int, shiny, fallback bool) RollOutcome {
	st := e.state
	out := RollOutcome{
		Index:    st.TotalRolls,
		Aura:     aura,
		Rarity:   rarity,
		Shiny:    shiny,
		Fallback: fallback,
		Tier:     e.tierOf(rarity),
		Biome:    st.CurrentBiome,
		Weather:  st.CurrentWeather,
	}
	if shiny {
		st.ShinyAuraCounts[ShinyName(aura)]++
		e.emit(EventShiny, out.Name(), "")
	} else {
		st.AuraCounts[aura]++
		e.emit(EventRolled, aura, string(out.Tier))
	}
	st.appendRollLog(RollLogEntry{Index: st.TotalRolls, Aura: out.Name()}, e.catalog.Settings.RollLogCap)
	e.logger.Debug("roll", "index", out.Index, "aura", out.Name(), "fallback", fallback)
	return out
}
