package gacha

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/auraroll/internal/config"
)

// ErrUnknownRecipe is returned when no recipe has the requested name.
var ErrUnknownRecipe = errors.New("unknown recipe")

// Shortfall is one unmet recipe requirement.
type Shortfall struct {
	Material string
	Have     int
	Need     int
}

// MissingMaterialsError lists every unmet requirement of a recipe.
type MissingMaterialsError struct {
	Recipe  string
	Missing []Shortfall
}

func (e *MissingMaterialsError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s x%d (have %d)", m.Material, m.Need, m.Have)
	}
	return fmt.Sprintf("cannot craft %s: missing %s", e.Recipe, strings.Join(parts, ", "))
}

// Recipes returns the catalog recipes in order.
func (e *Engine) Recipes() []config.RecipeDefinition {
	return e.catalog.Recipes
}

// materialCount returns how many of a material the player holds. Aura
// names count from aura_counts, anything else from the inventory.
func (e *Engine) materialCount(name string) int {
	if _, ok := e.catalog.Aura(name); ok {
		return e.state.AuraCounts[name]
	}
	return e.state.ItemCount(name)
}

// Shortfalls lists the unmet requirements of a recipe, in recipe order.
func (e *Engine) Shortfalls(r config.RecipeDefinition) []Shortfall {
	var missing []Shortfall
	for _, m := range r.Requires {
		if have := e.materialCount(m.Name); have < m.Quantity {
			missing = append(missing, Shortfall{Material: m.Name, Have: have, Need: m.Quantity})
		}
	}
	return missing
}

// Craft consumes a recipe's materials and adds the crafted item to the
// inventory. Nothing is consumed unless every requirement is met.
func (e *Engine) Craft(name string) (string, error) {
	var crafted string
	err := e.perform(func() error {
		r, ok := e.catalog.Recipe(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRecipe, name)
		}
		if missing := e.Shortfalls(r); len(missing) > 0 {
			return &MissingMaterialsError{Recipe: r.Name, Missing: missing}
		}

		st := e.state
		for _, m := range r.Requires {
			if _, ok := e.catalog.Aura(m.Name); ok {
				st.AuraCounts[m.Name] -= m.Quantity
			} else {
				st.removeItems(m.Name, m.Quantity)
			}
		}
		st.ItemInventory = append(st.ItemInventory, r.Name)
		crafted = r.Name
		e.emit(EventCrafted, r.Name, "")
		return nil
	})
	return crafted, err
}
