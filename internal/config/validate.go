package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and cross references between
// catalog sections. All problems are reported together.
func Validate(cat *Catalog) error {
	if err := validate.Struct(cat); err != nil {
		return fmt.Errorf("config: invalid catalog: %w", err)
	}

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	biomes := make(map[string]bool, len(cat.Biomes))
	for _, b := range cat.Biomes {
		if biomes[b.Name] {
			fail("duplicate biome %q", b.Name)
		}
		biomes[b.Name] = true
	}

	weather := make(map[string]bool, len(cat.Weather))
	for _, w := range cat.Weather {
		if weather[w.Name] {
			fail("duplicate weather %q", w.Name)
		}
		weather[w.Name] = true
	}

	auras := make(map[string]bool, len(cat.Auras))
	for _, a := range cat.Auras {
		if auras[a.Name] {
			fail("duplicate aura %q", a.Name)
		}
		auras[a.Name] = true
		for _, b := range a.Biomes {
			if !biomes[b] {
				fail("aura %q spawns in unknown biome %q", a.Name, b)
			}
		}
	}

	items := make(map[string]bool, len(cat.Items))
	for _, it := range cat.Items {
		if items[it.Name] {
			fail("duplicate item %q", it.Name)
		}
		if auras[it.Name] {
			fail("item %q shares a name with an aura", it.Name)
		}
		items[it.Name] = true
		if it.Effect != "" && it.DurationSeconds <= 0 {
			fail("item %q has effect %q but no duration", it.Name, it.Effect)
		}
	}

	if !biomes[cat.Settings.DefaultBiome] {
		fail("default biome %q is not defined", cat.Settings.DefaultBiome)
	}
	if !weather[cat.Settings.DefaultWeather] {
		fail("default weather %q is not defined", cat.Settings.DefaultWeather)
	}

	tiers := make(map[string]bool, len(cat.Shop))
	for _, tier := range cat.Shop {
		if tiers[tier.Name] {
			fail("duplicate shop tier %q", tier.Name)
		}
		tiers[tier.Name] = true
		for _, si := range tier.Items {
			if !items[si.Name] {
				fail("shop tier %q sells unknown item %q", tier.Name, si.Name)
			}
			if si.RequiredAura != "" && !auras[si.RequiredAura] {
				fail("shop item %q requires unknown aura %q", si.Name, si.RequiredAura)
			}
		}
	}

	recipes := make(map[string]bool, len(cat.Recipes))
	for _, r := range cat.Recipes {
		if recipes[r.Name] {
			fail("duplicate recipe %q", r.Name)
		}
		recipes[r.Name] = true
		if !items[r.Name] {
			fail("recipe %q produces unknown item", r.Name)
		}
		for _, m := range r.Requires {
			if !auras[m.Name] && !items[m.Name] {
				fail("recipe %q needs unknown material %q", r.Name, m.Name)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}
