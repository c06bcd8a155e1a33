// Package config provides the YAML-based static catalog for auraroll:
// auras, biomes, weather, shop tiers, effect items, recipes and the
// tunable settings that drive the roll engine.
package config

import "strings"

// Effect types recognized by the luck and shiny ladders.
const (
	EffectLuck         = "luck"
	EffectMegaLuck     = "mega_luck"
	EffectUltimateLuck = "ultimate_luck"
	EffectGodmode      = "godmode"
	EffectRareBoost    = "rare_boost"
	EffectShinyBoost   = "shiny_boost"
	EffectBiomeLuck    = "biome_luck"
)

// Weather classes and the rarity modifier each one applies.
const (
	WeatherNormal      = "normal"
	WeatherMild        = "mild"
	WeatherUnfavorable = "unfavorable"
)

// Catalog is the complete static game definition.
type Catalog struct {
	Settings Settings            `yaml:"settings"`
	Auras    []AuraDefinition    `yaml:"auras" validate:"required,min=1,dive"`
	Biomes   []BiomeDefinition   `yaml:"biomes" validate:"required,min=1,dive"`
	Weather  []WeatherDefinition `yaml:"weather" validate:"required,min=1,dive"`
	Shop     []ShopTier          `yaml:"shop" validate:"dive"`
	Items    []ItemDefinition    `yaml:"items" validate:"dive"`
	Recipes  []RecipeDefinition  `yaml:"recipes" validate:"dive"`
}

// Settings holds the tunable constants of the roll and daily systems.
type Settings struct {
	DefaultBiome           string  `yaml:"default_biome"`
	DefaultWeather         string  `yaml:"default_weather"`
	ShinyChance            int     `yaml:"shiny_chance" validate:"gte=1"`
	BoostedShinyChance     int     `yaml:"boosted_shiny_chance" validate:"gte=1"`
	GodmodeShinyChance     int     `yaml:"godmode_shiny_chance" validate:"gte=1"`
	BiomeEventOdds         int     `yaml:"biome_event_odds" validate:"gte=1"`
	WeatherEventOdds       int     `yaml:"weather_event_odds" validate:"gte=1"`
	WeatherIntervalSeconds float64 `yaml:"weather_interval_seconds" validate:"gt=0"`
	AttemptFactor          int     `yaml:"attempt_factor" validate:"gte=1"`
	RollLogCap             int     `yaml:"roll_log_cap" validate:"gte=1"`
	VisitLogCap            int     `yaml:"visit_log_cap" validate:"gte=1"`
	ShopPicksPerTier       int     `yaml:"shop_picks_per_tier" validate:"gte=1"`
	BatchConfirmThreshold  int     `yaml:"batch_confirm_threshold" validate:"gte=1"`
	MaxBatch               int     `yaml:"max_batch" validate:"gte=1"`
	NotableRarity          int     `yaml:"notable_rarity" validate:"gte=1"`
	GlobalRarity           int     `yaml:"global_rarity" validate:"gte=1"`
}

// AuraDefinition is one collectible entry in the roll table.
type AuraDefinition struct {
	Name   string   `yaml:"name" validate:"required"`
	Rarity int      `yaml:"rarity" validate:"gte=1"`
	Biomes []string `yaml:"biomes" validate:"required,min=1"`
}

// SpawnsIn reports whether the aura can appear in biome.
func (a AuraDefinition) SpawnsIn(biome string) bool {
	for _, b := range a.Biomes {
		if b == biome {
			return true
		}
	}
	return false
}

// BiomeDefinition is a location with its rarity modifier.
type BiomeDefinition struct {
	Name     string  `yaml:"name" validate:"required"`
	Modifier float64 `yaml:"modifier" validate:"gt=0"`
}

// WeatherDefinition is a weather state and its modifier class.
type WeatherDefinition struct {
	Name  string `yaml:"name" validate:"required"`
	Class string `yaml:"class" validate:"oneof=normal mild unfavorable"`
}

// Modifier returns the rarity scalar for the weather's class.
func (w WeatherDefinition) Modifier() float64 {
	switch w.Class {
	case WeatherUnfavorable:
		return 0.8
	case WeatherMild:
		return 0.9
	default:
		return 1.0
	}
}

// ShopTier is a named pool the daily shop samples from.
type ShopTier struct {
	Name  string     `yaml:"name" validate:"required"`
	Items []ShopItem `yaml:"items" validate:"required,min=1,dive"`
}

// ShopItem is an item offered by a shop tier. RequiredAura, when set,
// must be owned at least once to buy the item.
type ShopItem struct {
	Name         string `yaml:"name" validate:"required"`
	RequiredAura string `yaml:"required_aura,omitempty"`
}

// ItemDefinition describes an inventory item. Items without an effect are
// flavor only.
type ItemDefinition struct {
	Name            string  `yaml:"name" validate:"required"`
	Effect          string  `yaml:"effect,omitempty" validate:"omitempty,oneof=luck mega_luck ultimate_luck godmode rare_boost shiny_boost biome_luck"`
	DurationSeconds float64 `yaml:"duration_seconds,omitempty" validate:"gte=0"`
	Description     string  `yaml:"description,omitempty"`
}

// HasEffect reports whether using the item starts a timed effect.
func (i ItemDefinition) HasEffect() bool {
	return i.Effect != "" && i.DurationSeconds > 0
}

// RecipeDefinition turns materials into one crafted item named Name.
type RecipeDefinition struct {
	Name     string     `yaml:"name" validate:"required"`
	Requires []Material `yaml:"requires" validate:"required,min=1,dive"`
}

// Material is one recipe input: an aura name or an inventory item name.
type Material struct {
	Name     string `yaml:"name" validate:"required"`
	Quantity int    `yaml:"quantity" validate:"gte=1"`
}

// Aura looks up an aura by name.
func (c *Catalog) Aura(name string) (AuraDefinition, bool) {
	for _, a := range c.Auras {
		if a.Name == name {
			return a, true
		}
	}
	return AuraDefinition{}, false
}

// Biome looks up a biome by name.
func (c *Catalog) Biome(name string) (BiomeDefinition, bool) {
	for _, b := range c.Biomes {
		if b.Name == name {
			return b, true
		}
	}
	return BiomeDefinition{}, false
}

// WeatherByName looks up a weather state by name.
func (c *Catalog) WeatherByName(name string) (WeatherDefinition, bool) {
	for _, w := range c.Weather {
		if w.Name == name {
			return w, true
		}
	}
	return WeatherDefinition{}, false
}

// Item looks up an item by name.
func (c *Catalog) Item(name string) (ItemDefinition, bool) {
	for _, it := range c.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ItemDefinition{}, false
}

// Recipe looks up a recipe by name, ignoring case.
func (c *Catalog) Recipe(name string) (RecipeDefinition, bool) {
	for _, r := range c.Recipes {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return RecipeDefinition{}, false
}

// LowestRarityAura returns the most common aura, used as the roll fallback.
// The first one wins on ties.
func (c *Catalog) LowestRarityAura() AuraDefinition {
	var best AuraDefinition
	for i, a := range c.Auras {
		if i == 0 || a.Rarity < best.Rarity {
			best = a
		}
	}
	return best
}

// BiomeNames returns biome names in catalog order.
func (c *Catalog) BiomeNames() []string {
	names := make([]string, len(c.Biomes))
	for i, b := range c.Biomes {
		names[i] = b.Name
	}
	return names
}
