package config

import (
	_ "embed"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// DefaultSettings returns the default engine settings.
func DefaultSettings() Settings {
	return Settings{
		DefaultBiome:           "Plains",
		DefaultWeather:         "Clear",
		ShinyChance:            250,
		BoostedShinyChance:     100,
		GodmodeShinyChance:     10,
		BiomeEventOdds:         5,
		WeatherEventOdds:       5,
		WeatherIntervalSeconds: 300,
		AttemptFactor:          10,
		RollLogCap:             1000,
		VisitLogCap:            500,
		ShopPicksPerTier:       3,
		BatchConfirmThreshold:  100,
		MaxBatch:               100000,
		NotableRarity:          100,
		GlobalRarity:           1000,
	}
}

// DefaultCatalog returns the built-in catalog. It mirrors
// defaults/catalog.yaml and is used when the embedded file cannot be parsed.
func DefaultCatalog() Catalog {
	return Catalog{
		Settings: DefaultSettings(),
		Auras: []AuraDefinition{
			{Name: "Amber", Rarity: 2, Biomes: []string{"Plains", "Forest"}},
			{Name: "Jade", Rarity: 4, Biomes: []string{"Forest", "Crystal Caves"}},
			{Name: "Cobalt", Rarity: 10, Biomes: []string{"Mountain", "Desert"}},
			{Name: "Topaz", Rarity: 20, Biomes: []string{"Desert", "Volcano"}},
			{Name: "Peridot", Rarity: 50, Biomes: []string{"Plains", "Mountain"}},
			{Name: "Ruby", Rarity: 100, Biomes: []string{"Volcano"}},
			{Name: "Emerald", Rarity: 200, Biomes: []string{"Forest"}},
			{Name: "Sapphire", Rarity: 500, Biomes: []string{"Crystal Caves"}},
			{Name: "Diamond", Rarity: 1000, Biomes: []string{"Mountain"}},
			{Name: "Obsidian", Rarity: 2500, Biomes: []string{"Volcano"}},
			{Name: "Galaxy", Rarity: 5000, Biomes: []string{"Crystal Caves"}},
			{Name: "Nebula", Rarity: 10000, Biomes: []string{"Desert"}},
			{Name: "Eclipse", Rarity: 25000, Biomes: []string{"Volcano"}},
			{Name: "Singularity", Rarity: 100000, Biomes: []string{"Crystal Caves"}},
		},
		Biomes: []BiomeDefinition{
			{Name: "Plains", Modifier: 1.0},
			{Name: "Forest", Modifier: 0.9},
			{Name: "Desert", Modifier: 1.1},
			{Name: "Mountain", Modifier: 0.8},
			{Name: "Volcano", Modifier: 1.2},
			{Name: "Crystal Caves", Modifier: 0.7},
		},
		Weather: []WeatherDefinition{
			{Name: "Clear", Class: WeatherNormal},
			{Name: "Rain", Class: WeatherMild},
			{Name: "Wind", Class: WeatherMild},
			{Name: "Snow", Class: WeatherUnfavorable},
			{Name: "Storm", Class: WeatherUnfavorable},
		},
		Shop: []ShopTier{
			{Name: "Common", Items: []ShopItem{{Name: "Shiny Sticker"}, {Name: "Basic Amulet", RequiredAura: "Amber"}}},
			{Name: "Uncommon", Items: []ShopItem{{Name: "Lucky Charm", RequiredAura: "Cobalt"}, {Name: "Forest Potion"}}},
			{Name: "Rare", Items: []ShopItem{{Name: "Mystic Scroll", RequiredAura: "Ruby"}, {Name: "Desert Talisman"}}},
			{Name: "Ultra Rare", Items: []ShopItem{{Name: "Cosmic Key", RequiredAura: "Diamond"}, {Name: "Mountain Crest"}}},
			{Name: "Legendary", Items: []ShopItem{{Name: "Galactic Crown", RequiredAura: "Singularity"}, {Name: "Volcano Heart"}}},
		},
		Items: []ItemDefinition{
			{Name: "Shiny Sticker", Effect: EffectShinyBoost, DurationSeconds: 90, Description: "Shiny odds improve to 1 in 100."},
			{Name: "Basic Amulet", Description: "A plain keepsake with no power of its own."},
			{Name: "Lucky Charm", Effect: EffectLuck, DurationSeconds: 60, Description: "Ten times the luck for a minute."},
			{Name: "Forest Potion", Effect: EffectBiomeLuck, DurationSeconds: 120, Description: "Doubles luck while it lasts."},
			{Name: "Mystic Scroll", Effect: EffectRareBoost, DurationSeconds: 120, Description: "Rare auras answer five times as often."},
			{Name: "Desert Talisman", Effect: EffectLuck, DurationSeconds: 90, Description: "A sand-worn charm of ordinary luck."},
			{Name: "Cosmic Key", Effect: EffectMegaLuck, DurationSeconds: 180, Description: "Twenty-five times the luck."},
			{Name: "Mountain Crest", Effect: EffectBiomeLuck, DurationSeconds: 180, Description: "Doubles luck while it lasts."},
			{Name: "Galactic Crown", Effect: EffectUltimateLuck, DurationSeconds: 300, Description: "Fifty times the luck."},
			{Name: "Volcano Heart", Effect: EffectMegaLuck, DurationSeconds: 240, Description: "Twenty-five times the luck and still warm."},
			{Name: "Fortune Device", Effect: EffectMegaLuck, DurationSeconds: 300, Description: "A crafted engine of fortune."},
			{Name: "Memetic Device", Effect: EffectShinyBoost, DurationSeconds: 600, Description: "Shiny odds improve for ten minutes."},
			{Name: "Singularity Engine", Effect: EffectGodmode, DurationSeconds: 120, Description: "One hundred times the luck with 1 in 10 shinies."},
		},
		Recipes: []RecipeDefinition{
			{Name: "Fortune Device", Requires: []Material{{Name: "Lucky Charm", Quantity: 2}, {Name: "Amber", Quantity: 5}}},
			{Name: "Memetic Device", Requires: []Material{{Name: "Shiny Sticker", Quantity: 1}, {Name: "Ruby", Quantity: 3}}},
			{Name: "Singularity Engine", Requires: []Material{{Name: "Fortune Device", Quantity: 1}, {Name: "Memetic Device", Quantity: 1}, {Name: "Galaxy", Quantity: 1}}},
		},
	}
}
