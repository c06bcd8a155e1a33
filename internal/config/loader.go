package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCatalog loads the game catalog.
// Search order: customPath -> ~/.auraroll/catalog.yaml -> ./configs/catalog.yaml -> embedded default
func LoadCatalog(customPath string) (Catalog, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cat, err := ParseCatalog(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cat, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("catalog.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cat, err := ParseCatalog(data); err == nil {
				return cat, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "catalog.yaml")); err == nil {
		if cat, err := ParseCatalog(data); err == nil {
			return cat, nil
		}
	}

	// Use embedded default YAML
	cat, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		return DefaultCatalog(), nil // Fallback to hardcoded if embed fails
	}
	return cat, nil
}

// ParseCatalog decodes YAML, fills unset settings with defaults and
// validates the result.
func ParseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, err
	}
	applySettingDefaults(&cat)
	if err := Validate(&cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// applySettingDefaults fills zero-valued settings so a catalog file may
// omit the settings block entirely.
func applySettingDefaults(cat *Catalog) {
	def := DefaultSettings()
	s := &cat.Settings

	if s.DefaultBiome == "" && len(cat.Biomes) > 0 {
		s.DefaultBiome = cat.Biomes[0].Name
	}
	if s.DefaultWeather == "" && len(cat.Weather) > 0 {
		s.DefaultWeather = cat.Weather[0].Name
	}
	setInt(&s.ShinyChance, def.ShinyChance)
	setInt(&s.BoostedShinyChance, def.BoostedShinyChance)
	setInt(&s.GodmodeShinyChance, def.GodmodeShinyChance)
	setInt(&s.BiomeEventOdds, def.BiomeEventOdds)
	setInt(&s.WeatherEventOdds, def.WeatherEventOdds)
	if s.WeatherIntervalSeconds == 0 {
		s.WeatherIntervalSeconds = def.WeatherIntervalSeconds
	}
	setInt(&s.AttemptFactor, def.AttemptFactor)
	setInt(&s.RollLogCap, def.RollLogCap)
	setInt(&s.VisitLogCap, def.VisitLogCap)
	setInt(&s.ShopPicksPerTier, def.ShopPicksPerTier)
	setInt(&s.BatchConfirmThreshold, def.BatchConfirmThreshold)
	setInt(&s.MaxBatch, def.MaxBatch)
	setInt(&s.NotableRarity, def.NotableRarity)
	setInt(&s.GlobalRarity, def.GlobalRarity)
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".auraroll", filename)
}
