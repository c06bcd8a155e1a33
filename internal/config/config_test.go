package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogMatchesDefault(t *testing.T) {
	cat, err := ParseCatalog(defaultCatalogYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), cat)
}

func TestDefaultCatalogValid(t *testing.T) {
	cat := DefaultCatalog()
	require.NoError(t, Validate(&cat))
}

func TestLoadCatalogCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
auras:
  - { name: Amber, rarity: 2, biomes: [Plains] }
biomes:
  - { name: Plains, modifier: 1.0 }
weather:
  - { name: Clear, class: normal }
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Len(t, cat.Auras, 1)
	assert.Equal(t, "Plains", cat.Settings.DefaultBiome)
	assert.Equal(t, "Clear", cat.Settings.DefaultWeather)
	assert.Equal(t, 250, cat.Settings.ShinyChance)
	assert.Equal(t, 300.0, cat.Settings.WeatherIntervalSeconds)
	assert.Equal(t, 1000, cat.Settings.RollLogCap)
}

func TestLoadCatalogMissingCustomPath(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
		want   string
	}{
		{
			name:   "unknown biome",
			mutate: func(c *Catalog) { c.Auras[0].Biomes = []string{"Moon"} },
			want:   `unknown biome "Moon"`,
		},
		{
			name:   "unknown shop item",
			mutate: func(c *Catalog) { c.Shop[0].Items[0].Name = "Teapot" },
			want:   `unknown item "Teapot"`,
		},
		{
			name:   "unknown required aura",
			mutate: func(c *Catalog) { c.Shop[0].Items[1].RequiredAura = "Plutonium" },
			want:   `unknown aura "Plutonium"`,
		},
		{
			name:   "unknown material",
			mutate: func(c *Catalog) { c.Recipes[0].Requires[0].Name = "Dust" },
			want:   `unknown material "Dust"`,
		},
		{
			name:   "duplicate aura",
			mutate: func(c *Catalog) { c.Auras = append(c.Auras, c.Auras[0]) },
			want:   `duplicate aura "Amber"`,
		},
		{
			name:   "bad effect",
			mutate: func(c *Catalog) { c.Items[0].Effect = "teleport" },
			want:   "Effect",
		},
		{
			name:   "zero rarity",
			mutate: func(c *Catalog) { c.Auras[0].Rarity = 0 },
			want:   "Rarity",
		},
		{
			name:   "bad weather class",
			mutate: func(c *Catalog) { c.Weather[0].Class = "apocalyptic" },
			want:   "Class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := DefaultCatalog()
			tt.mutate(&cat)
			err := Validate(&cat)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	cat := DefaultCatalog()

	a, ok := cat.Aura("Ruby")
	require.True(t, ok)
	assert.Equal(t, 100, a.Rarity)
	assert.True(t, a.SpawnsIn("Volcano"))
	assert.False(t, a.SpawnsIn("Plains"))

	_, ok = cat.Aura("Plutonium")
	assert.False(t, ok)

	r, ok := cat.Recipe("fortune device")
	require.True(t, ok)
	assert.Equal(t, "Fortune Device", r.Name)

	assert.Equal(t, "Amber", cat.LowestRarityAura().Name)
	assert.Equal(t, []string{"Plains", "Forest", "Desert", "Mountain", "Volcano", "Crystal Caves"}, cat.BiomeNames())
}

func TestWeatherModifier(t *testing.T) {
	tests := []struct {
		class string
		want  float64
	}{
		{WeatherNormal, 1.0},
		{WeatherMild, 0.9},
		{WeatherUnfavorable, 0.8},
	}
	for _, tt := range tests {
		w := WeatherDefinition{Name: "x", Class: tt.class}
		if got := w.Modifier(); got != tt.want {
			t.Errorf("Modifier(%s) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestItemHasEffect(t *testing.T) {
	cat := DefaultCatalog()
	charm, _ := cat.Item("Lucky Charm")
	amulet, _ := cat.Item("Basic Amulet")
	assert.True(t, charm.HasEffect())
	assert.False(t, amulet.HasEffect())
}
