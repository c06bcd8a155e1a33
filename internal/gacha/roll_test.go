package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/auraroll/internal/config"
)

func TestRollOnceSingleAura(t *testing.T) {
	// Rarity draw of 1-in-2 always hits, the shiny draw always misses.
	rng := funcRand(func(n int) int {
		if n == 2 {
			return 0
		}
		return n - 1
	})
	e, _ := newTestEngine(t, amberCatalog(), rng)

	out := e.RollOnce()
	st := e.State()

	assert.Equal(t, "Amber", out.Aura)
	assert.False(t, out.Shiny)
	assert.False(t, out.Fallback)
	assert.Equal(t, 1, st.AuraCounts["Amber"])
	assert.Equal(t, 0, st.ShinyAuraCounts["Shiny Amber"])
	assert.Equal(t, 1, st.TotalRolls)
	require.Len(t, st.RollLog, 1)
	assert.Equal(t, RollLogEntry{Index: 1, Aura: "Amber"}, st.RollLog[0])
}

func TestRollFallsBackWhenAttemptsRunOut(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), highRand)
	e.State().CurrentBiome = "Volcano"

	out := e.RollOnce()

	assert.True(t, out.Fallback)
	assert.Equal(t, "Amber", out.Aura)
	assert.Equal(t, 1, e.State().AuraCounts["Amber"])
	require.Len(t, e.State().RollLog, 1)
	assert.Equal(t, "Amber", e.State().RollLog[0].Aura)
}

func TestRollMultipleShiny(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), lowRand)

	outs := e.RollMultiple(5)
	st := e.State()

	require.Len(t, outs, 5)
	for i, o := range outs {
		assert.True(t, o.Shiny)
		assert.Equal(t, "Amber", o.Aura)
		assert.Equal(t, i+1, o.Index)
	}
	assert.Equal(t, 5, st.ShinyAuraCounts["Shiny Amber"])
	assert.Equal(t, 0, st.AuraCounts["Amber"])
	assert.Equal(t, 5, st.TotalRolls)
	assert.Equal(t, "Shiny Amber", st.RollLog[4].Aura)

	// Progression fires once even though the condition holds on every roll.
	assert.Equal(t, 1, st.ItemCount("Shiny Sticker"))
	assert.Equal(t, []string{"Shiny Hunter"}, st.TitlesEarned)
}

func TestRollMultipleNonPositive(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), lowRand)
	assert.Empty(t, e.RollMultiple(0))
	assert.Empty(t, e.RollMultiple(-3))
	assert.Equal(t, 0, e.State().TotalRolls)
}

func TestRollLogCapped(t *testing.T) {
	cat := defaultCatalog()
	cat.Settings.RollLogCap = 3
	e, _ := newTestEngine(t, cat, lowRand)

	e.RollMultiple(5)

	log := e.State().RollLog
	require.Len(t, log, 3)
	assert.Equal(t, 3, log[0].Index)
	assert.Equal(t, 5, log[2].Index)
}

func TestRollPoolFiltersByBiome(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), highRand)
	e.State().CurrentBiome = "Volcano"

	var names []string
	for _, p := range e.RollPool() {
		names = append(names, p.Aura)
	}
	assert.Equal(t, []string{"Topaz", "Ruby", "Obsidian", "Eclipse"}, names)
}

func TestRollPoolEmptyBiomeUsesFallback(t *testing.T) {
	cat := defaultCatalog()
	cat.Biomes = append(cat.Biomes, config.BiomeDefinition{Name: "Void", Modifier: 1.0})
	e, _ := newTestEngine(t, cat, highRand)
	e.State().CurrentBiome = "Void"

	pool := e.RollPool()
	require.Len(t, pool, 1)
	assert.Equal(t, "Amber", pool[0].Aura)
	assert.Equal(t, 2, pool[0].Adjusted)
}

func TestAdjustedRarityNeverBelowOne(t *testing.T) {
	cat := defaultCatalog()
	e, clock := newTestEngine(t, cat, highRand)
	expiry := float64(clock.Now().Unix()) + 1000
	st := e.State()
	st.ItemEffects = map[string]float64{
		"Singularity Engine": expiry,
		"Mystic Scroll":      expiry,
		"Shiny Sticker":      expiry,
		"Forest Potion":      expiry,
	}
	require.Equal(t, 100.0*5*3*2, e.LuckMultiplier())

	for _, b := range cat.Biomes {
		for _, w := range cat.Weather {
			st.CurrentBiome = b.Name
			st.CurrentWeather = w.Name
			for _, p := range e.RollPool() {
				assert.GreaterOrEqual(t, p.Adjusted, 1, "%s in %s/%s", p.Aura, b.Name, w.Name)
			}
		}
	}
}

func TestAdjustedRarity(t *testing.T) {
	tests := []struct {
		name           string
		base           int
		biome, weather float64
		luck           float64
		want           int
	}{
		{"neutral", 100, 1.0, 1.0, 1, 100},
		{"volcano storm", 100, 1.2, 0.8, 1, 96},
		{"caves rain", 5000, 0.7, 0.9, 1, 3150},
		{"mega luck", 1000, 1.0, 1.0, 25, 40},
		{"clamped", 2, 0.7, 0.8, 3000, 1},
		{"luck below one ignored", 10, 1.0, 1.0, 0.5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adjustedRarity(tt.base, tt.biome, tt.weather, tt.luck); got != tt.want {
				t.Errorf("adjustedRarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRollTiers(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), highRand)
	assert.Equal(t, TierCommon, e.tierOf(50))
	assert.Equal(t, TierGreat, e.tierOf(100))
	assert.Equal(t, TierGreat, e.tierOf(999))
	assert.Equal(t, TierGlobal, e.tierOf(1000))
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		biome, weather    string
		wantBiome, wantWx float64
	}{
		{"Plains", "Clear", 1.0, 1.0},
		{"Forest", "Rain", 0.9, 0.9},
		{"Volcano", "Storm", 1.2, 0.8},
		{"Nowhere", "Fog", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.biome+"/"+tt.weather, func(t *testing.T) {
			e, _ := newTestEngine(t, defaultCatalog(), highRand)
			e.State().CurrentBiome = tt.biome
			e.State().CurrentWeather = tt.weather

			biome, weather := e.Modifiers()
			assert.InDelta(t, tt.wantBiome, biome, 1e-9)
			assert.InDelta(t, tt.wantWx, weather, 1e-9)
		})
	}
}
