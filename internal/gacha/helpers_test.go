package gacha

import (
	"testing"
	"time"

	"github.com/vovakirdan/auraroll/internal/config"
	"github.com/vovakirdan/auraroll/internal/core"
)

// funcRand is a scripted random source.
type funcRand func(n int) int

func (f funcRand) IntN(n int) int { return f(n) }

// highRand makes every 1-in-N draw miss and every event roll fail.
var highRand = funcRand(func(n int) int { return n - 1 })

// lowRand makes every draw hit and always picks the first candidate.
var lowRand = funcRand(func(n int) int { return 0 })

var testStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func defaultCatalog() *config.Catalog {
	c := config.DefaultCatalog()
	return &c
}

func amberCatalog() *config.Catalog {
	return &config.Catalog{
		Settings: config.DefaultSettings(),
		Auras:    []config.AuraDefinition{{Name: "Amber", Rarity: 2, Biomes: []string{"Plains"}}},
		Biomes:   []config.BiomeDefinition{{Name: "Plains", Modifier: 1.0}},
		Weather:  []config.WeatherDefinition{{Name: "Clear", Class: config.WeatherNormal}},
	}
}

func newTestEngine(t *testing.T, cat *config.Catalog, rng core.Rand, opts ...Option) (*Engine, *core.FakeClock) {
	t.Helper()
	clock := core.NewFakeClock(testStart)
	return NewEngine(cat, NewState(cat), rng, clock, opts...), clock
}
