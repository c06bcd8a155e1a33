package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/auraroll/internal/config"
	"github.com/vovakirdan/auraroll/internal/core"
	"github.com/vovakirdan/auraroll/internal/gacha"
)

func testCatalog() *config.Catalog {
	c := config.DefaultCatalog()
	return &c
}

// richState has a non-default value in every persisted field.
func richState(cat *config.Catalog) *gacha.State {
	st := gacha.NewState(cat)
	st.AuraCounts["Amber"] = 12
	st.AuraCounts["Ruby"] = 2
	st.ShinyAuraCounts["Shiny Jade"] = 1
	st.TotalRolls = 15
	st.RollLog = []gacha.RollLogEntry{{Index: 14, Aura: "Ruby"}, {Index: 15, Aura: "Shiny Jade"}}
	st.VisitedBiomes = map[string]bool{"Plains": true, "Forest": true}
	st.VisitLog = []gacha.VisitLogEntry{{At: 1717243200.25, Biome: "Forest"}}
	st.ItemInventory = []string{"Lucky Charm", "Basic Amulet", "Lucky Charm"}
	st.ItemEffects = map[string]float64{"Cosmic Key": 1717243380.5}
	st.QuestStatus = map[string]bool{"Roll Novice": true, "Aura Collector": false}
	st.TitlesEarned = []string{"Shiny Hunter"}
	st.CurrentBiome = "Forest"
	st.CurrentWeather = "Rain"
	st.TodayDate = 153
	st.DailyShop = map[string][]gacha.ShopOffer{
		"Common":   {{Item: "Basic Amulet", RequiredAura: "Amber"}},
		"Uncommon": {{Item: "Forest Potion"}, {Item: "Lucky Charm", RequiredAura: "Cobalt"}},
	}
	return st
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cat := testCatalog()
	f := New(filepath.Join(t.TempDir(), DefaultFileName))

	orig := richState(cat)
	orig.WeatherLastChange = 1717243000
	require.NoError(t, f.Save(orig))

	loaded := gacha.NewState(cat)
	require.NoError(t, f.Load(loaded))

	assert.Zero(t, loaded.WeatherLastChange, "transient field must not be persisted")
	orig.WeatherLastChange = 0
	assert.Equal(t, orig, loaded)
}

func TestSaveFileShape(t *testing.T) {
	cat := testCatalog()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, New(path).Save(richState(cat)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{
		"aura_counts", "current_biome", "current_weather", "daily_shop",
		"item_effects", "item_inventory", "quest_status", "roll_log",
		"shiny_aura_counts", "titles_earned", "today_date", "total_rolls",
		"visit_log", "visited_biomes",
	}, keys)

	assert.JSONEq(t, `[[14,"Ruby"],[15,"Shiny Jade"]]`, string(raw["roll_log"]))
	assert.JSONEq(t, `[[1717243200.25,"Forest"]]`, string(raw["visit_log"]))
	assert.JSONEq(t, `["Forest","Plains"]`, string(raw["visited_biomes"]))
	assert.JSONEq(t, `{"Common":[["Basic Amulet","Amber"]],"Uncommon":[["Forest Potion",null],["Lucky Charm","Cobalt"]]}`, string(raw["daily_shop"]))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := New(filepath.Join(dir, DefaultFileName))
	st := richState(testCatalog())

	require.NoError(t, f.Save(st))
	st.TotalRolls++
	require.NoError(t, f.Save(st))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultFileName, entries[0].Name())
	assert.True(t, f.Exists())
}

func TestLoadMissingFile(t *testing.T) {
	cat := testCatalog()
	f := New(filepath.Join(t.TempDir(), "missing.json"))
	st := gacha.NewState(cat)

	err := f.Load(st)
	assert.True(t, errors.Is(err, ErrNoSave))
	assert.False(t, f.Exists())
	assert.Equal(t, gacha.NewState(cat), st)
}

func TestLoadCorruptLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"truncated", `{"aura_counts": {"Amber": 3`},
		{"wrong type", `{"total_rolls": "many"}`},
		{"bad roll pair", `{"aura_counts": {"Amber": 3}, "roll_log": [[1, "Amber", "extra"]]}`},
		{"bad visit pair", `{"visit_log": [["yesterday", "Forest"]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := testCatalog()
			path := filepath.Join(t.TempDir(), DefaultFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))

			st := gacha.NewState(cat)
			err := New(path).Load(st)
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrNoSave))
			assert.Equal(t, gacha.NewState(cat), st)
		})
	}
}

func TestLoadLegacyMerges(t *testing.T) {
	cat := testCatalog()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	legacy := `{
		"aura_counts": {"Amber": 4, "Jade": 1},
		"shiny_aura_counts": {"Shiny Amber": 1},
		"total_rolls": 6,
		"roll_log": [["5", "Jade"], [6, "Shiny Amber"]],
		"visited_biomes": ["Plains"],
		"item_inventory": ["Lucky Charm"],
		"item_effects": {},
		"quest_status": {"Roll Novice": false},
		"titles_earned": [],
		"current_biome": "Plains",
		"current_weather": "Clear",
		"today_date": null
	}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	st := gacha.NewState(cat)
	require.NoError(t, New(path).Load(st))

	assert.Equal(t, 4, st.AuraCounts["Amber"])
	assert.Equal(t, 1, st.AuraCounts["Jade"])
	assert.Len(t, st.AuraCounts, len(cat.Auras), "catalog auras keep their zero keys")
	assert.Len(t, st.ShinyAuraCounts, len(cat.Auras))
	assert.Equal(t, 1, st.ShinyAuraCounts["Shiny Amber"])
	assert.Equal(t, 6, st.TotalRolls)
	assert.Equal(t, []gacha.RollLogEntry{{Index: 5, Aura: "Jade"}, {Index: 6, Aura: "Shiny Amber"}}, st.RollLog)
	assert.Empty(t, st.VisitLog)
	assert.Zero(t, st.TodayDate)
	assert.Empty(t, st.DailyShop)
	assert.Equal(t, []string{"Lucky Charm"}, st.ItemInventory)
}

func TestLoadKeepsAbsentFields(t *testing.T) {
	cat := testCatalog()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"total_rolls": 3}`), 0o644))

	st := richState(cat)
	require.NoError(t, New(path).Load(st))

	want := richState(cat)
	want.TotalRolls = 3
	assert.Equal(t, want, st)
}

func TestLoadLegacySameDayStocksShop(t *testing.T) {
	cat := testCatalog()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), DefaultFileName)
	legacy := fmt.Sprintf(`{
		"aura_counts": {"Amber": 3},
		"total_rolls": 3,
		"today_date": %d,
		"quest_status": {"Roll Novice": false, "Aura Collector": false}
	}`, now.YearDay())
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	st := gacha.NewState(cat)
	require.NoError(t, New(path).Load(st))
	require.Empty(t, st.DailyShop)

	rng, err := core.NewRand(7)
	require.NoError(t, err)
	e := gacha.NewEngine(cat, st, rng, core.NewFakeClock(now))
	e.Tick()

	assert.NotEmpty(t, e.Shop())
	assert.Equal(t, now.YearDay(), st.TodayDate)
	assert.Equal(t, 3, st.AuraCounts["Amber"])
}
