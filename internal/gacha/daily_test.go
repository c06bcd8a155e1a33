package gacha

import (
	"maps"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshIfNewDayIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), lowRand)
	st := e.State()

	require.True(t, e.RefreshIfNewDay())
	shop := maps.Clone(st.DailyShop)
	quests := maps.Clone(st.QuestStatus)
	visited := maps.Clone(st.VisitedBiomes)
	today := st.TodayDate

	assert.False(t, e.RefreshIfNewDay())
	assert.Equal(t, shop, st.DailyShop)
	assert.Equal(t, quests, st.QuestStatus)
	assert.Equal(t, visited, st.VisitedBiomes)
	assert.Equal(t, today, st.TodayDate)
	assert.Equal(t, testStart.YearDay(), st.TodayDate)
}

func TestRefreshIfNewDayResets(t *testing.T) {
	e, clock := newTestEngine(t, defaultCatalog(), highRand)
	st := e.State()
	e.RefreshIfNewDay()

	st.QuestStatus["Roll Novice"] = true
	st.VisitedBiomes["Forest"] = true
	st.CurrentBiome = "Desert"
	st.TitlesEarned = []string{"Roll Master"}

	clock.Advance(24 * time.Hour)
	require.True(t, e.RefreshIfNewDay())

	for _, q := range e.Quests() {
		assert.False(t, st.QuestStatus[q.Name], q.Name)
	}
	assert.Len(t, st.QuestStatus, len(e.Quests()))
	assert.Equal(t, map[string]bool{"Desert": true}, st.VisitedBiomes)
	assert.Equal(t, []string{"Roll Master"}, st.TitlesEarned)
	assert.Equal(t, testStart.Add(24*time.Hour).YearDay(), st.TodayDate)
}

func TestRefreshSameDayRestocksEmptyShop(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), highRand)
	st := e.State()
	st.TodayDate = testStart.YearDay()
	st.QuestStatus = map[string]bool{"Roll Novice": true}
	st.VisitedBiomes = map[string]bool{"Plains": true, "Forest": true}

	assert.False(t, e.RefreshIfNewDay())

	assert.NotEmpty(t, e.Shop())
	assert.Equal(t, map[string]bool{"Roll Novice": true}, st.QuestStatus, "quests keep their progress")
	assert.Equal(t, map[string]bool{"Plains": true, "Forest": true}, st.VisitedBiomes)
	assert.Empty(t, e.Drain(), "a restock is not a new day")
}

func TestDailyShopSampling(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), highRand)
	e.RefreshIfNewDay()

	shop := e.State().DailyShop
	require.Len(t, shop, len(e.Catalog().Shop))
	for _, tier := range e.Catalog().Shop {
		offers := shop[tier.Name]
		assert.GreaterOrEqual(t, len(offers), 1, tier.Name)
		assert.LessOrEqual(t, len(offers), min(3, len(tier.Items)), tier.Name)

		seen := make(map[string]bool)
		for _, o := range offers {
			assert.False(t, seen[o.Item], "duplicate %s in %s", o.Item, tier.Name)
			seen[o.Item] = true
		}
	}
}

func TestUpdateWeatherInterval(t *testing.T) {
	e, clock := newTestEngine(t, defaultCatalog(), highRand)
	st := e.State()

	assert.True(t, e.UpdateWeather())
	assert.Equal(t, "Storm", st.CurrentWeather)
	assert.NotZero(t, st.WeatherLastChange)

	st.CurrentWeather = "Clear"
	clock.Advance(300 * time.Second)
	assert.False(t, e.UpdateWeather(), "exactly the interval is not enough")
	assert.Equal(t, "Clear", st.CurrentWeather)

	clock.Advance(time.Second)
	assert.True(t, e.UpdateWeather())
	assert.Equal(t, "Storm", st.CurrentWeather)
}

func TestUpdateBiomeAndWeather(t *testing.T) {
	e, clock := newTestEngine(t, defaultCatalog(), lowRand)
	st := e.State()
	st.CurrentBiome = "Volcano"
	st.CurrentWeather = "Snow"

	e.UpdateBiomeAndWeather()

	assert.Equal(t, "Plains", st.CurrentBiome)
	assert.Equal(t, "Clear", st.CurrentWeather)
	assert.True(t, st.VisitedBiomes["Plains"])
	require.Len(t, st.VisitLog, 1)
	assert.Equal(t, "Plains", st.VisitLog[0].Biome)
	assert.InDelta(t, float64(clock.Now().Unix()), st.VisitLog[0].At, 1e-3)

	kinds := []EventKind{}
	for _, ev := range e.Drain() {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []EventKind{EventBiomeChanged, EventWeatherChanged}, kinds)
}

func TestUpdateBiomeSameBiomeNotLogged(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), lowRand)

	e.UpdateBiomeAndWeather()

	assert.Equal(t, "Plains", e.State().CurrentBiome)
	assert.Empty(t, e.State().VisitLog)
	assert.Empty(t, e.Drain())
}

func TestTickRunsDailyRefresh(t *testing.T) {
	e, _ := newTestEngine(t, defaultCatalog(), highRand)
	e.Tick()

	st := e.State()
	assert.Equal(t, testStart.YearDay(), st.TodayDate)
	assert.NotEmpty(t, st.DailyShop)
	assert.Equal(t, "Storm", st.CurrentWeather)
}

func TestWeatherChangeIn(t *testing.T) {
	e, clock := newTestEngine(t, defaultCatalog(), highRand)
	assert.Zero(t, e.WeatherChangeIn())

	e.UpdateWeather()
	assert.InDelta(t, 300, e.WeatherChangeIn(), 1e-6)

	clock.Advance(120 * time.Second)
	assert.InDelta(t, 180, e.WeatherChangeIn(), 1e-6)

	clock.Advance(time.Hour)
	assert.Zero(t, e.WeatherChangeIn())
}
