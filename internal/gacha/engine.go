package gacha

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/auraroll/internal/config"
	"github.com/vovakirdan/auraroll/internal/core"
)

// Engine applies game actions to a State. It is not safe for concurrent
// use; one engine serves one session.
type Engine struct {
	catalog      *config.Catalog
	state        *State
	rng          core.Rand
	clock        core.Clock
	logger       *log.Logger
	quests       []QuestDefinition
	achievements []AchievementDefinition
	events       []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithQuests replaces the default quest table.
func WithQuests(q []QuestDefinition) Option {
	return func(e *Engine) { e.quests = q }
}

// WithAchievements replaces the default achievement table.
func WithAchievements(a []AchievementDefinition) Option {
	return func(e *Engine) { e.achievements = a }
}

// WithLogger sets the engine's debug logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine wires a state to its catalog, random source and clock.
func NewEngine(cat *config.Catalog, st *State, rng core.Rand, clock core.Clock, opts ...Option) *Engine {
	e := &Engine{
		catalog:      cat,
		state:        st,
		rng:          rng,
		clock:        clock,
		logger:       log.New(io.Discard),
		quests:       DefaultQuests(cat),
		achievements: DefaultAchievements(cat),
	}
	for _, opt := range opts {
		opt(e)
	}
	st.EnsureAuraKeys(cat)
	return e
}

// State returns the live state.
func (e *Engine) State() *State { return e.state }

// Catalog returns the static catalog.
func (e *Engine) Catalog() *config.Catalog { return e.catalog }

// Drain returns and clears the queued events.
func (e *Engine) Drain() []Event {
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) emit(kind EventKind, subject, detail string) {
	e.events = append(e.events, Event{Kind: kind, Subject: subject, Detail: detail})
}

func (e *Engine) now() float64 {
	return core.Seconds(e.clock.Now())
}

// perform runs a state-changing action in the fixed order: daily rollover,
// effect expiry, the action, quests, achievements.
func (e *Engine) perform(action func() error) error {
	e.RefreshIfNewDay()
	e.ApplyItemEffects()
	err := action()
	e.CheckQuests()
	e.CheckAchievements()
	return err
}

// Tick is the menu tick: random biome and weather events, the weather
// interval, then the standard rollover, expiry and progression checks.
func (e *Engine) Tick() {
	_ = e.perform(func() error {
		e.UpdateBiomeAndWeather()
		e.UpdateWeather()
		return nil
	})
}

// Tier classifies a pull by base rarity.
type Tier string

const (
	TierCommon Tier = "common"
	TierGreat  Tier = "great"
	TierGlobal Tier = "global"
)

func (e *Engine) tierOf(rarity int) Tier {
	switch {
	case rarity >= e.catalog.Settings.GlobalRarity:
		return TierGlobal
	case rarity >= e.catalog.Settings.NotableRarity:
		return TierGreat
	default:
		return TierCommon
	}
}

// adjustedRarity scales a base rarity by biome, weather and luck and
// clamps it to at least 1.
func adjustedRarity(base int, biomeMod, weatherMod, luck float64) int {
	if luck < 1 {
		luck = 1
	}
	v := math.Floor(float64(base) * biomeMod * weatherMod / luck)
	if v < 1 || math.IsNaN(v) {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
