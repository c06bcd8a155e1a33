// Package gacha implements the aura roll game: the mutable player state,
// the weighted roll engine, the daily cycle, quests, achievements, timed
// item effects, crafting and the daily shop.
package gacha

import (
	"sort"

	"github.com/vovakirdan/auraroll/internal/config"
)

// ShinyPrefix marks the shiny variant of an aura.
const ShinyPrefix = "Shiny "

// ShinyName returns the shiny key for an aura name.
func ShinyName(aura string) string {
	return ShinyPrefix + aura
}

// RollLogEntry records the outcome of one roll.
type RollLogEntry struct {
	Index int
	Aura  string
}

// VisitLogEntry records the moment a biome was entered.
type VisitLogEntry struct {
	At    float64 // epoch seconds
	Biome string
}

// ShopOffer is an item on today's shelf.
type ShopOffer struct {
	Item         string
	RequiredAura string // empty when the item is free
}

// State is the whole mutable player state of one session.
type State struct {
	AuraCounts      map[string]int
	ShinyAuraCounts map[string]int
	TotalRolls      int
	RollLog         []RollLogEntry
	VisitedBiomes   map[string]bool
	VisitLog        []VisitLogEntry
	ItemInventory   []string
	ItemEffects     map[string]float64 // item name -> expiry, epoch seconds
	QuestStatus     map[string]bool
	TitlesEarned    []string
	CurrentBiome    string
	CurrentWeather  string
	TodayDate       int // day of year of the last refresh, 0 if never
	DailyShop       map[string][]ShopOffer

	// WeatherLastChange is the epoch second of the last interval-driven
	// weather change. It is never persisted; 0 means never.
	WeatherLastChange float64
}

// NewState returns a fresh state with every aura and shiny key present.
func NewState(cat *config.Catalog) *State {
	s := &State{
		AuraCounts:      make(map[string]int, len(cat.Auras)),
		ShinyAuraCounts: make(map[string]int, len(cat.Auras)),
		VisitedBiomes:   make(map[string]bool),
		ItemEffects:     make(map[string]float64),
		QuestStatus:     make(map[string]bool),
		DailyShop:       make(map[string][]ShopOffer),
		CurrentBiome:    cat.Settings.DefaultBiome,
		CurrentWeather:  cat.Settings.DefaultWeather,
	}
	s.EnsureAuraKeys(cat)
	return s
}

// EnsureAuraKeys adds a zero count for every catalog aura missing from the
// count maps. Existing counts are left alone.
func (s *State) EnsureAuraKeys(cat *config.Catalog) {
	if s.AuraCounts == nil {
		s.AuraCounts = make(map[string]int, len(cat.Auras))
	}
	if s.ShinyAuraCounts == nil {
		s.ShinyAuraCounts = make(map[string]int, len(cat.Auras))
	}
	for _, a := range cat.Auras {
		if _, ok := s.AuraCounts[a.Name]; !ok {
			s.AuraCounts[a.Name] = 0
		}
		if _, ok := s.ShinyAuraCounts[ShinyName(a.Name)]; !ok {
			s.ShinyAuraCounts[ShinyName(a.Name)] = 0
		}
	}
}

// UniqueAuras counts distinct auras owned at least once, shiny variants
// excluded.
func (s *State) UniqueAuras() int {
	n := 0
	for _, c := range s.AuraCounts {
		if c > 0 {
			n++
		}
	}
	return n
}

// ShinyTotal sums all shiny pulls.
func (s *State) ShinyTotal() int {
	n := 0
	for _, c := range s.ShinyAuraCounts {
		n += c
	}
	return n
}

// Owns reports whether the aura, normal or shiny, has been pulled.
func (s *State) Owns(aura string) bool {
	return s.AuraCounts[aura] > 0 || s.ShinyAuraCounts[ShinyName(aura)] > 0
}

// ItemCount counts instances of name in the inventory.
func (s *State) ItemCount(name string) int {
	n := 0
	for _, it := range s.ItemInventory {
		if it == name {
			n++
		}
	}
	return n
}

// removeItems drops the first n instances of name from the inventory.
func (s *State) removeItems(name string, n int) {
	kept := s.ItemInventory[:0]
	for _, it := range s.ItemInventory {
		if it == name && n > 0 {
			n--
			continue
		}
		kept = append(kept, it)
	}
	s.ItemInventory = kept
}

// HasTitle reports whether an achievement title was earned.
func (s *State) HasTitle(title string) bool {
	for _, t := range s.TitlesEarned {
		if t == title {
			return true
		}
	}
	return false
}

// VisitedList returns the visited biomes sorted by name.
func (s *State) VisitedList() []string {
	out := make([]string, 0, len(s.VisitedBiomes))
	for b, ok := range s.VisitedBiomes {
		if ok {
			out = append(out, b)
		}
	}
	sort.Strings(out)
	return out
}

func (s *State) appendRollLog(e RollLogEntry, limit int) {
	s.RollLog = append(s.RollLog, e)
	if limit > 0 && len(s.RollLog) > limit {
		s.RollLog = append([]RollLogEntry(nil), s.RollLog[len(s.RollLog)-limit:]...)
	}
}

func (s *State) appendVisitLog(e VisitLogEntry, limit int) {
	s.VisitLog = append(s.VisitLog, e)
	if limit > 0 && len(s.VisitLog) > limit {
		s.VisitLog = append([]VisitLogEntry(nil), s.VisitLog[len(s.VisitLog)-limit:]...)
	}
}
