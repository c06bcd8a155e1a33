// Package save persists a gacha.State to a JSON save file.
//
// The file is a single object whose keys match the persisted state fields.
// roll_log and visit_log entries are 2-element arrays; timestamps are
// floating-point epoch seconds. Loading merges into the live state: keys
// absent from the file keep their current values.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/auraroll/internal/gacha"
)

// DefaultFileName is the save file name used next to the executable.
const DefaultFileName = "aura_save.json"

// ErrNoSave is returned by Load when the save file does not exist.
var ErrNoSave = errors.New("save: no save file")

// File is one save slot on disk.
type File struct {
	Path string
}

// New returns a save slot at path.
func New(path string) *File {
	return &File{Path: path}
}

// Exists reports whether the save file is present.
func (f *File) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// document is the on-disk shape. Scalars are pointers so that a missing
// key can be told apart from a zero value.
type document struct {
	AuraCounts      map[string]int        `json:"aura_counts"`
	ShinyAuraCounts map[string]int        `json:"shiny_aura_counts"`
	TotalRolls      *int                  `json:"total_rolls"`
	RollLog         []rollPair            `json:"roll_log"`
	VisitedBiomes   []string              `json:"visited_biomes"`
	ItemInventory   []string              `json:"item_inventory"`
	ItemEffects     map[string]float64    `json:"item_effects"`
	QuestStatus     map[string]bool       `json:"quest_status"`
	TitlesEarned    []string              `json:"titles_earned"`
	CurrentBiome    *string               `json:"current_biome"`
	CurrentWeather  *string               `json:"current_weather"`
	TodayDate       *int                  `json:"today_date"`
	VisitLog        []visitPair           `json:"visit_log"`
	DailyShop       map[string][]shopPair `json:"daily_shop"`
}

// Save writes the persisted subset of st. The data goes to a temporary
// file in the same directory which is then renamed over the target, so a
// failed write never leaves a truncated save behind.
func (f *File) Save(st *gacha.State) error {
	data, err := json.MarshalIndent(fromState(st), "", "  ")
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save: close: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		return fmt.Errorf("save: replace %s: %w", f.Path, err)
	}
	return nil
}

// Load reads the save file and merges it into st. A missing file returns
// ErrNoSave; an unreadable or corrupt file returns an error and leaves st
// untouched.
func (f *File) Load(st *gacha.State) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoSave
		}
		return fmt.Errorf("save: read %s: %w", f.Path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("save: decode %s: %w", f.Path, err)
	}
	doc.mergeInto(st)
	return nil
}

func fromState(st *gacha.State) document {
	doc := document{
		AuraCounts:      nonNilMap(st.AuraCounts),
		ShinyAuraCounts: nonNilMap(st.ShinyAuraCounts),
		TotalRolls:      &st.TotalRolls,
		RollLog:         make([]rollPair, len(st.RollLog)),
		VisitedBiomes:   st.VisitedList(),
		ItemInventory:   append([]string{}, st.ItemInventory...),
		ItemEffects:     nonNilMap(st.ItemEffects),
		QuestStatus:     nonNilMap(st.QuestStatus),
		TitlesEarned:    append([]string{}, st.TitlesEarned...),
		CurrentBiome:    &st.CurrentBiome,
		CurrentWeather:  &st.CurrentWeather,
		TodayDate:       &st.TodayDate,
		VisitLog:        make([]visitPair, len(st.VisitLog)),
		DailyShop:       make(map[string][]shopPair, len(st.DailyShop)),
	}
	for i, e := range st.RollLog {
		doc.RollLog[i] = rollPair(e)
	}
	for i, v := range st.VisitLog {
		doc.VisitLog[i] = visitPair(v)
	}
	for tier, offers := range st.DailyShop {
		pairs := make([]shopPair, len(offers))
		for i, o := range offers {
			pairs[i] = shopPair(o)
		}
		doc.DailyShop[tier] = pairs
	}
	return doc
}

func (doc *document) mergeInto(st *gacha.State) {
	if doc.AuraCounts != nil {
		if st.AuraCounts == nil {
			st.AuraCounts = make(map[string]int, len(doc.AuraCounts))
		}
		for k, v := range doc.AuraCounts {
			st.AuraCounts[k] = v
		}
	}
	if doc.ShinyAuraCounts != nil {
		if st.ShinyAuraCounts == nil {
			st.ShinyAuraCounts = make(map[string]int, len(doc.ShinyAuraCounts))
		}
		for k, v := range doc.ShinyAuraCounts {
			st.ShinyAuraCounts[k] = v
		}
	}
	if doc.TotalRolls != nil {
		st.TotalRolls = *doc.TotalRolls
	}
	if doc.RollLog != nil {
		st.RollLog = make([]gacha.RollLogEntry, len(doc.RollLog))
		for i, p := range doc.RollLog {
			st.RollLog[i] = gacha.RollLogEntry(p)
		}
	}
	if doc.VisitedBiomes != nil {
		st.VisitedBiomes = make(map[string]bool, len(doc.VisitedBiomes))
		for _, b := range doc.VisitedBiomes {
			st.VisitedBiomes[b] = true
		}
	}
	if doc.ItemInventory != nil {
		st.ItemInventory = doc.ItemInventory
	}
	if doc.ItemEffects != nil {
		st.ItemEffects = doc.ItemEffects
	}
	if doc.QuestStatus != nil {
		st.QuestStatus = doc.QuestStatus
	}
	if doc.TitlesEarned != nil {
		st.TitlesEarned = doc.TitlesEarned
	}
	if doc.CurrentBiome != nil {
		st.CurrentBiome = *doc.CurrentBiome
	}
	if doc.CurrentWeather != nil {
		st.CurrentWeather = *doc.CurrentWeather
	}
	if doc.TodayDate != nil {
		st.TodayDate = *doc.TodayDate
	}
	if doc.VisitLog != nil {
		st.VisitLog = make([]gacha.VisitLogEntry, len(doc.VisitLog))
		for i, p := range doc.VisitLog {
			st.VisitLog[i] = gacha.VisitLogEntry(p)
		}
	}
	if doc.DailyShop != nil {
		st.DailyShop = make(map[string][]gacha.ShopOffer, len(doc.DailyShop))
		for tier, pairs := range doc.DailyShop {
			offers := make([]gacha.ShopOffer, len(pairs))
			for i, p := range pairs {
				offers[i] = gacha.ShopOffer(p)
			}
			st.DailyShop[tier] = offers
		}
	}
}

func nonNilMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return m
}
