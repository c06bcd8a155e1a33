package gacha

import "sort"

// CollectionEntry is one owned aura or shiny variant.
type CollectionEntry struct {
	Aura   string
	Rarity int
	Count  int
	Shiny  bool
}

// Name returns the displayed name.
func (c CollectionEntry) Name() string {
	if c.Shiny {
		return ShinyName(c.Aura)
	}
	return c.Aura
}

// Collection lists owned auras by ascending rarity, each shiny variant
// right before its normal entry.
func (e *Engine) Collection() []CollectionEntry {
	auras := append(e.catalog.Auras[:0:0], e.catalog.Auras...)
	sort.SliceStable(auras, func(i, j int) bool { return auras[i].Rarity < auras[j].Rarity })

	var out []CollectionEntry
	for _, a := range auras {
		if n := e.state.ShinyAuraCounts[ShinyName(a.Name)]; n > 0 {
			out = append(out, CollectionEntry{Aura: a.Name, Rarity: a.Rarity, Count: n, Shiny: true})
		}
		if n := e.state.AuraCounts[a.Name]; n > 0 {
			out = append(out, CollectionEntry{Aura: a.Name, Rarity: a.Rarity, Count: n})
		}
	}
	return out
}

// Summary condenses the state for the stats view and the leaderboard.
type Summary struct {
	TotalRolls  int
	UniqueAuras int
	ShinyTotal  int
	BestAura    string
	BestRarity  int
	Titles      []string
}

// Summary returns the current roll statistics.
func (e *Engine) Summary() Summary {
	st := e.state
	sum := Summary{
		TotalRolls:  st.TotalRolls,
		UniqueAuras: st.UniqueAuras(),
		ShinyTotal:  st.ShinyTotal(),
		Titles:      append([]string(nil), st.TitlesEarned...),
	}
	for _, a := range e.catalog.Auras {
		if st.Owns(a.Name) && a.Rarity > sum.BestRarity {
			sum.BestAura = a.Name
			sum.BestRarity = a.Rarity
		}
	}
	return sum
}
