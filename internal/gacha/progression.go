package gacha

import "github.com/vovakirdan/auraroll/internal/config"

// Predicate is a side-effect free test over the state.
type Predicate func(*State) bool

// QuestDefinition is a daily quest. Completing it grants Reward once per day.
type QuestDefinition struct {
	Name        string
	Description string
	Requirement Predicate
	Reward      string
}

// AchievementDefinition grants a permanent title.
type AchievementDefinition struct {
	Name        string
	Description string
	Requirement Predicate
}

// DefaultQuests returns the daily quest table.
func DefaultQuests(cat *config.Catalog) []QuestDefinition {
	biomes := cat.BiomeNames()
	return []QuestDefinition{
		{
			Name:        "Roll Novice",
			Description: "Roll 10 times",
			Requirement: func(s *State) bool { return s.TotalRolls >= 10 },
			Reward:      "Lucky Charm",
		},
		{
			Name:        "Aura Collector",
			Description: "Collect 5 unique auras",
			Requirement: func(s *State) bool { return s.UniqueAuras() >= 5 },
			Reward:      "Mystic Scroll",
		},
		{
			Name:        "Biome Explorer",
			Description: "Visit every biome today",
			Requirement: func(s *State) bool {
				for _, b := range biomes {
					if !s.VisitedBiomes[b] {
						return false
					}
				}
				return true
			},
			Reward: "Forest Potion",
		},
		{
			Name:        "Shiny Spotter",
			Description: "Own a shiny aura",
			Requirement: func(s *State) bool { return s.ShinyTotal() >= 1 },
			Reward:      "Shiny Sticker",
		},
	}
}

// DefaultAchievements returns the permanent achievement table.
func DefaultAchievements(cat *config.Catalog) []AchievementDefinition {
	biomes := cat.BiomeNames()
	global := cat.Settings.GlobalRarity
	auras := cat.Auras
	return []AchievementDefinition{
		{
			Name:        "Aura Guru",
			Description: "Collect 10 unique auras",
			Requirement: func(s *State) bool { return s.UniqueAuras() >= 10 },
		},
		{
			Name:        "Shiny Hunter",
			Description: "Roll your first shiny",
			Requirement: func(s *State) bool { return s.ShinyTotal() >= 1 },
		},
		{
			Name:        "Roll Master",
			Description: "Roll 100 times",
			Requirement: func(s *State) bool { return s.TotalRolls >= 100 },
		},
		{
			Name:        "Roll Legend",
			Description: "Roll 1000 times",
			Requirement: func(s *State) bool { return s.TotalRolls >= 1000 },
		},
		{
			Name:        "Globetrotter",
			Description: "Travel to every biome",
			Requirement: func(s *State) bool {
				seen := make(map[string]bool, len(s.VisitLog))
				for _, v := range s.VisitLog {
					seen[v.Biome] = true
				}
				for _, b := range biomes {
					if !seen[b] {
						return false
					}
				}
				return true
			},
		},
		{
			Name:        "Global Pull",
			Description: "Own an aura of 1 in 1000 or rarer",
			Requirement: func(s *State) bool {
				for _, a := range auras {
					if a.Rarity >= global && s.Owns(a.Name) {
						return true
					}
				}
				return false
			},
		},
	}
}

// Quests returns the active quest table.
func (e *Engine) Quests() []QuestDefinition { return e.quests }

// Achievements returns the active achievement table.
func (e *Engine) Achievements() []AchievementDefinition { return e.achievements }

// CheckQuests completes every quest whose requirement now holds and grants
// its reward. Completed quests are never granted twice.
func (e *Engine) CheckQuests() []QuestDefinition {
	st := e.state
	if st.QuestStatus == nil {
		st.QuestStatus = make(map[string]bool, len(e.quests))
	}

	var done []QuestDefinition
	for _, q := range e.quests {
		if st.QuestStatus[q.Name] || !q.Requirement(st) {
			continue
		}
		st.QuestStatus[q.Name] = true
		if q.Reward != "" {
			st.ItemInventory = append(st.ItemInventory, q.Reward)
		}
		e.emit(EventQuestCompleted, q.Name, q.Reward)
		e.logger.Debug("quest completed", "quest", q.Name, "reward", q.Reward)
		done = append(done, q)
	}
	return done
}

// CheckAchievements adds every newly earned title. Titles are permanent.
func (e *Engine) CheckAchievements() []AchievementDefinition {
	st := e.state

	var earned []AchievementDefinition
	for _, a := range e.achievements {
		if st.HasTitle(a.Name) || !a.Requirement(st) {
			continue
		}
		st.TitlesEarned = append(st.TitlesEarned, a.Name)
		e.emit(EventAchievementUnlocked, a.Name, "")
		e.logger.Debug("achievement unlocked", "title", a.Name)
		earned = append(earned, a)
	}
	return earned
}
