package gacha

import "fmt"

// EventKind classifies a notification produced by the engine.
type EventKind int

const (
	EventRolled EventKind = iota
	EventShiny
	EventQuestCompleted
	EventAchievementUnlocked
	EventEffectStarted
	EventEffectExpired
	EventItemUsed
	EventCrafted
	EventPurchased
	EventBiomeChanged
	EventWeatherChanged
	EventNewDay
)

// Event is a notification for the player. The engine queues events; the
// front end drains and renders them.
type Event struct {
	Kind    EventKind
	Subject string // aura, item, quest, title, biome or weather name
	Detail  string
}

func (e Event) String() string {
	switch e.Kind {
	case EventRolled:
		return fmt.Sprintf("You rolled: %s", e.Subject)
	case EventShiny:
		return fmt.Sprintf("SHINY! You rolled: %s", e.Subject)
	case EventQuestCompleted:
		return fmt.Sprintf("Quest completed: %s! Reward: %s", e.Subject, e.Detail)
	case EventAchievementUnlocked:
		return fmt.Sprintf("Achievement unlocked: %s", e.Subject)
	case EventEffectStarted:
		return fmt.Sprintf("You used %s. %s", e.Subject, e.Detail)
	case EventEffectExpired:
		return fmt.Sprintf("Effect of %s has expired.", e.Subject)
	case EventItemUsed:
		return fmt.Sprintf("You used %s. It did something mysterious...", e.Subject)
	case EventCrafted:
		return fmt.Sprintf("Crafted %s!", e.Subject)
	case EventPurchased:
		return fmt.Sprintf("You acquired: %s", e.Subject)
	case EventBiomeChanged:
		return fmt.Sprintf("You have discovered a new biome: %s", e.Subject)
	case EventWeatherChanged:
		return fmt.Sprintf("Weather has changed to: %s", e.Subject)
	case EventNewDay:
		return "A new day dawns. The shop is restocked and quests are reset."
	default:
		return e.Subject
	}
}
