package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/auraroll/internal/gacha"
)

func collectionView(e *gacha.Engine) string {
	entries := e.Collection()
	if len(entries) == 0 {
		return section("Your Aura Collection", dimStyle.Render("You have no auras yet. Roll to start collecting!"))
	}
	rows := make([][]string, len(entries))
	for i, c := range entries {
		name := c.Name()
		if c.Shiny {
			name = "* " + name
		}
		rows[i] = []string{strconv.Itoa(i + 1), name, odds(c.Rarity), strconv.Itoa(c.Count)}
	}
	return section("Your Aura Collection", dataTable([]string{"No.", "Aura", "Odds", "Owned"}, rows))
}

func biomeView(e *gacha.Engine) string {
	st := e.State()
	biomeMod, weatherMod := e.Modifiers()

	lines := []string{
		fmt.Sprintf("Biome:   %s (x%.2f)", st.CurrentBiome, biomeMod),
		fmt.Sprintf("Weather: %s (x%.2f)", st.CurrentWeather, weatherMod),
		fmt.Sprintf("Luck:    x%g", e.LuckMultiplier()),
	}
	if left := e.WeatherChangeIn(); left > 0 {
		lines = append(lines, fmt.Sprintf("Weather changes in %s", formatSeconds(left)))
	} else {
		lines = append(lines, "Weather changes on the next tick")
	}
	lines = append(lines, fmt.Sprintf("Visited today: %s", strings.Join(st.VisitedList(), ", ")))

	pool := e.RollPool()
	rows := make([][]string, len(pool))
	for i, p := range pool {
		rows[i] = []string{p.Aura, odds(p.Rarity), odds(p.Adjusted)}
	}
	lines = append(lines, dataTable([]string{"Aura", "Base", "Here"}, rows))
	return section("Biome Info", lines...)
}

func shopView(tiers []gacha.TierOffers, weather string) string {
	title := fmt.Sprintf("Daily Shop (Weather: %s)", weather)
	var rows [][]string
	for _, t := range tiers {
		for _, o := range t.Offers {
			req := "Free"
			if o.RequiredAura != "" {
				req = "Needs " + o.RequiredAura
			}
			rows = append(rows, []string{t.Tier, o.Item, req})
		}
	}
	if len(rows) == 0 {
		return section(title, dimStyle.Render("The shop is empty today."))
	}
	return section(title, dataTable([]string{"Tier", "Item", "Cost"}, rows))
}

func inventoryView(e *gacha.Engine) string {
	inv := e.State().ItemInventory
	if len(inv) == 0 {
		return section("Your Item Inventory", dimStyle.Render("You have no items."))
	}
	rows := make([][]string, len(inv))
	for i, item := range inv {
		effect := "-"
		if def, ok := e.Catalog().Item(item); ok && def.HasEffect() {
			effect = fmt.Sprintf("%s, %s", def.Effect, formatSeconds(def.DurationSeconds))
		}
		rows[i] = []string{strconv.Itoa(i + 1), item, effect}
	}
	return section("Your Item Inventory", dataTable([]string{"No.", "Item", "Effect"}, rows))
}

func questsView(e *gacha.Engine) string {
	st := e.State()
	rows := make([][]string, 0, len(e.Quests()))
	for _, q := range e.Quests() {
		status := "Incomplete"
		if st.QuestStatus[q.Name] {
			status = "Completed"
		}
		rows = append(rows, []string{q.Name, q.Description, q.Reward, status})
	}
	quests := dataTable([]string{"Quest", "Goal", "Reward", "Status"}, rows)

	rows = make([][]string, 0, len(e.Achievements()))
	for _, a := range e.Achievements() {
		status := "Locked"
		if st.HasTitle(a.Name) {
			status = "Earned"
		}
		rows = append(rows, []string{a.Name, a.Description, status})
	}
	achievements := dataTable([]string{"Title", "Goal", "Status"}, rows)

	return section("Daily Quests", quests, titleStyle.Render("Achievements"), achievements)
}

func recipesView(e *gacha.Engine) string {
	recipes := e.Recipes()
	rows := make([][]string, len(recipes))
	for i, r := range recipes {
		reqs := make([]string, len(r.Requires))
		for j, mat := range r.Requires {
			reqs[j] = fmt.Sprintf("%s x%d", mat.Name, mat.Quantity)
		}
		ready := "yes"
		if missing := e.Shortfalls(r); len(missing) > 0 {
			ready = fmt.Sprintf("missing %d", len(missing))
		}
		rows[i] = []string{strconv.Itoa(i + 1), r.Name, strings.Join(reqs, ", "), ready}
	}
	return section("Crafting Menu", dataTable([]string{"No.", "Recipe", "Requires", "Ready"}, rows))
}

func effectsView(e *gacha.Engine) string {
	active := e.ActiveEffects()
	if len(active) == 0 {
		return section("Active Effects", dimStyle.Render("No active effects."))
	}
	rows := make([][]string, len(active))
	for i, a := range active {
		effect := a.Effect
		if effect == "" {
			effect = "-"
		}
		rows[i] = []string{a.Item, effect, formatSeconds(a.Remaining)}
	}
	return section("Active Effects",
		dataTable([]string{"Item", "Effect", "Remaining"}, rows),
		fmt.Sprintf("Luck multiplier: x%g, shiny odds: 1 in %d", e.LuckMultiplier(), e.ShinyChance()),
	)
}

func statsView(e *gacha.Engine) string {
	sum := e.Summary()
	st := e.State()

	lines := []string{
		fmt.Sprintf("Total Rolls: %d", sum.TotalRolls),
		fmt.Sprintf("Unique Auras: %d/%d", sum.UniqueAuras, len(e.Catalog().Auras)),
		fmt.Sprintf("Shiny Auras: %d", sum.ShinyTotal),
	}
	if sum.BestAura != "" {
		lines = append(lines, fmt.Sprintf("Best Pull: %s (%s)", sum.BestAura, odds(sum.BestRarity)))
	}
	if len(sum.Titles) > 0 {
		lines = append(lines, fmt.Sprintf("Titles: %s", strings.Join(sum.Titles, ", ")))
	}

	rows := make([][]string, 0, len(e.Catalog().Auras))
	for _, a := range e.Catalog().Auras {
		rows = append(rows, []string{
			a.Name,
			strconv.Itoa(st.AuraCounts[a.Name]),
			strconv.Itoa(st.ShinyAuraCounts[gacha.ShinyName(a.Name)]),
		})
	}
	lines = append(lines, dataTable([]string{"Aura", "Count", "Shiny"}, rows))

	if n := len(st.RollLog); n > 0 {
		recent := st.RollLog[max(0, n-5):]
		names := make([]string, len(recent))
		for i, r := range recent {
			names[i] = fmt.Sprintf("#%d %s", r.Index, r.Aura)
		}
		lines = append(lines, "Recent: "+strings.Join(names, ", "))
	}
	return section("Roll Stats", lines...)
}

// batchView summarizes a multi-roll: notable pulls in order, then counts.
func batchView(outcomes []gacha.RollOutcome) string {
	const maxNotable = 20

	counts := make(map[string]int)
	var notable []string
	for _, o := range outcomes {
		counts[o.Name()]++
		if (o.Shiny || o.Tier != gacha.TierCommon) && len(notable) < maxNotable {
			notable = append(notable, fmt.Sprintf("#%d ", o.Index)+renderOutcome(o))
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name, strconv.Itoa(counts[name])}
	}

	lines := []string{fmt.Sprintf("Rolled %d times.", len(outcomes))}
	lines = append(lines, notable...)
	lines = append(lines, dataTable([]string{"Aura", "Pulled"}, rows))
	return section("Batch Roll", lines...)
}

func helpView(e *gacha.Engine) string {
	return section("Help",
		"Type a menu number and press enter.",
		"Auras spawn only in their biomes. Some biomes and bad weather make every aura easier to pull.",
		"Items from the shop, quests and crafting grant timed luck effects; check them under Active Effects.",
		"Quests reset every day along with the shop. Achievements are permanent titles.",
		fmt.Sprintf("Pulls of 1 in %d or rarer, and every shiny, go on the leaderboard.", e.Catalog().Settings.NotableRarity),
		dimStyle.Render("esc cancels a prompt, pgup/pgdown scroll the log, ctrl+c saves and quits."),
	)
}
