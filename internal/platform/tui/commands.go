package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/auraroll/internal/gacha"
	"github.com/vovakirdan/auraroll/internal/menu"
)

// handler runs one menu command. A handler that opens a sub-prompt
// switches the mode; the menu tick runs once the mode is back to the menu.
type handler func(m *Model) tea.Cmd

func newCommands() *menu.Registry[handler] {
	r := menu.NewRegistry[handler]()
	r.Register(1, "Roll Once", (*Model).rollOnce)
	r.Register(2, "Roll Multiple", (*Model).rollMultiple)
	r.Register(3, "View Collection", show(collectionView))
	r.Register(4, "Biome Info", show(biomeView))
	r.Register(5, "Daily Shop", (*Model).openShop)
	r.Register(6, "Item Inventory", (*Model).openInventory)
	r.Register(7, "Daily Quests", show(questsView))
	r.Register(8, "Crafting", (*Model).openCrafting)
	r.Register(9, "Active Effects", show(effectsView))
	r.Register(10, "Roll Stats", show(statsView))
	r.Register(11, "Leaderboard", (*Model).openLeaderboard)
	r.Register(12, "Help", show(helpView))
	r.Register(13, "Save Game", (*Model).saveCommand)
	r.Register(14, "Load Game", (*Model).loadCommand)
	r.Register(15, "Exit", (*Model).exitCommand)
	return r
}

// show wraps a read-only view as a command.
func show(view func(*gacha.Engine) string) handler {
	return func(m *Model) tea.Cmd {
		m.appendOutput(view(m.engine))
		return nil
	}
}

// submit dispatches the entered line according to the current mode.
func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	m.setStatus("")

	var cmd tea.Cmd
	switch m.mode {
	case modeMenu:
		if value == "" {
			return m, nil
		}
		c, err := m.commands.Parse(value)
		if err != nil {
			m.setError("Invalid choice, try again.")
			return m, nil
		}
		m.appendOutput(echoStyle.Render(fmt.Sprintf("> %d. %s", c.Number, c.Title)))
		cmd = c.Handler(&m)
	case modeRollCount:
		m.submitRollCount(value)
	case modeConfirmBatch:
		if isYes(value) {
			m.rollBatch(m.pendingRolls)
		} else {
			m.setStatus("Batch roll cancelled.")
		}
		m.pendingRolls = 0
		m.setMode(modeMenu)
	case modeUseItem:
		m.submitUseItem(value)
	case modeBuy:
		m.submitBuy(value)
	case modeCraft:
		m.submitCraft(value)
	case modeConfirmExit:
		cmd = m.submitExit(value)
	}

	switch {
	case m.quitting:
	case m.mode == modeMenu:
		m.finish()
	default:
		m.flushEvents()
	}
	return m, cmd
}

func isYes(s string) bool {
	s = strings.ToLower(s)
	return s == "y" || s == "yes"
}

func isNo(s string) bool {
	s = strings.ToLower(s)
	return s == "n" || s == "no"
}

// parseChoice reads a numbered choice. Empty input cancels.
func parseChoice(value string) (n int, cancel bool, err error) {
	if value == "" {
		return 0, true, nil
	}
	n, err = strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, false, menu.ErrInvalidChoice
	}
	return n, n == 0, nil
}

func (m *Model) rollOnce() tea.Cmd {
	o := m.engine.RollOnce()
	m.recordPull(o)
	m.appendOutput(renderOutcome(o))
	return nil
}

func (m *Model) rollMultiple() tea.Cmd {
	m.setMode(modeRollCount)
	return nil
}

func (m *Model) submitRollCount(value string) {
	if value == "" {
		m.setMode(modeMenu)
		return
	}
	set := m.engine.Catalog().Settings
	n, err := strconv.Atoi(value)
	switch {
	case err != nil || n <= 0:
		m.setError("Invalid number.")
	case n > set.MaxBatch:
		m.setError(fmt.Sprintf("You can roll at most %d times at once.", set.MaxBatch))
	case n > set.BatchConfirmThreshold:
		m.pendingRolls = n
		m.setMode(modeConfirmBatch)
	default:
		m.rollBatch(n)
		m.setMode(modeMenu)
	}
}

func (m *Model) rollBatch(n int) {
	outcomes := m.engine.RollMultiple(n)
	for _, o := range outcomes {
		m.recordPull(o)
	}
	if len(outcomes) == 1 {
		m.appendOutput(renderOutcome(outcomes[0]))
		return
	}
	m.appendOutput(batchView(outcomes))
}

func (m *Model) openShop() tea.Cmd {
	tiers := m.engine.OpenShop()
	m.appendOutput(shopView(tiers, m.engine.State().CurrentWeather))
	m.setMode(modeBuy)
	return nil
}

func (m *Model) submitBuy(value string) {
	if value == "" {
		m.setMode(modeMenu)
		return
	}
	bought, err := m.engine.Buy(value)
	var perr *gacha.PurchaseError
	switch {
	case errors.As(err, &perr):
		m.setError(fmt.Sprintf("Need %s aura to buy %s.", perr.RequiredAura, perr.Item))
	case errors.Is(err, gacha.ErrNotInShop):
		m.setError("Item not in shop.")
	case err != nil:
		m.setError(err.Error())
	default:
		m.logger.Debug("purchased", "item", bought)
		m.setStatus(fmt.Sprintf("Bought %s. Enter another item or press enter to leave.", bought))
	}
}

func (m *Model) openInventory() tea.Cmd {
	m.appendOutput(inventoryView(m.engine))
	if len(m.engine.State().ItemInventory) > 0 {
		m.setMode(modeUseItem)
	}
	return nil
}

func (m *Model) submitUseItem(value string) {
	n, cancel, err := parseChoice(value)
	if err != nil {
		m.setError("Invalid choice.")
		return
	}
	if cancel {
		m.setMode(modeMenu)
		return
	}
	used, err := m.engine.UseItem(n - 1)
	if errors.Is(err, gacha.ErrInvalidItem) {
		m.setError("Invalid choice.")
		return
	}
	m.logger.Debug("item used", "item", used.Item, "effect", used.Effect)
	m.setMode(modeMenu)
}

func (m *Model) openCrafting() tea.Cmd {
	m.appendOutput(recipesView(m.engine))
	m.setMode(modeCraft)
	return nil
}

func (m *Model) submitCraft(value string) {
	n, cancel, err := parseChoice(value)
	recipes := m.engine.Recipes()
	if err != nil || n > len(recipes) {
		m.setError("Invalid choice.")
		return
	}
	if cancel {
		m.setMode(modeMenu)
		return
	}
	_, err = m.engine.Craft(recipes[n-1].Name)
	var merr *gacha.MissingMaterialsError
	switch {
	case errors.As(err, &merr):
		parts := make([]string, len(merr.Missing))
		for i, sf := range merr.Missing {
			parts[i] = fmt.Sprintf("%s %d/%d", sf.Material, sf.Have, sf.Need)
		}
		m.setError(fmt.Sprintf("You lack required materials for %s: %s", merr.Recipe, strings.Join(parts, ", ")))
	case err != nil:
		m.setError(err.Error())
	}
	m.setMode(modeMenu)
}

func (m *Model) openLeaderboard() tea.Cmd {
	m.board.load(m.store, m.player)
	m.input.Blur()
	m.setMode(modeLeaderboard)
	return nil
}

func (m *Model) saveCommand() tea.Cmd {
	m.saveGame()
	return nil
}

func (m *Model) loadCommand() tea.Cmd {
	m.loadGame()
	return nil
}

func (m *Model) exitCommand() tea.Cmd {
	m.setMode(modeConfirmExit)
	return nil
}

func (m *Model) submitExit(value string) tea.Cmd {
	switch {
	case isYes(value):
		if !m.saveGame() {
			m.setMode(modeMenu)
			return nil
		}
	case isNo(value):
	default:
		m.setError("Please answer y or n.")
		return nil
	}
	m.quitting = true
	return tea.Quit
}
