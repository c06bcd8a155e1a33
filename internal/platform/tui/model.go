package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/auraroll/internal/config"
	"github.com/vovakirdan/auraroll/internal/core"
	"github.com/vovakirdan/auraroll/internal/gacha"
	"github.com/vovakirdan/auraroll/internal/menu"
	"github.com/vovakirdan/auraroll/internal/save"
	"github.com/vovakirdan/auraroll/internal/storage"
)

// Layout constants
const (
	chromeHeight   = 11  // header, menu, status, prompt and help lines
	minOutput      = 3   // Minimum height of the output log
	maxBlocks      = 200 // Output blocks kept in the scrollback
	maxEvents      = 15  // Notifications shown per action
	menuColWidth   = 22
	inputCharLimit = 64
)

type mode int

const (
	modeMenu mode = iota
	modeRollCount
	modeConfirmBatch
	modeUseItem
	modeBuy
	modeCraft
	modeConfirmExit
	modeLeaderboard
)

// Options configures a game session.
type Options struct {
	Catalog *config.Catalog
	Save    *save.File     // nil disables save and load
	Store   *storage.Store // nil disables the leaderboard
	Logger  *log.Logger
	Player  string
	Runtime core.RuntimeConfig
	Clock   core.Clock // defaults to the wall clock
	Rand    core.Rand  // defaults to a PCG seeded from Runtime.Seed
	Fresh   bool       // skip loading the save file on start
}

// Model is the Bubble Tea model of one play session.
type Model struct {
	engine    *gacha.Engine
	save      *save.File
	store     *storage.Store
	logger    *log.Logger
	player    string
	sessionID string
	commands  *menu.Registry[handler]

	keys   KeyMap
	help   help.Model
	input  textinput.Model
	output viewport.Model
	board  leaderboard

	mode         mode
	pendingRolls int
	blocks       []string
	status       string
	statusErr    bool
	width        int
	height       int
	quitting     bool
}

// NewModel builds the engine, loads the save unless Fresh is set and runs
// the first menu tick.
func NewModel(opts Options) (Model, error) {
	if opts.Catalog == nil {
		return Model{}, errors.New("tui: catalog is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = core.RealClock{}
	}
	if opts.Player == "" {
		opts.Player = "player"
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	rng := opts.Rand
	if rng == nil {
		r, err := core.NewRand(opts.Runtime.Seed)
		if err != nil {
			return Model{}, fmt.Errorf("tui: %w", err)
		}
		rng = r
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = inputCharLimit
	ti.Width = 40

	h := help.New()
	h.ShowAll = false

	vp := viewport.New(opts.Runtime.ScreenW, outputHeight(opts.Runtime.ScreenH))
	vp.KeyMap = outputKeyMap()

	st := gacha.NewState(opts.Catalog)
	m := Model{
		save:      opts.Save,
		store:     opts.Store,
		logger:    opts.Logger,
		player:    opts.Player,
		sessionID: uuid.NewString(),
		commands:  newCommands(),
		keys:      DefaultKeyMap(),
		help:      h,
		input:     ti,
		output:    vp,
		board:     newLeaderboard(opts.Runtime.ScreenW),
		width:     opts.Runtime.ScreenW,
		height:    opts.Runtime.ScreenH,
	}

	if m.save != nil && !opts.Fresh {
		switch err := m.save.Load(st); {
		case err == nil:
			m.setStatus("Game loaded from " + m.save.Path)
		case errors.Is(err, save.ErrNoSave):
		default:
			m.logger.Warn("could not load save", "path", m.save.Path, "error", err)
			m.setError(fmt.Sprintf("Could not load save: %v", err))
		}
	}

	m.engine = gacha.NewEngine(opts.Catalog, st, rng, opts.Clock, gacha.WithLogger(opts.Logger))
	m.setMode(modeMenu)
	m.appendOutput(titleStyle.Render("Welcome to Aura Roll!") + dimStyle.Render(" Type a number and press enter."))
	m.finish()
	return m, nil
}

// Engine returns the session's engine.
func (m Model) Engine() *gacha.Engine { return m.engine }

// Quitting reports whether the session ended.
func (m Model) Quitting() bool { return m.quitting }

// Init starts the cursor blink and the header clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, clockTick())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case clockMsg:
		return m, clockTick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.saveGame()
		m.quitting = true
		return m, tea.Quit
	}

	if m.mode == modeLeaderboard {
		switch msg.String() {
		case "esc", "enter", "q", "b":
			m.input.Focus()
			m.setMode(modeMenu)
			m.finish()
			return m, textinput.Blink
		}
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		value := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		return m.submit(value)

	case key.Matches(msg, m.keys.Cancel):
		if m.mode != modeMenu {
			m.setStatus("Cancelled.")
			m.setMode(modeMenu)
			m.finish()
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.output.Width = msg.Width
	m.output.Height = outputHeight(msg.Height)
	m.help.Width = msg.Width
	m.board.resize(msg.Width)
	m.refreshOutput()
	return m, nil
}

func outputHeight(screenH int) int {
	return max(minOutput, screenH-chromeHeight)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeLeaderboard {
		return m.board.View() + "\n\n" + dimStyle.Render("up/down scroll - esc back")
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(m.menuView())
	b.WriteString("\n")
	switch {
	case m.status == "":
		b.WriteString(" ")
	case m.statusErr:
		b.WriteString(errorStyle.Render(m.status))
	default:
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) headerView() string {
	st := m.engine.State()
	info := fmt.Sprintf(" Biome: %s | Weather: %s | Luck: x%g | Rolls: %d ",
		st.CurrentBiome, st.CurrentWeather, m.engine.LuckMultiplier(), st.TotalRolls)
	if n := len(m.engine.ActiveEffects()); n > 0 {
		info += fmt.Sprintf("| Effects: %d ", n)
	}
	return headerStyle.Render("AURA ROLL") + dimStyle.Render(info)
}

func (m Model) menuView() string {
	cmds := m.commands.List()
	if len(cmds) == 0 {
		return ""
	}
	per := (len(cmds) + 2) / 3
	cols := make([]string, 0, 3)
	for i := 0; i < len(cmds); i += per {
		end := min(i+per, len(cmds))
		lines := make([]string, 0, per)
		for _, c := range cmds[i:end] {
			lines = append(lines, menuNumberStyle.Render(fmt.Sprintf("%2d.", c.Number))+" "+c.Title)
		}
		cols = append(cols, lipgloss.NewStyle().Width(menuColWidth).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *Model) setMode(md mode) {
	m.mode = md
	m.input.Prompt = promptStyle.Render(m.promptText())
}

func (m Model) promptText() string {
	switch m.mode {
	case modeRollCount:
		return "How many times do you want to roll? "
	case modeConfirmBatch:
		return fmt.Sprintf("Roll %d times? (y/n) ", m.pendingRolls)
	case modeUseItem:
		return "Select item number to use (0 to cancel): "
	case modeBuy:
		return "Enter item name to buy (or press Enter to exit): "
	case modeCraft:
		return "Select recipe number (0 to cancel): "
	case modeConfirmExit:
		return "Save before exiting? (y/n) "
	default:
		return "Choose an option: "
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

// appendOutput adds blocks to the scrollback and scrolls to the bottom.
func (m *Model) appendOutput(blocks ...string) {
	m.blocks = append(m.blocks, blocks...)
	if len(m.blocks) > maxBlocks {
		m.blocks = append([]string(nil), m.blocks[len(m.blocks)-maxBlocks:]...)
	}
	m.refreshOutput()
}

func (m *Model) refreshOutput() {
	m.output.SetContent(strings.Join(m.blocks, "\n"))
	m.output.GotoBottom()
}

// flushEvents renders the engine's queued notifications. Roll events are
// skipped because rolls render from their outcomes.
func (m *Model) flushEvents() {
	var lines []string
	hidden := 0
	for _, ev := range m.engine.Drain() {
		if ev.Kind == gacha.EventRolled || ev.Kind == gacha.EventShiny {
			continue
		}
		if len(lines) == maxEvents {
			hidden++
			continue
		}
		lines = append(lines, renderEvent(ev))
	}
	if hidden > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("...and %d more notifications", hidden)))
	}
	if len(lines) > 0 {
		m.appendOutput(strings.Join(lines, "\n"))
	}
}

// finish completes an interaction: the menu tick, then its notifications.
func (m *Model) finish() {
	m.engine.Tick()
	m.flushEvents()
}

// recordPull stores a notable pull on the leaderboard. Failures only log.
func (m *Model) recordPull(o gacha.RollOutcome) {
	if m.store == nil || (!o.Shiny && o.Tier == gacha.TierCommon) {
		return
	}
	_, err := m.store.RecordPull(storage.Pull{
		SessionID: m.sessionID,
		Player:    m.player,
		Aura:      o.Aura,
		Rarity:    o.Rarity,
		Shiny:     o.Shiny,
		RollIndex: o.Index,
		Biome:     o.Biome,
	})
	if err != nil {
		m.logger.Warn("could not record pull", "aura", o.Name(), "error", err)
	}
}

// saveGame writes the save file and refreshes the player's leaderboard
// entry. It reports success in the status line.
func (m *Model) saveGame() bool {
	if m.save == nil {
		m.setError("Saving is disabled for this session.")
		return false
	}
	st := m.engine.State()
	if err := m.save.Save(st); err != nil {
		m.logger.Error("could not save game", "path", m.save.Path, "error", err)
		m.setError(fmt.Sprintf("Save failed: %v", err))
		return false
	}
	m.logger.Info("game saved", "path", m.save.Path, "rolls", st.TotalRolls)

	if m.store != nil {
		sum := m.engine.Summary()
		err := m.store.UpsertPlayer(storage.PlayerStats{
			Player:      m.player,
			TotalRolls:  sum.TotalRolls,
			UniqueAuras: sum.UniqueAuras,
			ShinyTotal:  sum.ShinyTotal,
			BestAura:    sum.BestAura,
			BestRarity:  sum.BestRarity,
			Titles:      len(sum.Titles),
		})
		if err != nil {
			m.logger.Warn("could not update leaderboard", "player", m.player, "error", err)
		}
	}
	m.setStatus("Game saved.")
	return true
}

func (m *Model) loadGame() {
	if m.save == nil {
		m.setError("Loading is disabled for this session.")
		return
	}
	err := m.save.Load(m.engine.State())
	switch {
	case errors.Is(err, save.ErrNoSave):
		m.setError("No save file found.")
	case err != nil:
		m.logger.Error("could not load game", "path", m.save.Path, "error", err)
		m.setError(fmt.Sprintf("Load failed: %v", err))
	default:
		m.engine.State().EnsureAuraKeys(m.engine.Catalog())
		m.logger.Info("game loaded", "path", m.save.Path)
		m.setStatus("Game loaded.")
	}
}
