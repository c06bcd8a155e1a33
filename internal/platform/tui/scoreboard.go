package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/auraroll/internal/storage"
)

// Leaderboard layout constants
const (
	maxPulls      = 50 // Max notable pulls to load
	maxPlayers    = 10 // Max players in the ranking
	pullRowsShown = 10 // Visible rows of the pulls table
)

// leaderboard is the notable-pulls screen. The pulls table scrolls; the
// player ranking below it is static.
type leaderboard struct {
	table   table.Model
	pulls   []storage.Pull
	players []storage.PlayerStats
	player  string
	err     error
	offline bool
}

func newLeaderboard(width int) leaderboard {
	return leaderboard{table: createPullsTable(width)}
}

// createPullsTable creates the pulls table with columns sized to width.
func createPullsTable(width int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Aura", Width: 22},
		{Title: "Odds", Width: 12},
		{Title: "Biome", Width: 10},
		{Title: "Date", Width: 12},
	}

	// Drop the date and biome columns on narrow terminals
	if width > 0 && width < 90 {
		columns = columns[:4]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(pullRowsShown),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the pulls and the ranking from the store. A nil store marks
// the board offline.
func (l *leaderboard) load(store *storage.Store, player string) {
	l.player = player
	l.err = nil
	if store == nil {
		l.offline = true
		l.pulls, l.players = nil, nil
		l.updateTableRows()
		return
	}

	pulls, err := store.TopPulls(maxPulls)
	if err != nil {
		l.err = err
	}
	players, err := store.TopPlayers(maxPlayers)
	if err != nil && l.err == nil {
		l.err = err
	}
	l.pulls, l.players = pulls, players
	l.updateTableRows()
}

func (l *leaderboard) updateTableRows() {
	cols := len(l.table.Columns())
	rows := make([]table.Row, len(l.pulls))
	for i, p := range l.pulls {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			p.Player,
			p.DisplayName(),
			fmt.Sprintf("1 in %d", p.Rarity),
			p.Biome,
			p.CreatedAt.Format("Jan 02 15:04"),
		}
		rows[i] = row[:cols]
	}
	l.table.SetRows(rows)
	l.table.GotoTop()
}

func (l *leaderboard) resize(width int) {
	l.table = createPullsTable(width)
	l.updateTableRows()
}

func (l leaderboard) Update(msg tea.Msg) (leaderboard, tea.Cmd) {
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

func (l leaderboard) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("LEADERBOARD"))
	b.WriteString("\n\n")

	switch {
	case l.offline:
		b.WriteString(dimStyle.Render("The leaderboard database is not available."))
		return b.String()
	case l.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not read the leaderboard: %v", l.err)))
		return b.String()
	}

	if len(l.pulls) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		b.WriteString(emptyStyle.Render("No notable pulls recorded yet.\nRoll something rare!"))
	} else {
		b.WriteString(panelStyle.Render(l.table.View()))
	}

	if len(l.players) > 0 {
		rows := make([][]string, len(l.players))
		for i, p := range l.players {
			name := p.Player
			if p.Player == l.player {
				name += " (you)"
			}
			best := "-"
			if p.BestAura != "" {
				best = fmt.Sprintf("%s (1 in %d)", p.BestAura, p.BestRarity)
			}
			rows[i] = []string{
				strconv.Itoa(i + 1),
				name,
				strconv.Itoa(p.TotalRolls),
				strconv.Itoa(p.UniqueAuras),
				strconv.Itoa(p.ShinyTotal),
				best,
			}
		}
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Players"))
		b.WriteString("\n")
		b.WriteString(dataTable([]string{"#", "Player", "Rolls", "Unique", "Shiny", "Best"}, rows))
	}
	return b.String()
}
