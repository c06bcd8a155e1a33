package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/auraroll/internal/gacha"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	shinyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	greatStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	globalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("161")).
			Padding(0, 1)

	menuNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeadStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderOutcome formats one roll the way the roll log shows it.
func renderOutcome(o gacha.RollOutcome) string {
	var b strings.Builder
	if o.Shiny {
		b.WriteString(shinyStyle.Render(fmt.Sprintf("SHINY! You rolled: %s", o.Name())))
	} else {
		b.WriteString(fmt.Sprintf("You rolled: %s", o.Name()))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf(" (1 in %d)", o.Rarity)))

	switch o.Tier {
	case gacha.TierGlobal:
		b.WriteString(" ")
		b.WriteString(globalStyle.Render("GLOBAL PULL!!!"))
	case gacha.TierGreat:
		b.WriteString(" ")
		b.WriteString(greatStyle.Render("WOW GREAT JOB"))
	}
	if o.Fallback {
		b.WriteString(dimStyle.Render(" [fallback]"))
	}
	return b.String()
}

// renderEvent styles an engine notification.
func renderEvent(ev gacha.Event) string {
	switch ev.Kind {
	case gacha.EventAchievementUnlocked, gacha.EventQuestCompleted, gacha.EventCrafted, gacha.EventPurchased:
		return okStyle.Render(ev.String())
	case gacha.EventEffectExpired:
		return dimStyle.Render(ev.String())
	case gacha.EventShiny:
		return shinyStyle.Render(ev.String())
	default:
		return eventStyle.Render(ev.String())
	}
}

// dataTable renders rows as a bordered lipgloss table.
func dataTable(headers []string, rows [][]string) string {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return tableHeadStyle
			}
			return tableCellStyle
		})
	return t.Render()
}

// section joins a title and a body into one output block.
func section(title string, body ...string) string {
	parts := append([]string{titleStyle.Render(title)}, body...)
	return strings.Join(parts, "\n")
}

// formatSeconds renders a duration in seconds as 4m05s.
func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second)).Round(time.Second)
	return d.String()
}

func odds(rarity int) string {
	return fmt.Sprintf("1 in %d", rarity)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
