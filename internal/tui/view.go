package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/akousma/internal/game"
	"github.com/verte-zerg/akousma/internal/locale"
	"github.com/verte-zerg/akousma/internal/model"
	"github.com/verte-zerg/akousma/internal/stats"
)

// renderFeedback colors the rejected guess digit by digit: matching
// digits keep the normal foreground, mismatched ones turn red.
func renderFeedback(j game.Judgement) string {
	var b strings.Builder
	for _, cell := range j.Cells {
		if cell.Match {
			b.WriteString(bufferStyle.Render(string(cell.R)))
		} else {
			b.WriteString(wrongStyle.Render(string(cell.R)))
		}
	}
	return b.String()
}

// buildSummaryView renders the end-of-session screen shown before exit.
func buildSummaryView(sum model.Summary, loc locale.Localizer) string {
	lines := []string{
		titleStyle.Render(loc.T("stats_header")),
		"",
		loc.T("stats_rounds", sum.Rounds),
		loc.T("stats_first_try", sum.FirstTry, firstTryPct(sum)),
	}
	if sum.Shown > 0 {
		lines = append(lines, loc.T("stats_shown", sum.Shown))
	}
	if sum.Errored > 0 {
		lines = append(lines, loc.T("stats_errored", sum.Errored))
	}

	if len(sum.TopMisses) > 0 {
		lines = append(lines, "", loc.T("stats_top_header"), missTable(sum.TopMisses, loc))
	}

	if len(sum.Results) > 1 {
		lines = append(lines, "", loc.T("stats_curve", stats.Sparkline(sum.Results)))
	}

	lines = append(lines, "", hintStyle.Render(loc.T("summary_exit")))
	return joinLines(lines)
}

func missTable(misses []model.PositionMiss, loc locale.Localizer) string {
	posTitle := "Position"
	posWidth := len(posTitle)
	rows := make([]table.Row, 0, len(misses))
	for i, miss := range misses {
		pos := loc.T("stats_position", miss.Position)
		if w := lipgloss.Width(pos); w > posWidth {
			posWidth = w
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d.", i+1),
			pos,
			fmt.Sprintf("%d", miss.Count),
		})
	}

	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: posTitle, Width: posWidth},
		{Title: loc.T("stats_count"), Width: 8},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	styles.Selected = styles.Cell

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)),
		table.WithStyles(styles),
	)
	return t.View()
}

func firstTryPct(sum model.Summary) float64 {
	judged := sum.Rounds - sum.Errored
	if judged <= 0 {
		return 0
	}
	return float64(sum.FirstTry) / float64(judged) * 100
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
