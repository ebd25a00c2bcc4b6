package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/akousma/internal/locale"
	"github.com/verte-zerg/akousma/internal/model"
)

const sparkChars = " .:-=+*#%@"

// maxSparkWidth caps the sparkline so long sessions stay on one line.
const maxSparkWidth = 60

// RenderSummary prints the localized end-of-session report.
func RenderSummary(w io.Writer, sum model.Summary, loc locale.Localizer, width int) error {
	if width <= 0 {
		width = 80
	}
	rule := strings.Repeat("=", minInt(width, 40))

	lines := []string{
		rule,
		loc.T("stats_header"),
		rule,
		loc.T("stats_rounds", sum.Rounds),
		loc.T("stats_first_try", sum.FirstTry, firstTryPct(sum)),
	}
	if sum.Shown > 0 {
		lines = append(lines, loc.T("stats_shown", sum.Shown))
	}
	if sum.Errored > 0 {
		lines = append(lines, loc.T("stats_errored", sum.Errored))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(sum.TopMisses) > 0 {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, loc.T("stats_top_header")); err != nil {
			return err
		}
		rows := make([][]string, 0, len(sum.TopMisses))
		for i, miss := range sum.TopMisses {
			rows = append(rows, []string{
				fmt.Sprintf("%d.", i+1),
				loc.T("stats_position", miss.Position),
				fmt.Sprintf("%d", miss.Count),
			})
		}
		rightAlign := map[int]bool{2: true}
		for _, line := range formatTable(nil, rows, rightAlign) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	if len(sum.Results) > 1 {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		spark := Sparkline(tail(sum.Results, maxSparkWidth))
		if _, err := fmt.Fprintln(w, loc.T("stats_curve", spark)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, rule)
	return err
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func firstTryPct(sum model.Summary) float64 {
	judged := sum.Rounds - sum.Errored
	if judged <= 0 {
		return 0
	}
	return float64(sum.FirstTry) / float64(judged) * 100
}

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
