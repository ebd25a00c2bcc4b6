package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/akousma/internal/locale"
	"github.com/verte-zerg/akousma/internal/model"
)

func TestRenderSummaryIncludesTopMisses(t *testing.T) {
	loc, err := locale.New("en")
	if err != nil {
		t.Fatalf("locale.New failed: %v", err)
	}
	sum := model.Summary{
		Rounds:   3,
		FirstTry: 2,
		TopMisses: []model.PositionMiss{
			{Position: 0, Count: 2},
			{Position: 1, Count: 1},
		},
		Results: []float64{1, 0, 1},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sum, loc, 80); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "STATISTICS") {
		t.Fatalf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "Rounds played: 3") {
		t.Fatalf("missing rounds line in:\n%s", out)
	}
	if !strings.Contains(out, "10^0 place") {
		t.Fatalf("missing top miss line in:\n%s", out)
	}
}

func TestRenderSummaryOmitsEmptySections(t *testing.T) {
	loc, err := locale.New("en")
	if err != nil {
		t.Fatalf("locale.New failed: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.Summary{Rounds: 1, FirstTry: 1}, loc, 80); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "shown") || strings.Contains(out, "skipped") {
		t.Fatalf("empty sections rendered:\n%s", out)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("empty input produced %q", got)
	}
	flat := Sparkline([]float64{1, 1, 1})
	if len(flat) != 3 {
		t.Fatalf("flat sparkline length %d, want 3", len(flat))
	}
	varied := Sparkline([]float64{0, 1})
	if varied[0] == varied[1] {
		t.Fatalf("expected distinct glyphs, got %q", varied)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Pos", "Count"}
	rows := [][]string{
		{"10^0 place", "12"},
		{"10^2 place", "3"},
	}
	rightAlign := map[int]bool{1: true}
	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "10^0 place    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10^2 place     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
