package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/akousma/internal/game"
	"github.com/verte-zerg/akousma/internal/locale"
	"github.com/verte-zerg/akousma/internal/model"
	"github.com/verte-zerg/akousma/internal/playback"
)

func TestRenderFeedbackKeepsDigitOrder(t *testing.T) {
	j := game.Judge(1965, "1865")
	out := renderFeedback(j)
	plain := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, out)
	if plain != "1865" {
		t.Fatalf("feedback digits = %q, want 1865", plain)
	}
}

func TestBuildSummaryView(t *testing.T) {
	loc, err := locale.New("en")
	if err != nil {
		t.Fatalf("locale.New failed: %v", err)
	}
	sum := model.Summary{
		Rounds:   3,
		FirstTry: 2,
		TopMisses: []model.PositionMiss{
			{Position: 0, Count: 2},
		},
		Results: []float64{1, 0, 1},
	}
	out := buildSummaryView(sum, loc)
	if !strings.Contains(out, "STATISTICS") {
		t.Fatalf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "Rounds played: 3") {
		t.Fatalf("missing rounds line in:\n%s", out)
	}
	if !strings.Contains(out, "10^0 place") {
		t.Fatalf("missing miss row in:\n%s", out)
	}
	if !strings.Contains(out, "press enter to exit") {
		t.Fatalf("missing exit hint in:\n%s", out)
	}
}

func TestStalePlaybackDoneIgnored(t *testing.T) {
	current := &playback.Handle{}
	stale := &playback.Handle{}
	m := &Model{handle: current}
	_, cmd := m.Update(playbackDoneMsg{handle: stale, err: errors.New("device gone")})
	if cmd != nil {
		t.Fatalf("expected no command for stale completion")
	}
	if m.handle != current {
		t.Fatalf("stale completion cleared the active handle")
	}
}
