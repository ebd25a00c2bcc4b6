// Package stats contains session aggregation and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/akousma/internal/model"
)

// topMissCount limits the error-position ranking in the summary.
const topMissCount = 5

// Session accumulates round outcomes. It is owned by the game loop and
// passed explicitly; nothing here touches external state.
type Session struct {
	outcomes []model.Outcome
	misses   map[int]int
	order    []int
}

// NewSession returns an empty session aggregate.
func NewSession() *Session {
	return &Session{misses: map[int]int{}}
}

// Record appends one round outcome. Errored rounds are kept but never
// counted toward correct/incorrect tallies.
func (s *Session) Record(o model.Outcome) {
	s.outcomes = append(s.outcomes, o)
	if o.Errored {
		return
	}
	for _, pos := range o.MissPositions {
		if _, ok := s.misses[pos]; !ok {
			s.order = append(s.order, pos)
		}
		s.misses[pos]++
	}
}

// Rounds returns the number of recorded outcomes.
func (s *Session) Rounds() int {
	return len(s.outcomes)
}

// Summarize builds the end-of-session report data: totals, first-try
// count, and the most frequent incorrect digit positions. Ties rank the
// lower position index first, then insertion order.
func (s *Session) Summarize() model.Summary {
	sum := model.Summary{Rounds: len(s.outcomes)}
	for _, o := range s.outcomes {
		switch {
		case o.Errored:
			sum.Errored++
		case o.Guess == nil:
			sum.Shown++
			sum.Results = append(sum.Results, 0)
		case o.FirstTry:
			sum.FirstTry++
			sum.Results = append(sum.Results, 1)
		default:
			sum.Results = append(sum.Results, 0)
		}
	}

	orderIndex := make(map[int]int, len(s.order))
	for i, pos := range s.order {
		orderIndex[pos] = i
	}
	ranked := make([]model.PositionMiss, 0, len(s.misses))
	for pos, count := range s.misses {
		ranked = append(ranked, model.PositionMiss{Position: pos, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Position != ranked[j].Position {
			return ranked[i].Position < ranked[j].Position
		}
		return orderIndex[ranked[i].Position] < orderIndex[ranked[j].Position]
	})
	if len(ranked) > topMissCount {
		ranked = ranked[:topMissCount]
	}
	sum.TopMisses = ranked
	return sum
}
