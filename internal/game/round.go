// Package game implements the guessing round state machine.
package game

import (
	"fmt"

	"github.com/verte-zerg/akousma/internal/model"
	"github.com/verte-zerg/akousma/internal/numeral"
)

// State is the round's position in its lifecycle.
type State int

// Round states, in order.
const (
	StatePlaying State = iota
	StateAwaitingInput
	StateDone
)

// Command tells the caller what to do after an input event.
type Command int

// Commands returned by input events.
const (
	CmdNone Command = iota
	CmdRestartPlayback
	CmdRoundDone
	CmdQuit
)

// Round drives one guess-the-number trial. The caller owns playback and
// feeds keystroke events in arrival order; the round owns the input buffer
// and the outcome.
type Round struct {
	target  int
	tokens  []numeral.Token
	state   State
	buffer  []rune
	attempt int
	// firstTryEligible drops to false on the first repeat, edit, or wrong
	// submission; only an eligible correct submission counts as first-try.
	firstTryEligible bool
	misses           []int
	last             *Judgement
	outcome          *model.Outcome
}

// NewRound composes the target's verbalization and returns a round ready
// for playback. A composition failure is a configuration error: the game
// range must stay inside the composer's domain.
func NewRound(target int) (*Round, error) {
	tokens, err := numeral.Compose(target)
	if err != nil {
		return nil, fmt.Errorf("failed to compose %d: %w", target, err)
	}
	return &Round{
		target:           target,
		tokens:           tokens,
		state:            StatePlaying,
		firstTryEligible: true,
	}, nil
}

// Target returns the number being played.
func (r *Round) Target() int { return r.target }

// Tokens returns the verbalization to play.
func (r *Round) Tokens() []numeral.Token { return r.tokens }

// State returns the current round state.
func (r *Round) State() State { return r.state }

// Buffer returns the pending input.
func (r *Round) Buffer() string { return string(r.buffer) }

// LastJudgement returns the most recent submission's comparison, or nil.
func (r *Round) LastJudgement() *Judgement { return r.last }

// Begin marks playback as started; input events are accepted from here on.
func (r *Round) Begin() {
	if r.state == StatePlaying {
		r.state = StateAwaitingInput
	}
}

// Digit appends a digit to the input buffer.
func (r *Round) Digit(d rune) {
	if r.state != StateAwaitingInput || d < '0' || d > '9' {
		return
	}
	r.buffer = append(r.buffer, d)
}

// Backspace removes the last buffered digit. Editing forfeits first-try
// eligibility.
func (r *Round) Backspace() {
	if r.state != StateAwaitingInput || len(r.buffer) == 0 {
		return
	}
	r.buffer = r.buffer[:len(r.buffer)-1]
	r.firstTryEligible = false
}

// Repeat requests a fresh playback of the same clips. The buffer is left
// untouched; first-try eligibility is forfeited.
func (r *Round) Repeat() Command {
	if r.state != StateAwaitingInput {
		return CmdNone
	}
	r.firstTryEligible = false
	return CmdRestartPlayback
}

// Submit judges the buffered guess. A wrong guess keeps the round alive
// with feedback; a correct one finishes it.
func (r *Round) Submit() Command {
	if r.state != StateAwaitingInput || len(r.buffer) == 0 {
		return CmdNone
	}
	guess := string(r.buffer)
	r.attempt++
	j := Judge(r.target, guess)
	r.last = &j

	if j.Correct {
		r.finish(&model.Outcome{
			Target:        r.target,
			Guess:         &guess,
			Attempts:      r.attempt,
			FirstTry:      r.firstTryEligible,
			MissPositions: r.misses,
		})
		return CmdRoundDone
	}

	r.misses = append(r.misses, j.MissPositions(guess)...)
	r.firstTryEligible = false
	r.buffer = r.buffer[:0]
	return CmdNone
}

// Show reveals the answer and finishes the round with an absent guess.
func (r *Round) Show() Command {
	if r.state != StateAwaitingInput {
		return CmdNone
	}
	r.finish(&model.Outcome{
		Target:        r.target,
		Attempts:      r.attempt,
		MissPositions: r.misses,
	})
	return CmdRoundDone
}

// Quit finishes the round like Show and signals the game loop to stop.
func (r *Round) Quit() Command {
	if r.state == StateDone {
		return CmdQuit
	}
	r.finish(&model.Outcome{
		Target:        r.target,
		Attempts:      r.attempt,
		MissPositions: r.misses,
	})
	return CmdQuit
}

// Fail finishes the round as errored; the failure must not reach the
// correct/incorrect tallies.
func (r *Round) Fail(err error) {
	r.finish(&model.Outcome{
		Target:  r.target,
		Errored: true,
		ErrMsg:  err.Error(),
	})
}

// Outcome returns the finished round's record; valid once State is Done.
func (r *Round) Outcome() model.Outcome {
	if r.outcome == nil {
		return model.Outcome{Target: r.target}
	}
	return *r.outcome
}

func (r *Round) finish(o *model.Outcome) {
	r.outcome = o
	r.state = StateDone
}
