// Package model defines shared data structures.
package model

// Voice selects the voice gender of the pre-rendered clips.
type Voice string

// Supported voices; each maps to a subdirectory of the clip store.
const (
	VoiceMale   Voice = "male"
	VoiceFemale Voice = "female"
)

// Config defines game settings.
type Config struct {
	Lang     string
	Voice    Voice
	Min      int
	Max      int
	AssetDir string
}

// Outcome captures one finished round.
type Outcome struct {
	Target int
	// Guess is nil when the learner revealed the answer or abandoned the
	// round without submitting.
	Guess         *string
	Attempts      int
	FirstTry      bool
	MissPositions []int
	Errored       bool
	ErrMsg        string
}

// PositionMiss counts mismatches at one digit position (0 = ones).
type PositionMiss struct {
	Position int
	Count    int
}

// Summary aggregates a session for the final report.
type Summary struct {
	Rounds    int
	FirstTry  int
	Shown     int
	Errored   int
	TopMisses []PositionMiss
	// Results holds 1 for first-try-correct rounds and 0 otherwise, in
	// round order, for the report sparkline.
	Results []float64
}
