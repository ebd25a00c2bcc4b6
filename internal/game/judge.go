package game

import "strconv"

// Judgement is the digit-by-digit comparison of one submission.
type Judgement struct {
	Correct bool
	// Positions has exactly the target's natural decimal width. Index 0
	// is the ones place; true means the guess matches there. The guess is
	// compared right-aligned, zero-padded on the left.
	Positions []bool
	// Cells mirrors the guess string left to right for rendering; Match
	// is false for every digit that disagrees with the target.
	Cells []Cell
}

// Cell is one rendered digit of the guess.
type Cell struct {
	R     rune
	Match bool
}

// Judge compares a guess against the target number. The guess must be a
// non-empty digit string; overall correctness is exact equality with the
// target's natural decimal form. Per-digit comparison pads both sides
// with zeros, so a leading '0' beyond the target's width renders as a
// match even though the guess as a whole is wrong.
func Judge(target int, guess string) Judgement {
	targetStr := strconv.Itoa(target)
	j := Judgement{
		Correct:   guess == targetStr,
		Positions: make([]bool, len(targetStr)),
		Cells:     make([]Cell, 0, len(guess)),
	}

	for i := range j.Positions {
		j.Positions[i] = digitAt(targetStr, i) == digitAt(guess, i)
	}
	for i, r := range guess {
		pos := len(guess) - 1 - i
		j.Cells = append(j.Cells, Cell{R: r, Match: digitAt(targetStr, pos) == byte(r)})
	}
	return j
}

// MissPositions lists every mismatched position (0 = ones): the false
// entries of Positions plus nonzero guess digits beyond the target's
// width. Leading zeros there are harmless and must not skew the miss
// ranking.
func (j Judgement) MissPositions(guess string) []int {
	var out []int
	for pos, ok := range j.Positions {
		if !ok {
			out = append(out, pos)
		}
	}
	for pos := len(j.Positions); pos < len(guess); pos++ {
		if digitAt(guess, pos) != '0' {
			out = append(out, pos)
		}
	}
	return out
}

// digitAt returns the digit at position pos from the right, or '0' when
// the string is too short.
func digitAt(s string, pos int) byte {
	idx := len(s) - 1 - pos
	if idx < 0 {
		return '0'
	}
	return s[idx]
}
