// Package numeral composes Greek verbalizations of integers.
package numeral

import "fmt"

// MinNumber and MaxNumber bound the supported range.
const (
	MinNumber = 0
	MaxNumber = 1999
)

// Token is one spoken vocabulary unit. ID is the stable asset key used by
// the clip store; Text is the canonical Greek word.
type Token struct {
	ID   string
	Text string
}

// OutOfRangeError reports a number outside [MinNumber, MaxNumber].
type OutOfRangeError struct {
	N int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("number %d out of range [%d, %d]", e.N, MinNumber, MaxNumber)
}

var ones = [10]Token{
	{"0", "μηδέν"},
	{"1", "ένα"},
	{"2", "δύο"},
	{"3", "τρία"},
	{"4", "τέσσερα"},
	{"5", "πέντε"},
	{"6", "έξι"},
	{"7", "επτά"},
	{"8", "οκτώ"},
	{"9", "εννέα"},
}

// tens is indexed by the tens digit; index 0 is unused.
var tens = [10]Token{
	{},
	{"10", "δέκα"},
	{"20", "είκοσι"},
	{"30", "τριάντα"},
	{"40", "σαράντα"},
	{"50", "πενήντα"},
	{"60", "εξήντα"},
	{"70", "εβδομήντα"},
	{"80", "ογδόντα"},
	{"90", "ενενήντα"},
}

// hundreds is indexed by the hundreds digit; index 0 is unused. Index 1 is
// the standalone form; see linkingHundred for 101-199.
var hundreds = [10]Token{
	{},
	{"100", "εκατό"},
	{"200", "διακόσια"},
	{"300", "τριακόσια"},
	{"400", "τετρακόσια"},
	{"500", "πεντακόσια"},
	{"600", "εξακόσια"},
	{"700", "επτακόσια"},
	{"800", "οκτακόσια"},
	{"900", "εννιακόσια"},
}

var thousand = Token{"1000", "χίλια"}

// compoundOverrides holds irregular single-word forms consulted before the
// regular tens+ones decomposition. 11-19 are compounds in Greek, never
// δέκα followed by a ones word.
var compoundOverrides = map[int]Token{
	11: {"11", "έντεκα"},
	12: {"12", "δώδεκα"},
	13: {"13", "δεκατρία"},
	14: {"14", "δεκατέσσερα"},
	15: {"15", "δεκαπέντε"},
	16: {"16", "δεκαέξι"},
	17: {"17", "δεκαεπτά"},
	18: {"18", "δεκαοκτώ"},
	19: {"19", "δεκαεννέα"},
}

// linkingHundred replaces εκατό when a lower component follows:
// 101 is εκατόν ένα, not εκατό ένα.
var linkingHundred = Token{"100n", "εκατόν"}

// Compose returns the ordered token sequence verbalizing n in Greek.
// The mapping is pure and deterministic; zero-valued components emit
// nothing, and n == 0 emits the single token μηδέν.
func Compose(n int) ([]Token, error) {
	if n < MinNumber || n > MaxNumber {
		return nil, &OutOfRangeError{N: n}
	}
	if n == 0 {
		return []Token{ones[0]}, nil
	}

	seq := make([]Token, 0, 4)
	rem := n
	if rem >= 1000 {
		seq = append(seq, thousand)
		rem -= 1000
	}
	if h := rem / 100; h > 0 {
		rem %= 100
		if h == 1 && rem > 0 {
			seq = append(seq, linkingHundred)
		} else {
			seq = append(seq, hundreds[h])
		}
	}
	if tok, ok := compoundOverrides[rem]; ok {
		seq = append(seq, tok)
		return seq, nil
	}
	if rem >= 10 {
		seq = append(seq, tens[rem/10])
		rem %= 10
	}
	if rem > 0 {
		seq = append(seq, ones[rem])
	}
	return seq, nil
}

// Tokens enumerates the full vocabulary needed to verbalize every number
// in the supported range, in a stable order.
func Tokens() []Token {
	out := make([]Token, 0, 40)
	for _, tok := range ones {
		out = append(out, tok)
	}
	for i := 1; i < len(tens); i++ {
		out = append(out, tens[i])
	}
	for i := 11; i <= 19; i++ {
		out = append(out, compoundOverrides[i])
	}
	for i := 1; i < len(hundreds); i++ {
		out = append(out, hundreds[i])
	}
	out = append(out, linkingHundred, thousand)
	return out
}
