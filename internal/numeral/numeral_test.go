package numeral

import (
	"reflect"
	"testing"
)

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func TestComposeSequences(t *testing.T) {
	cases := []struct {
		n    int
		want []string
	}{
		{0, []string{"μηδέν"}},
		{7, []string{"επτά"}},
		{10, []string{"δέκα"}},
		{11, []string{"έντεκα"}},
		{17, []string{"δεκαεπτά"}},
		{21, []string{"είκοσι", "ένα"}},
		{40, []string{"σαράντα"}},
		{100, []string{"εκατό"}},
		{101, []string{"εκατόν", "ένα"}},
		{134, []string{"εκατόν", "τριάντα", "τέσσερα"}},
		{200, []string{"διακόσια"}},
		{215, []string{"διακόσια", "δεκαπέντε"}},
		{900, []string{"εννιακόσια"}},
		{1000, []string{"χίλια"}},
		{1100, []string{"χίλια", "εκατό"}},
		{1101, []string{"χίλια", "εκατόν", "ένα"}},
		{1965, []string{"χίλια", "εννιακόσια", "εξήντα", "πέντε"}},
		{1999, []string{"χίλια", "εννιακόσια", "ενενήντα", "εννέα"}},
	}
	for _, tc := range cases {
		got, err := Compose(tc.n)
		if err != nil {
			t.Fatalf("Compose(%d) returned error: %v", tc.n, err)
		}
		if !reflect.DeepEqual(texts(got), tc.want) {
			t.Errorf("Compose(%d) = %v, want %v", tc.n, texts(got), tc.want)
		}
	}
}

func TestComposeOutOfRange(t *testing.T) {
	for _, n := range []int{-1, 2000} {
		_, err := Compose(n)
		if err == nil {
			t.Fatalf("Compose(%d) expected error, got nil", n)
		}
		oor, ok := err.(*OutOfRangeError)
		if !ok {
			t.Fatalf("Compose(%d) error type %T, want *OutOfRangeError", n, err)
		}
		if oor.N != n {
			t.Errorf("OutOfRangeError.N = %d, want %d", oor.N, n)
		}
	}
}

func TestComposeDeterministic(t *testing.T) {
	for n := MinNumber; n <= MaxNumber; n++ {
		first, err := Compose(n)
		if err != nil {
			t.Fatalf("Compose(%d) returned error: %v", n, err)
		}
		second, err := Compose(n)
		if err != nil {
			t.Fatalf("Compose(%d) returned error on second call: %v", n, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("Compose(%d) not deterministic: %v vs %v", n, first, second)
		}
	}
}

func TestComposeNoAdjacentDuplicates(t *testing.T) {
	for n := MinNumber; n <= MaxNumber; n++ {
		seq, err := Compose(n)
		if err != nil {
			t.Fatalf("Compose(%d) returned error: %v", n, err)
		}
		if len(seq) == 0 {
			t.Fatalf("Compose(%d) returned empty sequence", n)
		}
		for i := 1; i < len(seq); i++ {
			if seq[i].Text == seq[i-1].Text {
				t.Fatalf("Compose(%d) repeats %q at positions %d and %d", n, seq[i].Text, i-1, i)
			}
		}
	}
}

func TestComposeNeverEmitsZeroComponent(t *testing.T) {
	for n := 1; n <= MaxNumber; n++ {
		seq, err := Compose(n)
		if err != nil {
			t.Fatalf("Compose(%d) returned error: %v", n, err)
		}
		for _, tok := range seq {
			if tok.ID == "0" {
				t.Fatalf("Compose(%d) emitted μηδέν", n)
			}
			if tok.ID == "" {
				t.Fatalf("Compose(%d) emitted empty token", n)
			}
		}
	}
}

func TestTokensUniqueKeys(t *testing.T) {
	seen := map[string]string{}
	for _, tok := range Tokens() {
		if tok.ID == "" || tok.Text == "" {
			t.Fatalf("incomplete token: %+v", tok)
		}
		if prev, ok := seen[tok.ID]; ok {
			t.Fatalf("duplicate asset key %q (%q vs %q)", tok.ID, prev, tok.Text)
		}
		seen[tok.ID] = tok.Text
	}
	if len(seen) != 39 {
		t.Fatalf("expected 39 vocabulary tokens, got %d", len(seen))
	}
}
