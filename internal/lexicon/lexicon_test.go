package lexicon

import "testing"

func TestNormalizeStripsPunctuationAndSmartQuotes(t *testing.T) {
	cases := map[string]string{
		"Damn!":     "damn",
		"don’t":     "don't",
		"“quoted”":  "quoted",
		"HECK.":     "heck",
		"well-worn": "well-worn",
		"  spaced ": "spaced",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetContainsSingleWord(t *testing.T) {
	s := FromWords([]string{"damn", "heck"})
	if !s.Contains(Normalize("Damn!")) {
		t.Error("expected lexicon hit on normalized single word")
	}
	if s.Contains(Normalize("nice")) {
		t.Error("unexpected lexicon hit")
	}
}

func TestSetContainsTwoWordPhraseAsConcatenation(t *testing.T) {
	s := FromWords([]string{"mother trucker"})
	joined := Normalize("mother") + Normalize("trucker")
	if !s.Contains(joined) {
		t.Error("expected lexicon hit on concatenated two-word phrase")
	}
}

func TestNilSetContainsNothing(t *testing.T) {
	var s *Set
	if s.Contains("damn") {
		t.Error("nil Set should never match")
	}
}
