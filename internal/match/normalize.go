package match

import "strings"

// synonym is one entry of the ordered folding table. Keys are tested for
// containment in order; the first hit wins, so multi-word keys sit before the
// abbreviations they expand.
type synonym struct {
	key       string
	canonical string
}

// synonymTable folds phrasing variants of technology and service terms into
// canonical labels. Each canonical value re-normalizes to itself, which keeps
// Normalize idempotent.
var synonymTable = []synonym{
	{"google workspace", "google workspace"},
	{"gws", "google workspace"},
	{"google accounts", "google workspace"},
	{"google cloud platform", "google cloud platform"},
	{"gcp", "google cloud platform"},
	{"cloud storage", "cloud storage"},
	{"storage in the cloud", "cloud storage"},
	{"public cloud", "public cloud"},
	{"artificial intelligence", "artificial intelligence"},
	{"ai", "artificial intelligence"},
	{"robotized", "robot"},
	{"robot", "robot"},
	{"chatbots", "chatbot"},
	{"chatbot", "chatbot"},
	{"interactive voice response", "interactive voice response"},
	{"ivr", "interactive voice response"},
	{"natural language generation", "natural language generation"},
}

// shortKeyMax bounds the key length below which containment would be too
// noisy ("ai" is a substring of "maintain"); short keys match whole words only.
const shortKeyMax = 3

// Normalize lower-cases and trims text, then folds it to the canonical form
// of the first synonym key it contains. Text with no recognized term is
// returned lower-cased and trimmed, unchanged otherwise. Pure and idempotent.
func Normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, s := range synonymTable {
		if containsTerm(t, s.key) {
			return s.canonical
		}
	}
	return t
}

// containsTerm reports whether term occurs in text, requiring word boundaries
// for short abbreviation keys.
func containsTerm(text, term string) bool {
	if len(term) > shortKeyMax {
		return strings.Contains(text, term)
	}
	return containsWord(text, term)
}

// containsWord reports whether word occurs in text delimited by non-letter,
// non-digit runes (or the text edges).
func containsWord(text, word string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		j := i + len(word)
		leftOK := i == 0 || !isWordByte(text[i-1])
		rightOK := j == len(text) || !isWordByte(text[j])
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
