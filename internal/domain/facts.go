package domain

import (
	"regexp"
	"strings"
)

// StructuredMarker is the prefix convention that distinguishes machine-parsable
// nutrition text ("Per 100g: 52 kcal, rich in Vitamin C") from free prose.
const StructuredMarker = "Per 100g:"

// Facts is the parsed form of a record's nutrition text. It is a tagged
// variant: either StructuredFacts extracted from the marker convention or
// UnstructuredFacts carrying the raw prose for per-question regex extraction.
type Facts interface {
	isFacts()
}

// StructuredFacts holds fields pre-extracted from marker-formatted nutrition
// text. Either field may be empty when the text carries the marker but is
// malformed; consumers report that as a parse failure.
type StructuredFacts struct {
	Calories string // token between the marker's colon and the first comma, e.g. "52 kcal"
	Vitamins string // free text after the "rich in" marker, e.g. "Vitamin C"
}

// UnstructuredFacts wraps prose nutrition text, typically an encyclopedic
// summary, that has no recognized structure.
type UnstructuredFacts struct {
	Raw string
}

func (StructuredFacts) isFacts()   {}
func (UnstructuredFacts) isFacts() {}

var richInPattern = regexp.MustCompile(`(?i)rich in (.+)`)

// ParseFacts classifies nutrition text once so that question answering never
// has to re-detect the format.
func ParseFacts(nutrition string) Facts {
	if !strings.Contains(nutrition, StructuredMarker) {
		return UnstructuredFacts{Raw: nutrition}
	}

	var facts StructuredFacts
	if _, after, ok := strings.Cut(nutrition, ":"); ok {
		calories := after
		if i := strings.Index(calories, ","); i >= 0 {
			calories = calories[:i]
		}
		facts.Calories = strings.TrimSpace(calories)
	}
	if m := richInPattern.FindStringSubmatch(nutrition); m != nil {
		facts.Vitamins = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), "."))
	}
	return facts
}
