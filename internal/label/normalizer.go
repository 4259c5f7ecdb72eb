package label

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnrecognized means the cleaned label is not on the allow-list. Callers
// prompt for one manual correction before giving up on the fruit.
var ErrUnrecognized = errors.New("unrecognized fruit")

// DefaultAllowList is the set of fruits the vision prompt asks for.
var DefaultAllowList = []string{
	"Apple", "Banana", "Grape", "Kiwi", "Mango",
	"Orange", "Strawberry", "Chickoo", "Cherry",
}

var titleCaser = cases.Title(language.English)

// Normalizer validates raw recognition output against a fixed allow-list.
// It cleans formatting noise but never coerces an unknown label to a known one.
type Normalizer struct {
	allowed map[string]struct{}
	names   []string
}

func NewNormalizer(allowed []string) *Normalizer {
	n := &Normalizer{
		allowed: make(map[string]struct{}, len(allowed)),
		names:   append([]string(nil), allowed...),
	}
	for _, name := range allowed {
		n.allowed[name] = struct{}{}
	}
	return n
}

// Normalize strips everything but letters and spaces, title-cases the result,
// and accepts it only on an exact allow-list match.
func (n *Normalizer) Normalize(raw string) (string, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return "", ErrUnrecognized
	}
	if _, ok := n.allowed[cleaned]; !ok {
		return "", ErrUnrecognized
	}
	return cleaned, nil
}

// Allowed returns the allow-list, for prompts that enumerate valid names.
func (n *Normalizer) Allowed() []string {
	return n.names
}

// Clean reduces a raw label to letters and single spaces, title-cased.
func Clean(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	return titleCaser.String(strings.ToLower(cleaned))
}
