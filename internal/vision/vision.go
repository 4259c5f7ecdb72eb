package vision

import (
	"context"
	"io"
	"regexp"
	"strings"
)

// ClassifyPrompt is the shared prompt used by all vision backends. The model
// is asked for a bare fruit name; ExtractLabel and the label normalizer clean
// up whatever formatting it adds anyway.
const ClassifyPrompt = `Please analyze this image and output only a single fruit name (for example, "Apple", "Banana", "Grape", "Kiwi", "Mango", "Orange", "Strawberry", "Chickoo", "Cherry").
Only respond with the fruit name without any extra characters, punctuation, numbers, or explanation. If unsure, try to guess a similar fruit name.`

// Classifier is the image-to-label collaborator. The returned label is raw
// model output; it may fall outside the allow-list and must go through the
// label normalizer.
type Classifier interface {
	Classify(ctx context.Context, r io.Reader, mimeType string) (string, error)
}

var answerPattern = regexp.MustCompile(`\*\*Answer:\*\*\s*(\w+)`)

// ExtractLabel pulls the label out of a model response that wraps it in a
// "**Answer:** Apple" style marker; otherwise it returns the trimmed response.
func ExtractLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := answerPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}
