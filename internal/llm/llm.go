package llm

import (
	"context"
	"fmt"
)

// Generator is the text-generation collaborator: a pure, synchronous function
// from prompt to text. It backs knowledge condensation, general-question
// answering, and answer translation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Translate asks g to render text in targetLanguage, e.g. "Traditional Chinese".
func Translate(ctx context.Context, g Generator, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text into %s. Respond with the translation only.\n\n%s",
		targetLanguage, text,
	)
	return g.Generate(ctx, prompt)
}
