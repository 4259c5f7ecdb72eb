package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeGenerator struct {
	client *anthropic.Client
	model  string
}

func NewClaudeGenerator(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeGenerator {
	return &ClaudeGenerator{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (g *ClaudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(g.model),
		MaxTokens: 1024,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("claude returned an empty response")
	}

	return strings.TrimSpace(resp.Content[0].GetText()), nil
}
