package claude

import (
	"context"
	"fmt"
	"io"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/vbonduro/fruitchat/internal/vision"
)

type ClaudeClassifier struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClassifier(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeClassifier {
	return &ClaudeClassifier{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (c *ClaudeClassifier) Classify(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		// A fruit name is a handful of tokens; 64 leaves room for models that
		// insist on a short preamble.
		MaxTokens: 64,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
						anthropic.MessagesContentSourceTypeBase64,
						normaliseMIME(mimeType),
						imageData,
					)),
					anthropic.NewTextMessageContent(vision.ClassifyPrompt),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("claude returned an empty response")
	}

	return vision.ExtractLabel(resp.Content[0].GetText()), nil
}

// normaliseMIME maps arbitrary MIME types to the values the Anthropic API
// accepts. Unknown types are coerced to jpeg as the most universally supported
// lossy fallback.
func normaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}
