package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaudeClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)

		var req struct {
			Messages []struct {
				Content []struct {
					Type string `json:"type"`
				} `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		require.Len(t, req.Messages[0].Content, 2)
		assert.Equal(t, "image", req.Messages[0].Content[0].Type)
		assert.Equal(t, "text", req.Messages[0].Content[1].Type)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]string{
				{"type": "text", "text": "Strawberry"},
			},
			"model":       "claude-3-5-haiku-latest",
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	classifier := NewClaudeClassifier("sk-test", "claude-3-5-haiku-latest",
		anthropic.WithBaseURL(server.URL+"/v1"))

	imageData := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	label, err := classifier.Classify(context.Background(), bytes.NewReader(imageData), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "Strawberry", label)
}

func TestNormaliseMIME(t *testing.T) {
	assert.Equal(t, "image/png", normaliseMIME("image/png"))
	assert.Equal(t, "image/webp", normaliseMIME("image/webp"))
	assert.Equal(t, "image/jpeg", normaliseMIME("image/jpeg"))
	assert.Equal(t, "image/jpeg", normaliseMIME("application/octet-stream"))
}
