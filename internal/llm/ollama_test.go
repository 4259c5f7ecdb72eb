package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "Apple")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"response": " Apples are a great source of fiber. \n",
		})
	}))
	defer server.Close()

	gen := NewOllamaGenerator(server.URL, "llama3")

	out, err := gen.Generate(context.Background(), "Tell me about Apple")
	require.NoError(t, err)
	assert.Equal(t, "Apples are a great source of fiber.", out)
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gen := NewOllamaGenerator(server.URL, "llama3")

	_, err := gen.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestOllamaGenerateNetworkError(t *testing.T) {
	gen := NewOllamaGenerator("http://localhost:99999", "llama3")

	_, err := gen.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

type stubGenerator struct {
	prompt string
	out    string
	err    error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func TestTranslate(t *testing.T) {
	stub := &stubGenerator{out: "蘋果富含維生素C。"}

	out, err := Translate(context.Background(), stub, "Apple is rich in Vitamin C.", "Traditional Chinese")
	require.NoError(t, err)
	assert.Equal(t, "蘋果富含維生素C。", out)
	assert.Contains(t, stub.prompt, "Traditional Chinese")
	assert.Contains(t, stub.prompt, "Apple is rich in Vitamin C.")
}
