package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vbonduro/fruitchat/internal/vision"
)

type OllamaClassifier struct {
	host   string
	model  string
	client *http.Client
}

func NewOllamaClassifier(host, model string) *OllamaClassifier {
	return &OllamaClassifier{
		host:   host,
		model:  model,
		client: &http.Client{},
	}
}

func (c *OllamaClassifier) Classify(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(imageData)

	reqBody := map[string]interface{}{
		"model":  c.model,
		"prompt": vision.ClassifyPrompt,
		"images": []string{encoded},
		"stream": false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var respBody struct {
		Response string `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return vision.ExtractLabel(respBody.Response), nil
}
