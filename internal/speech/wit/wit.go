package wit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const defaultAPIURL = "https://api.wit.ai/speech"

// apiVersion pins the Wit.ai API behavior.
const apiVersion = "20240304"

// Transcriber sends recorded audio to the Wit.ai speech endpoint.
type Transcriber struct {
	token   string
	client  *http.Client
	baseURL string
}

func NewTranscriber(token string) *Transcriber {
	return &Transcriber{
		token:   token,
		client:  &http.Client{},
		baseURL: defaultAPIURL,
	}
}

// Transcribe posts the audio and returns the final transcript. Wit.ai streams
// partial results as a sequence of JSON documents; the last final chunk wins.
// An utterance Wit could not understand comes back as an empty string.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s?v=%s", t.baseURL, apiVersion), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("Content-Type", mimeType)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call wit.ai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("wit.ai returned status %d: %s", resp.StatusCode, errBody)
	}

	var text string
	dec := json.NewDecoder(resp.Body)
	for {
		var chunk struct {
			Text    string `json:"text"`
			IsFinal bool   `json:"is_final"`
		}
		if err := dec.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("failed to decode wit.ai response: %w", err)
		}
		if chunk.Text != "" {
			text = chunk.Text
		}
		if chunk.IsFinal {
			text = chunk.Text
		}
	}

	return text, nil
}
