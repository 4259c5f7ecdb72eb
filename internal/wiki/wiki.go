package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/vbonduro/fruitchat/internal/domain"
)

// ErrUnavailable means the online lookup could not produce a usable record.
// The knowledge resolver treats it as a cache miss and falls through.
var ErrUnavailable = errors.New("online fruit information unavailable")

// DisambiguationError is returned when the encyclopedia reports multiple
// candidate topics for a name. The adapter never guesses; candidates are
// surfaced so a caller could ask the user.
type DisambiguationError struct {
	Title      string
	Candidates []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("multiple topics found for %q: %s", e.Title, strings.Join(e.Candidates, ", "))
}

func (e *DisambiguationError) Unwrap() error { return ErrUnavailable }

// NoData is the sentinel substituted for a record field the condensation step
// could not fill.
const NoData = "No data available."

// nutritionExcerptLimit bounds how much article text is appended after the
// Nutrition heading, matching the summary's own order of magnitude.
const nutritionExcerptLimit = 500

// titleOverrides disambiguates fruit names whose plain article is not about
// the fruit.
var titleOverrides = map[string]string{
	"Pear": "Pear (fruit)",
}

// generator is the condensation collaborator.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client fetches fruit information from Wikipedia and condenses it into a
// FruitRecord via the generative collaborator.
type Client struct {
	baseURL string
	client  *http.Client
	gen     generator
	logger  *slog.Logger
}

func NewClient(baseURL string, gen generator, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		gen:     gen,
		logger:  logger,
	}
}

// Fetch resolves a fruit name to a record built from the article summary and,
// when present, the article's Nutrition section. Every transport or lookup
// failure maps to ErrUnavailable; Fetch never panics a conversation.
func (c *Client) Fetch(ctx context.Context, name string) (*domain.FruitRecord, error) {
	title := name
	if override, ok := titleOverrides[name]; ok {
		title = override
	}

	summary, err := c.fetchSummary(ctx, title)
	if err != nil {
		return nil, err
	}

	if !strings.Contains(summary, "Nutrition") {
		if excerpt := c.fetchNutritionExcerpt(ctx, title); excerpt != "" {
			summary += "\n\nNutrition Info:\n" + excerpt
		}
	}

	nutrition, health, err := c.condense(ctx, name, summary)
	if err != nil {
		return nil, err
	}

	return domain.NewFruitRecord(name, nutrition, health), nil
}

func (c *Client) fetchSummary(ctx context.Context, title string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Join(err, ErrUnavailable)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Join(err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary lookup for %q returned status %d: %w", title, resp.StatusCode, ErrUnavailable)
	}

	var body struct {
		Type    string `json:"type"`
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Join(err, ErrUnavailable)
	}

	if body.Type == "disambiguation" {
		return "", &DisambiguationError{Title: title, Candidates: c.searchCandidates(ctx, title)}
	}

	if body.Extract == "" {
		return "", fmt.Errorf("empty summary for %q: %w", title, ErrUnavailable)
	}

	return body.Extract, nil
}

// fetchNutritionExcerpt pulls the article plaintext and returns a bounded
// excerpt starting at the Nutrition heading. Failures are logged and swallowed:
// the summary alone is still usable.
func (c *Client) fetchNutritionExcerpt(ctx context.Context, title string) string {
	endpoint := fmt.Sprintf(
		"%s/w/api.php?action=query&prop=extracts&explaintext=1&redirects=1&format=json&titles=%s",
		c.baseURL, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ""
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("article extract fetch failed", "title", title, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("article extract fetch failed", "title", title, "status", resp.StatusCode)
		return ""
	}

	var body struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("article extract decode failed", "title", title, "error", err)
		return ""
	}

	for _, page := range body.Query.Pages {
		idx := strings.Index(page.Extract, "Nutrition")
		if idx < 0 {
			continue
		}
		end := idx + nutritionExcerptLimit
		if end > len(page.Extract) {
			end = len(page.Extract)
		}
		return page.Extract[idx:end]
	}

	return ""
}

// searchCandidates lists alternative topics for a disambiguated title.
// Best-effort: an empty list still yields a valid DisambiguationError.
func (c *Client) searchCandidates(ctx context.Context, title string) []string {
	endpoint := fmt.Sprintf(
		"%s/w/api.php?action=opensearch&limit=5&format=json&search=%s",
		c.baseURL, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	// opensearch responds with [query, [titles...], [descriptions...], [urls...]]
	var body []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body) < 2 {
		return nil
	}

	var candidates []string
	if err := json.Unmarshal(body[1], &candidates); err != nil {
		return nil
	}
	return candidates
}

const condensePrompt = `Condense the following article text about %s into exactly two lines using these labels:
Nutrition: <one sentence covering calories and vitamins>
Health benefits: <one sentence covering health benefits>
Output the two labeled lines and nothing else.

%s`

// condense asks the generator to reduce raw article text to the two record
// fields. A missing label becomes the NoData sentinel rather than a failure.
func (c *Client) condense(ctx context.Context, name, raw string) (nutrition, health string, err error) {
	if c.gen == nil {
		return "", "", fmt.Errorf("no generator configured for condensation: %w", ErrUnavailable)
	}

	out, err := c.gen.Generate(ctx, fmt.Sprintf(condensePrompt, name, raw))
	if err != nil {
		return "", "", errors.Join(err, ErrUnavailable)
	}

	nutrition, health = NoData, NoData
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "nutrition:"):
			if v := strings.TrimSpace(line[len("nutrition:"):]); v != "" {
				nutrition = v
			}
		case strings.HasPrefix(lower, "health benefits:"):
			if v := strings.TrimSpace(line[len("health benefits:"):]); v != "" {
				health = v
			}
		}
	}

	return nutrition, health, nil
}
