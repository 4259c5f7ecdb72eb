package query

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/vbonduro/fruitchat/internal/domain"
	"github.com/vbonduro/fruitchat/internal/session"
)

// AlreadyAskedAnswer is the fixed response for a repeated intent when
// duplicate suppression is enabled.
const AlreadyAskedAnswer = "You already asked that. Please try a different question."

// generator is the open-ended answering collaborator; only the General intent
// is allowed to use it.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Dispatcher classifies questions into intents and extracts answers from a
// resolved record. All failures degrade to apologetic plain text; the
// dispatcher never returns an error to the conversation loop.
type Dispatcher struct {
	gen      generator
	keywords KeywordTable
	state    *session.State
	dedupe   bool
	logger   *slog.Logger
}

func NewDispatcher(gen generator, keywords KeywordTable, state *session.State, dedupe bool, logger *slog.Logger) *Dispatcher {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	return &Dispatcher{
		gen:      gen,
		keywords: keywords,
		state:    state,
		dedupe:   dedupe,
		logger:   logger,
	}
}

// Classify exposes intent routing for callers that pre-classify (voice mode).
func (d *Dispatcher) Classify(question string) domain.Intent {
	return d.keywords.Classify(question)
}

// Answer classifies the question and extracts an answer from the record.
func (d *Dispatcher) Answer(ctx context.Context, rec *domain.FruitRecord, question string) string {
	return d.AnswerIntent(ctx, rec, d.Classify(question), question)
}

// AnswerIntent answers a pre-classified question. With duplicate suppression
// on, a repeated intent for the active fruit short-circuits to the fixed
// already-asked response without extraction or generation.
func (d *Dispatcher) AnswerIntent(ctx context.Context, rec *domain.FruitRecord, intent domain.Intent, question string) string {
	if d.dedupe && d.state != nil && d.state.HasAnswered(rec.Name, intent) {
		d.logger.Debug("duplicate question suppressed", "fruit", rec.Name, "intent", intent)
		return AlreadyAskedAnswer
	}

	var answer string
	switch intent {
	case domain.IntentCalories:
		answer = answerCalories(rec)
	case domain.IntentVitamins:
		answer = answerVitamins(rec)
	case domain.IntentHealthBenefits:
		answer = answerHealthBenefits(rec)
	default:
		answer = d.answerGeneral(ctx, rec, question)
	}

	if d.dedupe && d.state != nil {
		d.state.MarkAnswered(rec.Name, intent)
	}
	return answer
}

var kilocaloriePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:kilocalories|kcal)`)

func answerCalories(rec *domain.FruitRecord) string {
	switch facts := rec.Facts.(type) {
	case domain.StructuredFacts:
		if facts.Calories == "" {
			return fmt.Sprintf("Sorry, I could not parse the calorie information for %s.", rec.Name)
		}
		return fmt.Sprintf("%s per 100g contains %s.", rec.Name, facts.Calories)
	case domain.UnstructuredFacts:
		if m := kilocaloriePattern.FindStringSubmatch(facts.Raw); m != nil {
			return fmt.Sprintf("%s per 100g contains %s kilocalories.", rec.Name, m[1])
		}
	}
	return fmt.Sprintf("Unable to find calorie information for %s.", rec.Name)
}

var vitaminPattern = regexp.MustCompile(`(?i)vitamin\s+([A-Za-z][0-9]*)\b`)

func answerVitamins(rec *domain.FruitRecord) string {
	switch facts := rec.Facts.(type) {
	case domain.StructuredFacts:
		if facts.Vitamins == "" {
			return fmt.Sprintf("No vitamin information found for %s.", rec.Name)
		}
		return fmt.Sprintf("%s is rich in %s.", rec.Name, facts.Vitamins)
	case domain.UnstructuredFacts:
		seen := make(map[string]struct{})
		var vitamins []string
		for _, m := range vitaminPattern.FindAllStringSubmatch(facts.Raw, -1) {
			v := strings.ToUpper(m[1])
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vitamins = append(vitamins, v)
		}
		if len(vitamins) > 0 {
			sort.Strings(vitamins)
			return fmt.Sprintf("%s is rich in vitamins: %s.", rec.Name, strings.Join(vitamins, ", "))
		}
	}
	return fmt.Sprintf("No vitamin information found for %s.", rec.Name)
}

func answerHealthBenefits(rec *domain.FruitRecord) string {
	switch facts := rec.Facts.(type) {
	case domain.StructuredFacts:
		health := rec.HealthBenefits
		if health == "" {
			health = "No health benefits information."
		}
		return fmt.Sprintf("Health benefits of %s: %s", rec.Name, health)
	case domain.UnstructuredFacts:
		// Encyclopedic articles cover health effects under a "Research" section.
		if idx := strings.Index(facts.Raw, "Research"); idx >= 0 {
			return fmt.Sprintf("Health benefits of %s: %s", rec.Name, facts.Raw[idx:])
		}
		return fmt.Sprintf("Health benefits of %s: %s", rec.Name, facts.Raw)
	}
	return fmt.Sprintf("Health benefits of %s: %s", rec.Name, rec.HealthBenefits)
}

const generalPrompt = `You are a fruit nutrition and health expert with broad knowledge about fruit.
Answer the user's question using the information below. If the provided data is not
enough, supplement it from your general fruit knowledge. Keep the answer practical
and strictly related to the fruit.

Fruit: %s
Nutrition: %s
Health benefits: %s

Question: "%s"`

func (d *Dispatcher) answerGeneral(ctx context.Context, rec *domain.FruitRecord, question string) string {
	if d.gen == nil {
		return fmt.Sprintf("%s is a nutrient-rich fruit. What specific information do you need?", rec.Name)
	}

	nutrition := rec.Nutrition
	if nutrition == "" {
		nutrition = "none"
	}
	health := rec.HealthBenefits
	if health == "" {
		health = "none"
	}

	out, err := d.gen.Generate(ctx, fmt.Sprintf(generalPrompt, rec.Name, nutrition, health, question))
	if err != nil {
		d.logger.Warn("general answer generation failed", "fruit", rec.Name, "error", err)
		return fmt.Sprintf("Sorry, I could not answer that question about %s right now.", rec.Name)
	}
	return strings.TrimSpace(out)
}
