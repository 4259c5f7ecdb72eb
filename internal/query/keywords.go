package query

import (
	"strings"

	"github.com/vbonduro/fruitchat/internal/domain"
)

// KeywordTable maps an intent to the substrings that trigger it. Matching is
// case-insensitive over the question text.
type KeywordTable map[domain.Intent][]string

// DefaultKeywords recognizes English and Traditional Chinese question words.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		domain.IntentCalories:       {"calorie", "卡路里"},
		domain.IntentVitamins:       {"vitamin", "維生素"},
		domain.IntentHealthBenefits: {"health", "benefit", "健康", "益處"},
	}
}

// classifyOrder fixes the precedence when a question mentions several topics.
var classifyOrder = []domain.Intent{
	domain.IntentCalories,
	domain.IntentVitamins,
	domain.IntentHealthBenefits,
}

// Classify routes a question to an intent; no keyword hit means General.
func (t KeywordTable) Classify(question string) domain.Intent {
	lower := strings.ToLower(question)
	for _, intent := range classifyOrder {
		for _, kw := range t[intent] {
			if strings.Contains(lower, kw) {
				return intent
			}
		}
	}
	return domain.IntentGeneral
}
