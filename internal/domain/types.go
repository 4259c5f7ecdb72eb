package domain

// Intent is the classified category of a user question.
type Intent string

const (
	IntentCalories       Intent = "calories"
	IntentVitamins       Intent = "vitamins"
	IntentHealthBenefits Intent = "health_benefits"
	IntentGeneral        Intent = "general"
)

// FruitRecord is the resolved knowledge about a single fruit. Once resolved
// for a conversation it is never mutated; switching fruit produces a new
// record.
type FruitRecord struct {
	Name           string
	Nutrition      string
	HealthBenefits string

	// Facts is derived from Nutrition exactly once, at resolution time.
	Facts Facts
}

// NewFruitRecord builds a record and derives its nutrition facts.
func NewFruitRecord(name, nutrition, healthBenefits string) *FruitRecord {
	return &FruitRecord{
		Name:           name,
		Nutrition:      nutrition,
		HealthBenefits: healthBenefits,
		Facts:          ParseFacts(nutrition),
	}
}
