package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFacts(t *testing.T) {
	tests := []struct {
		name      string
		nutrition string
		expected  Facts
	}{
		{
			name:      "structured with calories and vitamins",
			nutrition: "Per 100g: 52 kcal, rich in Vitamin C",
			expected:  StructuredFacts{Calories: "52 kcal", Vitamins: "Vitamin C"},
		},
		{
			name:      "structured with trailing period on vitamins",
			nutrition: "Per 100g: 89 kcal, rich in Vitamin B6 and Vitamin C.",
			expected:  StructuredFacts{Calories: "89 kcal", Vitamins: "Vitamin B6 and Vitamin C"},
		},
		{
			name:      "structured without vitamins clause",
			nutrition: "Per 100g: 60 kcal",
			expected:  StructuredFacts{Calories: "60 kcal"},
		},
		{
			name:      "structured marker but empty body",
			nutrition: "Per 100g:",
			expected:  StructuredFacts{},
		},
		{
			name:      "unstructured prose",
			nutrition: "Contains about 89 kilocalories and vitamin B6, vitamin C per serving.",
			expected:  UnstructuredFacts{Raw: "Contains about 89 kilocalories and vitamin B6, vitamin C per serving."},
		},
		{
			name:      "empty text",
			nutrition: "",
			expected:  UnstructuredFacts{Raw: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFacts(tt.nutrition))
		})
	}
}

func TestNewFruitRecordDerivesFacts(t *testing.T) {
	rec := NewFruitRecord("Apple", "Per 100g: 52 kcal, rich in Vitamin C", "Supports immunity")

	assert.Equal(t, "Apple", rec.Name)
	assert.Equal(t, StructuredFacts{Calories: "52 kcal", Vitamins: "Vitamin C"}, rec.Facts)
}
