package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vbonduro/fruitchat/internal/domain"
)

func TestMarkAndHasAnswered(t *testing.T) {
	s := New()
	s.SetActiveFruit("Apple")

	assert.False(t, s.HasAnswered("Apple", domain.IntentCalories))

	s.MarkAnswered("Apple", domain.IntentCalories)
	assert.True(t, s.HasAnswered("Apple", domain.IntentCalories))
	assert.False(t, s.HasAnswered("Apple", domain.IntentVitamins))
}

func TestSetActiveFruitResetsHistory(t *testing.T) {
	s := New()
	s.SetActiveFruit("Apple")
	s.MarkAnswered("Apple", domain.IntentCalories)

	s.SetActiveFruit("Banana")
	assert.Equal(t, "Banana", s.ActiveFruit())
	assert.False(t, s.HasAnswered("Banana", domain.IntentCalories))

	// Switching back clears the earlier fruit's history too.
	s.SetActiveFruit("Apple")
	assert.False(t, s.HasAnswered("Apple", domain.IntentCalories))
}

func TestMarkAnsweredWithoutSetActive(t *testing.T) {
	s := New()
	s.MarkAnswered("Cherry", domain.IntentVitamins)
	assert.True(t, s.HasAnswered("Cherry", domain.IntentVitamins))
}
