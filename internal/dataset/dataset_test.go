package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fruitchat/internal/domain"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fruit_dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestJSONStoreLoad(t *testing.T) {
	path := writeDataset(t, `[
		{"fruit": "Apple", "nutrition": "Per 100g: 52 kcal, rich in Vitamin C", "health_benefits": "Supports immunity"},
		{"fruit": "Banana", "nutrition": "Per 100g: 89 kcal, rich in Vitamin B6", "health_benefits": "Aids digestion"}
	]`)

	records, err := NewJSONStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Apple", records[0].Name)
	assert.Equal(t, "Supports immunity", records[0].HealthBenefits)
	assert.Equal(t, domain.StructuredFacts{Calories: "52 kcal", Vitamins: "Vitamin C"}, records[0].Facts)
	assert.Equal(t, "Banana", records[1].Name)
}

func TestJSONStoreLoadSkipsNamelessEntries(t *testing.T) {
	path := writeDataset(t, `[{"fruit": "", "nutrition": "x"}, {"fruit": "Kiwi"}]`)

	records, err := NewJSONStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kiwi", records[0].Name)
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	_, err := NewJSONStore("/nonexistent/fruit_dataset.json").Load(context.Background())
	assert.Error(t, err)
}

func TestJSONStoreLoadMalformed(t *testing.T) {
	path := writeDataset(t, `{"not": "an array"}`)

	_, err := NewJSONStore(path).Load(context.Background())
	assert.Error(t, err)
}
