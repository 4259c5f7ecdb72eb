package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vbonduro/fruitchat/internal/domain"
)

// Store supplies the read-only fruit dataset. It is consulted exactly once at
// startup; a load failure is a fatal configuration error, never a per-query
// miss.
type Store interface {
	Load(ctx context.Context) ([]*domain.FruitRecord, error)
}

// JSONStore reads the dataset from a flat JSON file of
// {fruit, nutrition, health_benefits} objects.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load(_ context.Context) ([]*domain.FruitRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", s.path, err)
	}

	var raw []struct {
		Fruit          string `json:"fruit"`
		Nutrition      string `json:"nutrition"`
		HealthBenefits string `json:"health_benefits"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", s.path, err)
	}

	records := make([]*domain.FruitRecord, 0, len(raw))
	for _, entry := range raw {
		if entry.Fruit == "" {
			continue
		}
		records = append(records, domain.NewFruitRecord(entry.Fruit, entry.Nutrition, entry.HealthBenefits))
	}

	return records, nil
}
