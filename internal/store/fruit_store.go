package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/fruitchat/internal/domain"
)

// FruitStore reads the fruit dataset out of SQLite. The table is seeded by
// migrations and treated as read-only for the lifetime of a run.
type FruitStore struct {
	db *sql.DB
}

func NewFruitStore(db *sql.DB) *FruitStore {
	return &FruitStore{db: db}
}

// Load returns every fruit record in insertion order.
func (s *FruitStore) Load(ctx context.Context) ([]*domain.FruitRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, nutrition, health_benefits FROM fruits ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load fruits: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var records []*domain.FruitRecord
	for rows.Next() {
		var name, nutrition, health string
		if err := rows.Scan(&name, &nutrition, &health); err != nil {
			return nil, fmt.Errorf("failed to scan fruit: %w", err)
		}
		records = append(records, domain.NewFruitRecord(name, nutrition, health))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fruits: %w", err)
	}

	return records, nil
}

// GetByName fetches a single record by exact case-insensitive name match.
func (s *FruitStore) GetByName(ctx context.Context, name string) (*domain.FruitRecord, error) {
	var fruit, nutrition, health string
	err := s.db.QueryRowContext(ctx, `
		SELECT name, nutrition, health_benefits FROM fruits WHERE name = ? COLLATE NOCASE
	`, name).Scan(&fruit, &nutrition, &health)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fruit: %w", err)
	}

	return domain.NewFruitRecord(fruit, nutrition, health), nil
}
