package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	assert.NoError(t, db.Ping())
}

func TestMigrationsApply(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='fruits'").Scan(&tableName)
	assert.NoError(t, err)
	assert.Equal(t, "fruits", tableName)
}

func TestSeedData(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM fruits").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 9, count)

	var nutrition string
	err = db.QueryRow("SELECT nutrition FROM fruits WHERE name = 'Apple'").Scan(&nutrition)
	require.NoError(t, err)
	assert.Equal(t, "Per 100g: 52 kcal, rich in Vitamin C", nutrition)
}
