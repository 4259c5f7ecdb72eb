package knowledge

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fruitchat/internal/domain"
	"github.com/vbonduro/fruitchat/internal/wiki"
)

type stubOnline struct {
	rec    *domain.FruitRecord
	err    error
	called bool
}

func (s *stubOnline) Fetch(_ context.Context, name string) (*domain.FruitRecord, error) {
	s.called = true
	return s.rec, s.err
}

func testDataset() []*domain.FruitRecord {
	return []*domain.FruitRecord{
		domain.NewFruitRecord("Apple", "Per 100g: 52 kcal, rich in Vitamin C", "Supports immunity"),
		domain.NewFruitRecord("Banana", "Per 100g: 89 kcal, rich in Vitamin B6", "Aids digestion"),
		domain.NewFruitRecord("Cherry", "Per 100g: 50 kcal, rich in Vitamin C", "Reduces inflammation"),
	}
}

func TestResolveExactMatchSkipsOnline(t *testing.T) {
	online := &stubOnline{}
	r := NewResolver(testDataset(), online, DeclineAll, false, slog.Default())

	rec, err := r.Resolve(context.Background(), "apple")
	require.NoError(t, err)
	assert.Equal(t, "Apple", rec.Name)
	assert.False(t, online.called)
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(testDataset(), nil, DeclineAll, false, slog.Default())

	first, err := r.Resolve(context.Background(), "Banana")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "Banana")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveFuzzyMatchConfirmed(t *testing.T) {
	var prompted string
	confirm := func(prompt string) bool {
		prompted = prompt
		return true
	}
	r := NewResolver(testDataset(), &stubOnline{}, confirm, false, slog.Default())

	rec, err := r.Resolve(context.Background(), "Aple")
	require.NoError(t, err)
	assert.Equal(t, "Apple", rec.Name)
	assert.Contains(t, prompted, "Apple")
}

func TestResolveFuzzyMatchDeclinedFallsThrough(t *testing.T) {
	online := &stubOnline{rec: domain.NewFruitRecord("Aple", "prose", "prose")}
	r := NewResolver(testDataset(), online, DeclineAll, false, slog.Default())

	rec, err := r.Resolve(context.Background(), "Aple")
	require.NoError(t, err)
	assert.True(t, online.called)
	assert.Equal(t, "Aple", rec.Name)
}

func TestResolveOnlineConfirmationPolicy(t *testing.T) {
	online := &stubOnline{rec: domain.NewFruitRecord("Lychee", "prose", "prose")}

	// With confirmOnline set and a declining policy, the online record is
	// rejected and resolution exhausts.
	r := NewResolver(testDataset(), online, DeclineAll, true, slog.Default())
	_, err := r.Resolve(context.Background(), "Lychee")
	assert.ErrorIs(t, err, ErrNotFound)

	// Without confirmOnline the record is accepted with no prompt.
	r = NewResolver(testDataset(), online, DeclineAll, false, slog.Default())
	rec, err := r.Resolve(context.Background(), "Lychee")
	require.NoError(t, err)
	assert.Equal(t, "Lychee", rec.Name)
}

func TestResolveOnlineUnavailableBecomesNotFound(t *testing.T) {
	online := &stubOnline{err: wiki.ErrUnavailable}
	r := NewResolver(testDataset(), online, AcceptAll, false, slog.Default())

	_, err := r.Resolve(context.Background(), "Lychee")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveNoOnlineSource(t *testing.T) {
	r := NewResolver(testDataset(), nil, DeclineAll, false, slog.Default())

	_, err := r.Resolve(context.Background(), "Durian")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("Apple", "apple"), 0.001)
	assert.Greater(t, similarity("Aple", "Apple"), fuzzyThreshold)
	assert.Greater(t, similarity("Chery", "Cherry"), fuzzyThreshold)
	assert.Less(t, similarity("Durian", "Apple"), fuzzyThreshold)
	assert.Equal(t, 0.0, similarity("", ""))
}
