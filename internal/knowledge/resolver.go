package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/fruitchat/internal/domain"
	"github.com/xrash/smetrics"
)

// ErrNotFound means no record was resolvable through any tier. Callers turn it
// into an apologetic answer; the conversation continues.
var ErrNotFound = errors.New("fruit not found")

// fuzzyThreshold is the minimum normalized similarity for a dataset name to be
// offered as a candidate substitution.
const fuzzyThreshold = 0.6

// ConfirmFunc decides whether a candidate substitution or an online result is
// accepted. Interactive callers wire a real prompt; automated callers use
// AcceptAll or DeclineAll.
type ConfirmFunc func(prompt string) bool

func AcceptAll(string) bool  { return true }
func DeclineAll(string) bool { return false }

// onlineSource is the external knowledge adapter seam.
type onlineSource interface {
	Fetch(ctx context.Context, name string) (*domain.FruitRecord, error)
}

// Resolver resolves fruit names to records through a short-circuiting cascade:
// exact dataset match, fuzzy dataset match behind confirmation, online lookup.
type Resolver struct {
	records       []*domain.FruitRecord
	online        onlineSource
	confirm       ConfirmFunc
	confirmOnline bool
	logger        *slog.Logger
}

// NewResolver takes the dataset loaded at startup. The dataset is read-only
// from here on; resolving the same name twice yields the same record.
func NewResolver(records []*domain.FruitRecord, online onlineSource, confirm ConfirmFunc, confirmOnline bool, logger *slog.Logger) *Resolver {
	if confirm == nil {
		confirm = DeclineAll
	}
	return &Resolver{
		records:       records,
		online:        online,
		confirm:       confirm,
		confirmOnline: confirmOnline,
		logger:        logger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, name string) (*domain.FruitRecord, error) {
	for _, rec := range r.records {
		if strings.EqualFold(rec.Name, name) {
			return rec, nil
		}
	}

	if best, score := r.closestMatch(name); best != nil && score >= fuzzyThreshold {
		r.logger.Debug("fuzzy candidate", "name", name, "candidate", best.Name, "score", score)
		if r.confirm(fmt.Sprintf("'%s' is not in the dataset. Did you mean '%s'?", name, best.Name)) {
			return best, nil
		}
	}

	if r.online != nil {
		r.logger.Info("dataset miss, searching online", "name", name)
		rec, err := r.online.Fetch(ctx, name)
		switch {
		case err != nil:
			r.logger.Warn("online lookup failed", "name", name, "error", err)
		case rec != nil:
			if !r.confirmOnline || r.confirm("Would you like to use the information found online?") {
				return rec, nil
			}
		}
	}

	return nil, fmt.Errorf("no information for %q: %w", name, ErrNotFound)
}

func (r *Resolver) closestMatch(name string) (*domain.FruitRecord, float64) {
	var best *domain.FruitRecord
	var bestScore float64
	for _, rec := range r.records {
		if score := similarity(name, rec.Name); score > bestScore {
			best, bestScore = rec, score
		}
	}
	return best, bestScore
}

// similarity maps Wagner-Fischer edit distance (substitutions costed as a
// delete plus an insert) onto a 0..1 scale over the combined length.
func similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	if a == b {
		return 1
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 1 - float64(dist)/float64(total)
}
