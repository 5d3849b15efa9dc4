package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"firstaid-quiz/internal/domain"
)

// QuestionSource provides the tier-partitioned question pools (file, cache, Postgres, etc).
type QuestionSource interface {
	Pools(ctx context.Context) (domain.Pools, error)
}

// Bank draws per-level question sets from a QuestionSource.
type Bank struct {
	source QuestionSource
	rnd    *rand.Rand
}

// NewBank creates a Bank. Pass a seeded rand for deterministic draws in tests;
// a nil rnd falls back to a time-seeded source.
func NewBank(source QuestionSource, rnd *rand.Rand) *Bank {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Bank{source: source, rnd: rnd}
}

// Draw returns a uniformly shuffled, non-repeating sample of size
// min(count, pool size) from the tier's pool. An empty pool yields an empty
// slice, not an error.
func (b *Bank) Draw(ctx context.Context, tier domain.Tier, count int) ([]domain.Question, error) {
	pools, err := b.source.Pools(ctx)
	if err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}

	pool := pools[tier]
	shuffled := make([]domain.Question, len(pool))
	copy(shuffled, pool)
	b.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	if count < 0 {
		count = 0
	}
	return shuffled[:count], nil
}
