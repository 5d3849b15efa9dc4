package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"firstaid-quiz/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		PoolLoader: NewStaticPoolLoader(samplePools()),
	}
	repo := NewBankRepository(loader, time.Minute)

	if _, err := repo.Pools(context.Background()); err != nil {
		t.Fatalf("pools: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.Pools(context.Background()); err != nil {
		t.Fatalf("pools 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryServesDegradedPools(t *testing.T) {
	loader := &degradedLoader{}
	repo := NewBankRepository(loader, time.Minute)

	pools, err := repo.Pools(context.Background())
	if err != nil {
		t.Fatalf("degraded source must not fail the caller: %v", err)
	}
	for _, tier := range domain.Tiers {
		if len(pools[tier]) != 0 {
			t.Fatalf("expected empty %s pool", tier)
		}
	}
}

type countingLoader struct {
	PoolLoader
	calls int
}

func (l *countingLoader) LoadPools(ctx context.Context) (domain.Pools, error) {
	l.calls++
	return l.PoolLoader.LoadPools(ctx)
}

type degradedLoader struct{}

func (l *degradedLoader) LoadPools(_ context.Context) (domain.Pools, error) {
	return domain.EmptyPools(), fmt.Errorf("%w: file missing", domain.ErrDataLoad)
}

func samplePools() domain.Pools {
	pools := domain.EmptyPools()
	pools[domain.TierEasy] = []domain.Question{
		{ID: "q1", Text: "What is 2 + 2?", Options: []string{"3", "4"}, Correct: 1, Tier: domain.TierEasy},
	}
	return pools
}
