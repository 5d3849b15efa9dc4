package memory

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"firstaid-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

// PoolLoader fetches the full question pools from a backing store
// (local file, Postgres, etc).
type PoolLoader interface {
	LoadPools(ctx context.Context) (domain.Pools, error)
}

// BankRepository caches the loaded pools with a TTL so content edits are
// picked up without restarting, while repeated level starts stay cheap.
type BankRepository struct {
	loader PoolLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	pools     domain.Pools
	expiresAt time.Time
}

func NewBankRepository(loader PoolLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pools implements app.QuestionSource.
func (r *BankRepository) Pools(ctx context.Context) (domain.Pools, error) {
	now := r.clock()

	r.mu.RLock()
	if r.pools != nil && r.expiresAt.After(now) {
		pools := r.pools
		r.mu.RUnlock()
		return pools, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("pools", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.pools != nil && r.expiresAt.After(now) {
			pools := r.pools
			r.mu.RUnlock()
			return pools, nil
		}
		r.mu.RUnlock()

		pools, err := r.loader.LoadPools(ctx)
		if err != nil {
			if pools == nil {
				return domain.Pools(nil), err
			}
			// Loader degraded (missing or malformed source). Serve the empty
			// pools it produced so levels lock instead of the game crashing.
			log.Printf("question source degraded: %v", err)
		}

		r.mu.Lock()
		r.pools = pools
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return pools, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Pools), nil
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread reloads
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticPoolLoader serves fixed pools from memory (tests and demo fallback).
type StaticPoolLoader struct {
	pools domain.Pools
}

func NewStaticPoolLoader(pools domain.Pools) *StaticPoolLoader {
	return &StaticPoolLoader{pools: pools}
}

func (l *StaticPoolLoader) LoadPools(_ context.Context) (domain.Pools, error) {
	return l.pools, nil
}
