package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"firstaid-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// PoolLoader fetches the full question pools from a backing store.
type PoolLoader interface {
	LoadPools(ctx context.Context) (domain.Pools, error)
}

// BankRepository caches question pools in Redis (one JSON value per tier:
// SET quiz:bank:{tier}) and falls back to a loader on cache miss. Sharing the
// cache lets several kiosk stations reuse one content load.
type BankRepository struct {
	client *redis.Client
	loader PoolLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader PoolLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pools implements app.QuestionSource.
func (r *BankRepository) Pools(ctx context.Context) (domain.Pools, error) {
	if pools, ok := r.poolsFromCache(ctx); ok {
		return pools, nil
	}

	result, err, _ := r.sf.Do("pools", func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if pools, ok := r.poolsFromCache(ctx); ok {
			return pools, nil
		}

		pools, err := r.loader.LoadPools(ctx)
		if err != nil {
			if pools == nil {
				return domain.Pools(nil), err
			}
			log.Printf("question source degraded: %v", err)
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for tier, questions := range pools {
			data, err := json.Marshal(questions)
			if err != nil {
				continue
			}
			pipe.Set(ctx, r.key(tier), data, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return pools, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Pools), nil
}

func (r *BankRepository) poolsFromCache(ctx context.Context) (domain.Pools, bool) {
	pools := domain.EmptyPools()
	hit := false
	for _, tier := range domain.Tiers {
		raw, err := r.client.Get(ctx, r.key(tier)).Bytes()
		if err != nil {
			return nil, false
		}
		var questions []domain.Question
		if err := json.Unmarshal(raw, &questions); err != nil {
			return nil, false
		}
		pools[tier] = questions
		hit = true
	}
	return pools, hit
}

func (r *BankRepository) key(tier domain.Tier) string {
	return "quiz:bank:" + string(tier)
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
