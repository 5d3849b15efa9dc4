package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"firstaid-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ProgressStore keeps the durable progress record in Redis, for deployments
// where several kiosk stations share one player profile. The record lives at
// a single key (SET quiz:progress:{player}) with no TTL.
type ProgressStore struct {
	client *redis.Client
	player string
}

func NewProgressStore(client *redis.Client, player string) *ProgressStore {
	if player == "" {
		player = "default"
	}
	return &ProgressStore{client: client, player: player}
}

// Load returns the saved record, or defaults when the key is absent or the
// payload does not decode. It never fails the caller.
func (s *ProgressStore) Load(ctx context.Context) domain.Progress {
	progress := domain.DefaultProgress()

	raw, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("progress unreadable, using defaults: %v", err)
		}
		return progress
	}
	if err := json.Unmarshal(raw, &progress); err != nil {
		log.Printf("progress corrupt, using defaults: %v", err)
		return domain.DefaultProgress()
	}
	return progress
}

// Save overwrites the record. A SET of the full document is atomic on the
// Redis side, so readers never observe a half-written record.
func (s *ProgressStore) Save(ctx context.Context, p domain.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", domain.ErrPersistence, err)
	}
	if err := s.client.Set(ctx, s.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *ProgressStore) key() string {
	return "quiz:progress:" + s.player
}
