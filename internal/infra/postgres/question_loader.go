package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"firstaid-quiz/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads question records from Postgres. Each row carries one
// question as JSONB in the same shape as the file format's records.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

// LoadPools fetches all questions and partitions them by tier. Rows that do
// not decode or validate are skipped whole.
func (l *QuestionLoader) LoadPools(ctx context.Context) (domain.Pools, error) {
	pools := domain.EmptyPools()

	rows, err := l.pool.Query(ctx, `SELECT id, data FROM questions`)
	if err != nil {
		return pools, fmt.Errorf("%w: query questions: %v", domain.ErrDataLoad, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return pools, fmt.Errorf("%w: scan question: %v", domain.ErrDataLoad, err)
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			log.Printf("skipping question %s: %v", id, err)
			continue
		}
		if q.ID == "" {
			q.ID = id
		}
		if len(q.Options) < 2 || q.Correct < 0 || q.Correct >= len(q.Options) || !q.Tier.Valid() {
			log.Printf("skipping question %s: invalid record", id)
			continue
		}
		pools[q.Tier] = append(pools[q.Tier], q)
	}
	if err := rows.Err(); err != nil {
		return pools, fmt.Errorf("%w: read questions: %v", domain.ErrDataLoad, err)
	}
	return pools, nil
}
