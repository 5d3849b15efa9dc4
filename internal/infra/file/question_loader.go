package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"firstaid-quiz/internal/domain"
)

// questionFile matches the on-disk question source document.
type questionFile struct {
	Questions []domain.Question `json:"first_aid_questions"`
}

// QuestionLoader reads the question source from a JSON file. It is normally
// wrapped by a caching repository so the file is not re-read on every draw.
//
// Degradation policy: a missing or unparsable file rejects the whole document
// and yields empty pools alongside the error; a record with missing or
// inconsistent fields is skipped whole, never partially applied.
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

// LoadPools parses the file into tier-partitioned pools. The returned error
// wraps domain.ErrDataLoad and is advisory: the pools are always usable,
// merely empty on failure, so the game degrades to locked levels instead of
// crashing.
func (l *QuestionLoader) LoadPools(_ context.Context) (domain.Pools, error) {
	pools := domain.EmptyPools()

	data, err := os.ReadFile(l.path)
	if err != nil {
		return pools, fmt.Errorf("%w: read %s: %v", domain.ErrDataLoad, l.path, err)
	}

	var doc questionFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return pools, fmt.Errorf("%w: parse %s: %v", domain.ErrDataLoad, l.path, err)
	}

	for i, q := range doc.Questions {
		if q.ID == "" {
			q.ID = fmt.Sprintf("q-%d", i+1)
		}
		if err := validateQuestion(q); err != nil {
			log.Printf("skipping question %s: %v", q.ID, err)
			continue
		}
		pools[q.Tier] = append(pools[q.Tier], q)
	}
	return pools, nil
}

func validateQuestion(q domain.Question) error {
	if q.Text == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("needs at least 2 options, has %d", len(q.Options))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("correct answer index %d out of range", q.Correct)
	}
	if !q.Tier.Valid() {
		return fmt.Errorf("unknown difficulty %q", q.Tier)
	}
	return nil
}
