package app

import "firstaid-quiz/internal/domain"

// LevelResult summarizes a finished run for the results screen.
type LevelResult struct {
	Level     domain.Level `json:"-"`
	LevelName string       `json:"levelName"`
	Score     int          `json:"score"`
	MaxScore  int          `json:"maxScore"`
	Percent   float64      `json:"percent"`
	Lives     int          `json:"lives"`
	Passed    bool         `json:"passed"`
	Unlocked  bool         `json:"unlocked"`
	Message   string       `json:"message"`
}

// applyLevelEnd folds a finished session into the durable progress record.
// The session's score is added unconditionally, so a failed run still banks
// its partial credit toward unlock thresholds. The next level unlocks only
// when the player survived the run, the level is the current frontier, and
// the catalog has a next level; this keeps MaxUnlockedLevel monotonic and
// growing by at most one per completed level.
func applyLevelEnd(p domain.Progress, s *Session) (domain.Progress, bool) {
	p.TotalScore += s.Score()

	unlocked := false
	if s.Lives() > 0 && s.Level().Number == p.MaxUnlockedLevel && s.Level().Number < domain.MaxLevel {
		p.MaxUnlockedLevel++
		unlocked = true
	}
	return p, unlocked
}

// resultMessage maps the run's percentage to the outcome banner.
func resultMessage(percent float64) string {
	switch {
	case percent >= 80:
		return "Excellent! You're a first aid expert!"
	case percent >= 60:
		return "Good job! Keep practicing!"
	default:
		return "Keep studying and try again!"
	}
}

func levelResult(s *Session, unlocked bool) LevelResult {
	return LevelResult{
		Level:     s.Level(),
		LevelName: s.Level().Name,
		Score:     s.Score(),
		MaxScore:  s.QuestionCount() * domain.PointsPerQuestion,
		Percent:   s.Percent(),
		Lives:     s.Lives(),
		Passed:    s.Lives() > 0,
		Unlocked:  unlocked,
		Message:   resultMessage(s.Percent()),
	}
}
