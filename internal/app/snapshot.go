package app

import "firstaid-quiz/internal/domain"

// Snapshot is the read-only view the presentation layer renders from.
// Question views never carry the correct option index while answering; it is
// revealed only during feedback.
type Snapshot struct {
	Screen   string          `json:"screen"`
	Progress ProgressView    `json:"progress"`
	Levels   []LevelView     `json:"levels"`
	Session  *SessionView    `json:"session,omitempty"`
	Result   *LevelResult    `json:"result,omitempty"`
	Settings domain.Settings `json:"settings"`
}

// ProgressView is the durable record as shown on the menu.
type ProgressView struct {
	TotalScore       int      `json:"totalScore"`
	MaxUnlockedLevel int      `json:"maxUnlockedLevel"`
	Badges           []string `json:"badges"`
}

// LevelView is one level-select card.
type LevelView struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	Questions   int    `json:"questions"`
	UnlockScore int    `json:"unlockScore"`
	Icon        string `json:"icon"`
	Playable    bool   `json:"playable"`
}

// SessionView mirrors the live session for rendering.
type SessionView struct {
	Level         int           `json:"level"`
	LevelName     string        `json:"levelName"`
	Phase         string        `json:"phase"`
	Index         int           `json:"index"`
	QuestionCount int           `json:"questionCount"`
	Score         int           `json:"score"`
	Lives         int           `json:"lives"`
	Selected      *int          `json:"selected,omitempty"`
	Question      *QuestionView `json:"question,omitempty"`
	RevealCorrect *int          `json:"revealCorrect,omitempty"`
	Outcomes      []bool        `json:"outcomes"`
}

// QuestionView is a question stripped of its answer key.
type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Snapshot captures the whole presentable state under the controller's lock.
func (c *GameController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Screen: c.screen.String(),
		Progress: ProgressView{
			TotalScore:       c.progress.TotalScore,
			MaxUnlockedLevel: c.progress.MaxUnlockedLevel,
			Badges:           c.progress.Badges,
		},
		Settings: c.progress.Settings,
		Result:   c.result,
	}

	for _, level := range domain.Catalog {
		snap.Levels = append(snap.Levels, LevelView{
			Number:      level.Number,
			Name:        level.Name,
			Tier:        string(level.Tier),
			Questions:   level.Questions,
			UnlockScore: level.UnlockScore,
			Icon:        level.Icon,
			Playable:    c.progress.CanPlay(level),
		})
	}

	if s := c.session; s != nil {
		view := &SessionView{
			Level:         s.Level().Number,
			LevelName:     s.Level().Name,
			Phase:         s.Phase().String(),
			Index:         s.Index(),
			QuestionCount: s.QuestionCount(),
			Score:         s.Score(),
			Lives:         s.Lives(),
			Selected:      s.Selected(),
			Outcomes:      s.Outcomes(),
		}
		if q, ok := s.Current(); ok {
			view.Question = &QuestionView{ID: q.ID, Text: q.Text, Options: q.Options}
			if s.Phase() == PhaseFeedback {
				correct := q.Correct
				view.RevealCorrect = &correct
			}
		}
		snap.Session = view
	}
	return snap
}
