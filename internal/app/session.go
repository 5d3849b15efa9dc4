package app

import "firstaid-quiz/internal/domain"

// Phase is the explicit state of a quiz session. Using a tagged phase plus an
// optional selection keeps illegal combinations (feedback shown with nothing
// answered, answers accepted after the run ended) unrepresentable.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseFeedback
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFeedback:
		return "feedback"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Session is one play-through of a single level. At most one session is live
// at a time; the GameController owns it and serializes all calls.
type Session struct {
	level     domain.Level
	questions []domain.Question
	index     int
	score     int
	lives     int
	selected  *int
	phase     Phase
	resumeTo  Phase
	outcomes  []bool
}

// NewSession is exported for tests that exercise the state machine directly;
// normal play goes through the GameController, which enforces the unlock
// gates and draws the question set.
func NewSession(level domain.Level, questions []domain.Question) *Session {
	return newSession(level, questions)
}

// newSession starts a run at the first question with full lives.
// Playability and question drawing are the controller's responsibility.
func newSession(level domain.Level, questions []domain.Question) *Session {
	return &Session{
		level:     level,
		questions: questions,
		lives:     domain.StartingLives,
		phase:     PhaseActive,
	}
}

// Select records a tentative answer for the current question without
// submitting it. This backs the keyboard flow (pick, then confirm); the
// mouse flow calls Select and Submit back to back.
func (s *Session) Select(option int) error {
	if s.phase != PhaseActive {
		return domain.ErrNotActive
	}
	q := s.questions[s.index]
	if option < 0 || option >= len(q.Options) {
		return domain.ErrInvalidOption
	}
	s.selected = &option
	return nil
}

// Submit grades the pending selection and enters the feedback phase.
// Correct answers score a fixed award; wrong answers cost a life.
func (s *Session) Submit() (bool, error) {
	if s.phase != PhaseActive {
		return false, domain.ErrNotActive
	}
	if s.selected == nil {
		return false, domain.ErrNoSelection
	}

	correct := *s.selected == s.questions[s.index].Correct
	if correct {
		s.score += domain.PointsPerQuestion
	} else {
		s.lives--
	}
	s.outcomes = append(s.outcomes, correct)
	s.phase = PhaseFeedback
	return correct, nil
}

// Advance leaves feedback and moves to the next question. It reports whether
// the run ended, either by exhausting the question list or by losing the
// last life mid-level.
func (s *Session) Advance() (bool, error) {
	if s.phase != PhaseFeedback {
		return false, domain.ErrNotFeedback
	}
	s.selected = nil
	s.index++
	if s.index >= len(s.questions) || s.lives <= 0 {
		s.phase = PhaseEnded
		return true, nil
	}
	s.phase = PhaseActive
	return false, nil
}

// Pause freezes the session. Score, lives, index, and the pending selection
// are untouched; Resume returns to the exact prior phase.
func (s *Session) Pause() error {
	if s.phase != PhaseActive && s.phase != PhaseFeedback {
		return domain.ErrNotPausable
	}
	s.resumeTo = s.phase
	s.phase = PhasePaused
	return nil
}

func (s *Session) Resume() error {
	if s.phase != PhasePaused {
		return domain.ErrNotPaused
	}
	s.phase = s.resumeTo
	return nil
}

func (s *Session) Phase() Phase        { return s.phase }
func (s *Session) Level() domain.Level { return s.level }
func (s *Session) Score() int          { return s.score }
func (s *Session) Lives() int          { return s.lives }
func (s *Session) Index() int          { return s.index }
func (s *Session) QuestionCount() int  { return len(s.questions) }
func (s *Session) Outcomes() []bool    { return s.outcomes }

// Selected returns the pending option index, or nil when none is chosen.
func (s *Session) Selected() *int { return s.selected }

// Current returns the question being asked or reviewed. ok is false once the
// session has ended.
func (s *Session) Current() (domain.Question, bool) {
	if s.index >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

// Percent is the run's score as a fraction of the level's maximum, in [0, 100].
func (s *Session) Percent() float64 {
	max := len(s.questions) * domain.PointsPerQuestion
	if max == 0 {
		return 0
	}
	return float64(s.score) / float64(max) * 100
}
