package app_test

import (
	"errors"
	"testing"

	"firstaid-quiz/internal/app"
	"firstaid-quiz/internal/domain"
)

func testQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "one", Options: []string{"a", "b", "c"}, Correct: 1, Tier: domain.TierEasy},
		{ID: "q2", Text: "two", Options: []string{"a", "b"}, Correct: 0, Tier: domain.TierEasy},
		{ID: "q3", Text: "three", Options: []string{"a", "b", "c", "d"}, Correct: 3, Tier: domain.TierEasy},
	}
}

func testLevel() domain.Level {
	return domain.Catalog[0]
}

func answer(t *testing.T, s *app.Session, option int) bool {
	t.Helper()
	if err := s.Select(option); err != nil {
		t.Fatalf("select %d: %v", option, err)
	}
	correct, err := s.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return correct
}

func TestSessionPerfectRun(t *testing.T) {
	s := app.NewSession(testLevel(), testQuestions())

	for i, want := range []int{1, 0, 3} {
		if s.Phase() != app.PhaseActive {
			t.Fatalf("question %d: expected active, got %v", i, s.Phase())
		}
		if len(s.Outcomes()) != s.Index() {
			t.Fatalf("question %d: outcomes %d != index %d", i, len(s.Outcomes()), s.Index())
		}
		if !answer(t, s, want) {
			t.Fatalf("question %d: expected correct", i)
		}
		if s.Phase() != app.PhaseFeedback {
			t.Fatalf("question %d: expected feedback, got %v", i, s.Phase())
		}
		if len(s.Outcomes()) != s.Index()+1 {
			t.Fatalf("question %d: outcomes %d != index+1", i, len(s.Outcomes()))
		}
		if _, err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	if s.Phase() != app.PhaseEnded {
		t.Fatalf("expected ended, got %v", s.Phase())
	}
	if s.Score() != 30 {
		t.Fatalf("expected score 30, got %d", s.Score())
	}
	if s.Lives() != 3 {
		t.Fatalf("expected lives intact, got %d", s.Lives())
	}
	if s.Percent() != 100 {
		t.Fatalf("expected 100%%, got %v", s.Percent())
	}
}

func TestSessionEndsEarlyWhenLivesExhausted(t *testing.T) {
	questions := make([]domain.Question, 4)
	for i := range questions {
		questions[i] = domain.Question{ID: "q", Text: "q", Options: []string{"a", "b"}, Correct: 1, Tier: domain.TierMedium}
	}
	s := app.NewSession(domain.Catalog[1], questions)

	for i := 0; i < 3; i++ {
		if answer(t, s, 0) {
			t.Fatalf("question %d: expected wrong answer", i)
		}
		ended, err := s.Advance()
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if wantEnded := i == 2; ended != wantEnded {
			t.Fatalf("question %d: ended=%v lives=%d", i, ended, s.Lives())
		}
	}

	if s.Lives() != 0 {
		t.Fatalf("expected 0 lives, got %d", s.Lives())
	}
	if s.Phase() != app.PhaseEnded {
		t.Fatalf("expected ended after losing all lives, got %v", s.Phase())
	}
	if got := len(s.Outcomes()); got != 3 {
		t.Fatalf("expected 3 outcomes on early end, got %d", got)
	}
}

func TestSessionWrongAnswerCostsOneLife(t *testing.T) {
	s := app.NewSession(testLevel(), testQuestions())

	if answer(t, s, 0) {
		t.Fatalf("expected wrong answer")
	}
	if s.Lives() != 2 {
		t.Fatalf("expected 2 lives, got %d", s.Lives())
	}
	if s.Score() != 0 {
		t.Fatalf("score must not decrease on wrong answer, got %d", s.Score())
	}
	outcomes := s.Outcomes()
	if len(outcomes) != 1 || outcomes[0] {
		t.Fatalf("expected single false outcome, got %v", outcomes)
	}
}

func TestSessionRejectsInvalidOperations(t *testing.T) {
	s := app.NewSession(testLevel(), testQuestions())

	if _, err := s.Submit(); !errors.Is(err, domain.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if _, err := s.Advance(); !errors.Is(err, domain.ErrNotFeedback) {
		t.Fatalf("expected ErrNotFeedback, got %v", err)
	}
	if err := s.Select(5); !errors.Is(err, domain.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if err := s.Select(-1); !errors.Is(err, domain.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption for negative, got %v", err)
	}
	if err := s.Resume(); !errors.Is(err, domain.ErrNotPaused) {
		t.Fatalf("expected ErrNotPaused, got %v", err)
	}

	// Nothing above may have mutated state.
	if s.Score() != 0 || s.Lives() != 3 || s.Index() != 0 || len(s.Outcomes()) != 0 {
		t.Fatalf("rejected operations corrupted state: score=%d lives=%d index=%d", s.Score(), s.Lives(), s.Index())
	}

	answer(t, s, 1)
	if err := s.Select(0); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("expected ErrNotActive during feedback, got %v", err)
	}
	if _, err := s.Submit(); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("expected ErrNotActive resubmitting, got %v", err)
	}
}

func TestSessionPauseResumeFreezesState(t *testing.T) {
	s := app.NewSession(testLevel(), testQuestions())
	answer(t, s, 1)

	if err := s.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if s.Phase() != app.PhasePaused {
		t.Fatalf("expected paused, got %v", s.Phase())
	}
	if _, err := s.Advance(); !errors.Is(err, domain.ErrNotFeedback) {
		t.Fatalf("paused session accepted advance: %v", err)
	}
	if err := s.Pause(); !errors.Is(err, domain.ErrNotPausable) {
		t.Fatalf("expected double pause rejected, got %v", err)
	}

	score, lives, index := s.Score(), s.Lives(), s.Index()
	if err := s.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if s.Phase() != app.PhaseFeedback {
		t.Fatalf("expected resume back to feedback, got %v", s.Phase())
	}
	if s.Score() != score || s.Lives() != lives || s.Index() != index {
		t.Fatalf("pause altered state")
	}
}

func TestSessionScoreMonotonic(t *testing.T) {
	s := app.NewSession(testLevel(), testQuestions())
	answers := []int{1, 1, 3} // correct, wrong, correct

	prevScore := 0
	for _, a := range answers {
		correct := answer(t, s, a)
		if correct && s.Score() != prevScore+domain.PointsPerQuestion {
			t.Fatalf("correct answer should add exactly %d points", domain.PointsPerQuestion)
		}
		if s.Score() < prevScore {
			t.Fatalf("score decreased from %d to %d", prevScore, s.Score())
		}
		prevScore = s.Score()
		if _, err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if s.Score() != 20 {
		t.Fatalf("expected 20, got %d", s.Score())
	}
}
