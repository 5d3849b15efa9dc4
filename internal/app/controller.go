package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"firstaid-quiz/internal/domain"
)

// ProgressStore abstracts how durable progress is kept (local file, Redis, etc).
// Load never fails the caller: implementations return defaults when no usable
// save exists. Save failures are non-fatal and reported for logging only.
type ProgressStore interface {
	Load(ctx context.Context) domain.Progress
	Save(ctx context.Context, p domain.Progress) error
}

// Screen is the top-level view the presentation layer should render.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenSettings
	ScreenLevelSelect
	ScreenQuiz
	ScreenPaused
	ScreenResults
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenSettings:
		return "settings"
	case ScreenLevelSelect:
		return "levelSelect"
	case ScreenQuiz:
		return "quiz"
	case ScreenPaused:
		return "paused"
	case ScreenResults:
		return "results"
	}
	return "unknown"
}

// GameController owns the single live Session and the Progress record and
// drives the screen-level state machine between menu, level selection, quiz,
// results, settings, and pause. All game-logic transitions happen inside its
// mutex, so each input event is atomic from the presentation layer's view.
type GameController struct {
	mu       sync.Mutex
	bank     *Bank
	store    ProgressStore
	progress domain.Progress
	session  *Session
	screen   Screen
	result   *LevelResult
}

// NewGameController loads progress and starts at the menu.
func NewGameController(ctx context.Context, bank *Bank, store ProgressStore) *GameController {
	return &GameController{
		bank:     bank,
		store:    store,
		progress: store.Load(ctx),
		screen:   ScreenMenu,
	}
}

// StartLevel begins a fresh session for the level. It enforces both unlock
// gates (score threshold and sequential progress) and rejects levels whose
// question pool came up empty.
func (c *GameController) StartLevel(ctx context.Context, number int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	level, err := domain.LevelByNumber(number)
	if err != nil {
		return err
	}
	if !c.progress.CanPlay(level) {
		return fmt.Errorf("start level %d: %w", number, domain.ErrLevelLocked)
	}
	return c.beginLocked(ctx, level)
}

// QuickPlay jumps straight into level 1 from the menu.
func (c *GameController) QuickPlay(ctx context.Context) error {
	return c.StartLevel(ctx, 1)
}

// TryAgain replays the level just finished with a fresh question draw. Only
// valid from the results screen; the lock gates were already satisfied when
// the level was first started.
func (c *GameController) TryAgain(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != ScreenResults || c.result == nil {
		return domain.ErrNotActive
	}
	return c.beginLocked(ctx, c.result.Level)
}

func (c *GameController) beginLocked(ctx context.Context, level domain.Level) error {
	questions, err := c.bank.Draw(ctx, level.Tier, level.Questions)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("start level %d: %w", level.Number, domain.ErrNoQuestions)
	}
	c.session = newSession(level, questions)
	c.result = nil
	c.screen = ScreenQuiz
	return nil
}

// SelectAnswer records a tentative choice for the current question.
func (c *GameController) SelectAnswer(option int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return domain.ErrNotActive
	}
	return c.session.Select(option)
}

// SubmitAnswer grades the pending selection.
func (c *GameController) SubmitAnswer() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return false, domain.ErrNotActive
	}
	return c.session.Submit()
}

// Advance moves past feedback. When the run ends it folds the session into
// progress, persists it, and switches to the results screen. Save failures
// are logged and swallowed; the game keeps running on in-memory progress.
func (c *GameController) Advance(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return domain.ErrNotFeedback
	}

	ended, err := c.session.Advance()
	if err != nil {
		return err
	}
	if !ended {
		return nil
	}

	var unlocked bool
	c.progress, unlocked = applyLevelEnd(c.progress, c.session)
	if err := c.store.Save(ctx, c.progress); err != nil {
		log.Printf("save progress after level %d: %v", c.session.Level().Number, err)
	}
	result := levelResult(c.session, unlocked)
	c.result = &result
	c.session = nil
	c.screen = ScreenResults
	return nil
}

// Pause freezes the live session and shows the pause overlay.
func (c *GameController) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return domain.ErrNotPausable
	}
	if err := c.session.Pause(); err != nil {
		return err
	}
	c.screen = ScreenPaused
	return nil
}

// Resume returns to the quiz exactly where it was frozen.
func (c *GameController) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return domain.ErrNotPaused
	}
	if err := c.session.Resume(); err != nil {
		return err
	}
	c.screen = ScreenQuiz
	return nil
}

// OpenSettings and OpenLevelSelect navigate from the menu.
func (c *GameController) OpenSettings() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen = ScreenSettings
}

func (c *GameController) OpenLevelSelect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen = ScreenLevelSelect
}

// ReturnToMenu abandons any live session without banking its score and
// navigates home. Abandoning mid-quiz deliberately forfeits the partial run.
func (c *GameController) ReturnToMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.result = nil
	c.screen = ScreenMenu
}

// ChangeSetting updates one settings toggle and persists immediately.
// Volumes are clamped into [0, 1]. Unknown keys are rejected.
func (c *GameController) ChangeSetting(ctx context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.progress.Settings
	switch key {
	case "sound_enabled":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s wants bool, got %T", key, value)
		}
		s.SoundEnabled = b
	case "music_enabled":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s wants bool, got %T", key, value)
		}
		s.MusicEnabled = b
	case "show_animations":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s wants bool, got %T", key, value)
		}
		s.ShowAnimations = b
	case "difficulty_hints":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s wants bool, got %T", key, value)
		}
		s.DifficultyHints = b
	case "sound_volume":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("setting %s wants float, got %T", key, value)
		}
		s.SoundVolume = clamp01(f)
	case "music_volume":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("setting %s wants float, got %T", key, value)
		}
		s.MusicVolume = clamp01(f)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := c.store.Save(ctx, c.progress); err != nil {
		log.Printf("save settings: %v", err)
	}
	return nil
}

// Progress returns a copy of the durable record.
func (c *GameController) Progress() domain.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
