package domain

import "errors"

var (
	// ErrDataLoad indicates the question source was missing or malformed.
	// Non-fatal: the bank degrades to empty pools.
	ErrDataLoad = errors.New("question data could not be loaded")
	// ErrPersistence indicates a progress save failed. Non-fatal: the game
	// continues with in-memory progress.
	ErrPersistence = errors.New("progress could not be persisted")
	// ErrLevelLocked is returned when starting a level the player has not unlocked.
	ErrLevelLocked = errors.New("level is locked")
	// ErrLevelNotFound indicates a level number outside the catalog.
	ErrLevelNotFound = errors.New("level not found")
	// ErrNoQuestions indicates a level's question pool is empty.
	ErrNoQuestions = errors.New("no questions available for level")

	// ErrNoSelection is returned when submitting with no answer selected.
	ErrNoSelection = errors.New("no answer selected")
	// ErrInvalidOption indicates a selected option index out of range.
	ErrInvalidOption = errors.New("option index out of range")
	// ErrNotActive is returned when an operation requires an active question.
	ErrNotActive = errors.New("session is not accepting answers")
	// ErrNotFeedback is returned when advancing outside the feedback phase.
	ErrNotFeedback = errors.New("no feedback to advance from")
	// ErrNotPaused is returned when resuming a session that is not paused.
	ErrNotPaused = errors.New("session is not paused")
	// ErrNotPausable is returned when pausing outside Active or Feedback.
	ErrNotPausable = errors.New("session cannot be paused now")
)
