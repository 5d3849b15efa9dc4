package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"firstaid-quiz/internal/domain"
)

// ProgressStore persists progress as a small JSON document. Writes go to a
// temp file in the same directory followed by a rename, so a crash mid-write
// leaves the previous save intact.
type ProgressStore struct {
	path string
}

func NewProgressStore(path string) *ProgressStore {
	return &ProgressStore{path: path}
}

// progressFile uses pointer fields so absent keys are distinguishable from
// zero values and can be defaulted individually.
type progressFile struct {
	TotalScore       *int          `json:"total_score"`
	MaxUnlockedLevel *int          `json:"max_unlocked_level"`
	Badges           []string      `json:"badges"`
	Settings         *settingsFile `json:"settings"`
}

type settingsFile struct {
	SoundEnabled    *bool    `json:"sound_enabled"`
	MusicEnabled    *bool    `json:"music_enabled"`
	SoundVolume     *float64 `json:"sound_volume"`
	MusicVolume     *float64 `json:"music_volume"`
	ShowAnimations  *bool    `json:"show_animations"`
	DifficultyHints *bool    `json:"difficulty_hints"`
}

// Load never fails the caller: an absent or unreadable save yields defaults,
// and absent individual fields are merged over defaults per-field.
func (s *ProgressStore) Load(_ context.Context) domain.Progress {
	progress := domain.DefaultProgress()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("progress unreadable, using defaults: %v", err)
		}
		return progress
	}

	var doc progressFile
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("progress corrupt, using defaults: %v", err)
		return progress
	}

	if doc.TotalScore != nil && *doc.TotalScore >= 0 {
		progress.TotalScore = *doc.TotalScore
	}
	if doc.MaxUnlockedLevel != nil && *doc.MaxUnlockedLevel >= 1 && *doc.MaxUnlockedLevel <= domain.MaxLevel {
		progress.MaxUnlockedLevel = *doc.MaxUnlockedLevel
	}
	if doc.Badges != nil {
		progress.Badges = doc.Badges
	}
	if doc.Settings != nil {
		mergeSettings(&progress.Settings, doc.Settings)
	}
	return progress
}

func mergeSettings(dst *domain.Settings, src *settingsFile) {
	if src.SoundEnabled != nil {
		dst.SoundEnabled = *src.SoundEnabled
	}
	if src.MusicEnabled != nil {
		dst.MusicEnabled = *src.MusicEnabled
	}
	if src.SoundVolume != nil {
		dst.SoundVolume = *src.SoundVolume
	}
	if src.MusicVolume != nil {
		dst.MusicVolume = *src.MusicVolume
	}
	if src.ShowAnimations != nil {
		dst.ShowAnimations = *src.ShowAnimations
	}
	if src.DifficultyHints != nil {
		dst.DifficultyHints = *src.DifficultyHints
	}
}

// Save persists atomically via temp file + rename. Failures wrap
// domain.ErrPersistence and are non-fatal to the session.
func (s *ProgressStore) Save(_ context.Context, p domain.Progress) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", domain.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: rename: %v", domain.ErrPersistence, err)
	}
	return nil
}
