package domain

// Tier is the difficulty class a question or level belongs to.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Tiers lists all difficulty classes in ascending order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// Valid reports whether t is one of the known difficulty classes.
func (t Tier) Valid() bool {
	switch t {
	case TierEasy, TierMedium, TierHard:
		return true
	}
	return false
}

// Question is a single multiple-choice question. Immutable once loaded.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"correct_answer"`
	Tier    Tier     `json:"difficulty"`
}

// Pools maps each difficulty tier to its question pool.
type Pools map[Tier][]Question

// EmptyPools returns a pool map with an entry per tier, so downstream code
// can index any tier without nil checks even when loading failed.
func EmptyPools() Pools {
	p := make(Pools, len(Tiers))
	for _, t := range Tiers {
		p[t] = nil
	}
	return p
}

// PointsPerQuestion is the fixed award for a correct answer, regardless of tier.
const PointsPerQuestion = 10

// StartingLives is the number of lives a fresh session begins with.
const StartingLives = 3

// Level is one entry of the static level catalog.
type Level struct {
	Number      int
	Name        string
	Tier        Tier
	Questions   int
	UnlockScore int
	Icon        string
}

// MaxScore is the highest score achievable in one run of the level.
func (l Level) MaxScore() int {
	return l.Questions * PointsPerQuestion
}

// Progress is the durable cross-session record.
type Progress struct {
	TotalScore       int      `json:"total_score"`
	MaxUnlockedLevel int      `json:"max_unlocked_level"`
	Badges           []string `json:"badges"`
	Settings         Settings `json:"settings"`
}

// DefaultProgress is the fresh-install state: only level 1 reachable.
func DefaultProgress() Progress {
	return Progress{
		TotalScore:       0,
		MaxUnlockedLevel: 1,
		Badges:           []string{},
		Settings:         DefaultSettings(),
	}
}

// CanPlay reports whether the level is playable: the cumulative score must
// meet the level's unlock threshold AND sequential progress must have reached
// its number. The two gates are independent and both must hold.
func (p Progress) CanPlay(l Level) bool {
	return p.TotalScore >= l.UnlockScore && l.Number <= p.MaxUnlockedLevel
}

// Settings holds the user-facing toggles persisted alongside progress.
type Settings struct {
	SoundEnabled    bool    `json:"sound_enabled"`
	MusicEnabled    bool    `json:"music_enabled"`
	SoundVolume     float64 `json:"sound_volume"`
	MusicVolume     float64 `json:"music_volume"`
	ShowAnimations  bool    `json:"show_animations"`
	DifficultyHints bool    `json:"difficulty_hints"`
}

func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:    true,
		MusicEnabled:    true,
		SoundVolume:     0.7,
		MusicVolume:     0.3,
		ShowAnimations:  true,
		DifficultyHints: true,
	}
}
