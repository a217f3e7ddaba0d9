package models

import "time"

// Mood labels on the five point scale.
const (
	MoodStruggling = "struggling"
	MoodDifficult  = "difficult"
	MoodOkay       = "okay"
	MoodGood       = "good"
	MoodGreat      = "great"
)

// MoodLog is a daily mood check-in. At most one log per user per calendar
// day is kept current; a second check-in on the same day updates it.
type MoodLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Mood         string    `gorm:"size:16;not null" json:"mood"`
	Note         string    `gorm:"size:512" json:"note"`
	EnergyLevel  int       `json:"energy_level"`
	AnxietyLevel int       `json:"anxiety_level"`
	StressLevel  int       `json:"stress_level"`
	Triggers     string    `gorm:"type:text" json:"triggers"` // JSON array of trigger labels
	ContextNote  string    `gorm:"size:512" json:"context_note"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MoodValue maps a mood label to its 1-5 scale value, defaulting to 3.
func MoodValue(mood string) int {
	switch mood {
	case MoodStruggling:
		return 1
	case MoodDifficult:
		return 2
	case MoodOkay:
		return 3
	case MoodGood:
		return 4
	case MoodGreat:
		return 5
	default:
		return 3
	}
}

// ValidMood reports whether the label is one of the five known moods.
func ValidMood(mood string) bool {
	switch mood {
	case MoodStruggling, MoodDifficult, MoodOkay, MoodGood, MoodGreat:
		return true
	}
	return false
}
