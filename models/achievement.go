package models

import "time"

// Achievement condition types.
const (
	ConditionStreak = "streak"
	ConditionCount  = "count"
)

// Achievement categories select which counter a count condition compares
// against. Legacy rows may leave Category empty, in which case the category
// is inferred from name/description keywords.
const (
	CategoryStreak  = "streak"
	CategoryJournal = "journal"
	CategorySession = "session"
	CategoryCheckIn = "checkin"
)

// Achievement is a catalog entry with a declarative unlock condition.
// Static reference data; never mutated by the evaluator.
type Achievement struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:128;not null" json:"name"`
	Description    string    `gorm:"size:512" json:"description"`
	Icon           string    `gorm:"size:16" json:"icon"`
	Category       string    `gorm:"size:16" json:"category"`
	ConditionType  string    `gorm:"size:16;not null" json:"condition_type"`
	ConditionValue int       `gorm:"not null" json:"condition_value"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserAchievement records a single unlock. The composite unique index makes
// concurrent evaluation passes safe: the second insert is a no-op.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
