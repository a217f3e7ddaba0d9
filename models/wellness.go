package models

import "time"

// Wellness session types.
const (
	SessionMeditation = "meditation"
	SessionBreathing  = "breathing"
	SessionBodyScan   = "body-scan"
	SessionSound      = "sound"
)

// WellnessSession is a catalog entry for a guided session. Static reference
// data maintained by an administrator.
type WellnessSession struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"size:512" json:"description"`
	Type            string    `gorm:"size:32;index;not null" json:"type"`
	DurationMinutes int       `json:"duration_minutes"`
	AudioURL        string    `gorm:"size:512" json:"audio_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserActivity records a completed wellness session.
type UserActivity struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	SessionID       uint      `gorm:"index" json:"session_id"`
	ActivityType    string    `gorm:"size:32" json:"activity_type"`
	DurationSeconds int       `json:"duration_seconds"`
	CompletedAt     time.Time `gorm:"index" json:"completed_at"`
}
