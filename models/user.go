package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account. Passwords are stored as bcrypt hashes only.
// Privacy flags gate which data categories the AI features may read.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email           string         `gorm:"size:255" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	Provider        string         `gorm:"size:32" json:"provider"`
	ProviderID      string         `gorm:"size:255" json:"provider_id"`
	RegisterIP      string         `gorm:"size:45" json:"-"`
	AvatarURL       string         `gorm:"size:512" json:"avatar_url"`
	Bio             string         `gorm:"size:512" json:"bio"`
	PersonaSummary  string         `gorm:"type:text" json:"persona_summary"`
	ShareMood       bool           `gorm:"default:true" json:"share_mood"`
	ShareJournal    bool           `gorm:"default:true" json:"share_journal"`
	ShareActivities bool           `gorm:"default:true" json:"share_activities"`
	OnboardedAt     *time.Time     `json:"onboarded_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
