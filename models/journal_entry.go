package models

import "time"

// JournalEntry is a free-form journal entry. Content is sanitized before storage.
type JournalEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      string    `gorm:"size:16" json:"mood"`
	Tags      string    `gorm:"type:text" json:"tags"` // JSON array of tag strings
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
