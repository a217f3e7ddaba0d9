package models

import "time"

// Chat message senders.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatSession groups messages in the AI companion chat.
type ChatSession struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Title      string    `gorm:"size:255" json:"title"`
	Tags       string    `gorm:"type:text" json:"tags"` // JSON array of tag strings
	IsArchived bool      `gorm:"default:false" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`
}

// ChatMessage is a single message in a session, from the user or the model.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"index;size:36;not null" json:"session_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Sender    string    `gorm:"size:8;not null" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsPinned  bool      `gorm:"default:false" json:"is_pinned"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
