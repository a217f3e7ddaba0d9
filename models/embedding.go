package models

import "time"

// Embedding source types.
const (
	EmbeddingDocument  = "document"
	EmbeddingJournal   = "journal"
	EmbeddingChat      = "chat"
	EmbeddingCondition = "condition"
)

// Embedding stores a text fragment and its vector for chat context
// retrieval. Vectors are serialized as a JSON array of floats; similarity
// search is an in-process cosine scan over the user's rows.
type Embedding struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Type      string    `gorm:"size:16;index;not null" json:"type"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Vector    string    `gorm:"type:mediumtext;not null" json:"-"`
	Metadata  string    `gorm:"type:text" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
