package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/models"
)

// PersonaService refreshes the short user summaries the chat companion reads
// as context. Runs nightly for recently active users and on demand.
type PersonaService struct {
	DB     *gorm.DB
	AI     *ai.Client
	Logger *zap.SugaredLogger
}

func NewPersonaService(db *gorm.DB, aiClient *ai.Client, logger *zap.SugaredLogger) *PersonaService {
	return &PersonaService{DB: db, AI: aiClient, Logger: logger}
}

// RefreshUser regenerates a user's persona summary from their recent moods
// and journal titles, honoring sharing preferences.
func (p *PersonaService) RefreshUser(ctx context.Context, userID uint) error {
	if !p.AI.Available() {
		return ai.ErrUnavailable
	}

	var user models.User
	if err := p.DB.First(&user, userID).Error; err != nil {
		return err
	}

	var moods []string
	if user.ShareMood {
		if err := p.DB.Model(&models.MoodLog{}).Where("user_id = ?", userID).
			Order("created_at DESC").Limit(14).Pluck("mood", &moods).Error; err != nil {
			return err
		}
	}
	var titles []string
	if user.ShareJournal {
		if err := p.DB.Model(&models.JournalEntry{}).Where("user_id = ?", userID).
			Order("created_at DESC").Limit(10).Pluck("title", &titles).Error; err != nil {
			return err
		}
	}
	if len(moods) == 0 && len(titles) == 0 {
		return nil // nothing to summarize
	}

	summary, err := p.AI.Persona(ctx, moods, titles)
	if err != nil {
		return err
	}
	return p.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("persona_summary", summary).Error
}

// RefreshRecentlyActive refreshes personas for users with activity in the
// last 7 days. Errors on individual users are logged and skipped.
func (p *PersonaService) RefreshRecentlyActive(ctx context.Context) {
	if !p.AI.Available() {
		return
	}
	since := time.Now().AddDate(0, 0, -7)

	var userIDs []uint
	if err := p.DB.Model(&models.MoodLog{}).Where("created_at >= ?", since).
		Distinct("user_id").Pluck("user_id", &userIDs).Error; err != nil {
		if p.Logger != nil {
			p.Logger.Errorf("persona refresh query failed: %v", err)
		}
		return
	}

	for _, id := range userIDs {
		if ctx.Err() != nil {
			return
		}
		if err := p.RefreshUser(ctx, id); err != nil && p.Logger != nil {
			p.Logger.Warnf("persona refresh failed user=%d err=%v", id, err)
		}
	}
	if p.Logger != nil {
		p.Logger.Infof("persona refresh completed users=%d", len(userIDs))
	}
}
