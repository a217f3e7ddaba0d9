package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/services"
	"github.com/mindhaven/mindhaven/utils"
)

const wellnessCatalogCacheKey = "wellness:catalog"

// WellnessController serves the guided session catalog, completion tracking
// and mood-based recommendations.
type WellnessController struct {
	db           *gorm.DB
	achievements *services.AchievementService
}

// NewWellnessController creates a WellnessController.
func NewWellnessController(db *gorm.DB, achievements *services.AchievementService) *WellnessController {
	return &WellnessController{db: db, achievements: achievements}
}

func (w *WellnessController) catalog() ([]models.WellnessSession, error) {
	var sessions []models.WellnessSession
	if utils.CacheGetJSON(wellnessCatalogCacheKey, &sessions) && len(sessions) > 0 {
		return sessions, nil
	}
	if err := w.db.Order("id asc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	utils.CacheSetJSON(wellnessCatalogCacheKey, sessions, time.Hour)
	return sessions, nil
}

// ListSessions returns the full session catalog, optionally filtered by type.
func (w *WellnessController) ListSessions(ctx *gin.Context) {
	sessions, err := w.catalog()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load sessions")
		return
	}

	if t := ctx.Query("type"); t != "" {
		filtered := sessions[:0]
		for _, s := range sessions {
			if s.Type == t {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}
	utils.Success(ctx, gin.H{"items": sessions})
}

// Complete records a finished session and runs the achievement pass.
func (w *WellnessController) Complete(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		SessionID       uint `json:"session_id" binding:"required"`
		DurationSeconds int  `json:"duration_seconds"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	var session models.WellnessSession
	if err := w.db.First(&session, req.SessionID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40450, "session not found")
		return
	}

	activity := models.UserActivity{
		UserID:          userID,
		SessionID:       session.ID,
		ActivityType:    session.Type,
		DurationSeconds: req.DurationSeconds,
		CompletedAt:     time.Now(),
	}
	if err := w.db.Create(&activity).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to record completion")
		return
	}

	earned, celebration, _ := w.achievements.Run(ctx.Request.Context(), userID)

	utils.Success(ctx, gin.H{
		"activity":         activity,
		"new_achievements": earned,
		"celebration":      celebration,
	})
}

// History lists the user's completed sessions, newest first.
func (w *WellnessController) History(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var activities []models.UserActivity
	if err := w.db.Where("user_id = ?", userID).Order("completed_at DESC").
		Limit(100).Find(&activities).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load history")
		return
	}
	utils.Success(ctx, gin.H{"items": activities})
}

// Recommendations picks sessions matched to the user's latest mood.
func (w *WellnessController) Recommendations(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	sessions, err := w.catalog()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load sessions")
		return
	}

	moodValue := 3
	var latest models.MoodLog
	if err := w.db.Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error; err == nil {
		moodValue = models.MoodValue(latest.Mood)
	}

	recs := services.RecommendSessions(sessions, moodValue)
	utils.Success(ctx, gin.H{"items": recs, "based_on_mood": moodValue})
}
