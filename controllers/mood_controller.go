package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/services"
	"github.com/mindhaven/mindhaven/utils"
)

// MoodController handles daily mood check-ins.
type MoodController struct {
	db           *gorm.DB
	achievements *services.AchievementService
}

// NewMoodController creates a MoodController.
func NewMoodController(db *gorm.DB, achievements *services.AchievementService) *MoodController {
	return &MoodController{db: db, achievements: achievements}
}

// CheckIn records today's mood. A second check-in on the same UTC day updates
// the existing log instead of creating another row. The response carries any
// achievements or streak celebration the check-in earned.
func (m *MoodController) CheckIn(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Mood         string   `json:"mood" binding:"required"`
		Note         string   `json:"note"`
		EnergyLevel  int      `json:"energy_level"`
		AnxietyLevel int      `json:"anxiety_level"`
		StressLevel  int      `json:"stress_level"`
		Triggers     []string `json:"triggers"`
		ContextNote  string   `json:"context_note"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}
	if !models.ValidMood(req.Mood) {
		utils.Error(ctx, http.StatusBadRequest, 40011, "unknown mood value")
		return
	}

	triggersJSON := "[]"
	if len(req.Triggers) > 0 {
		if b, err := json.Marshal(req.Triggers); err == nil {
			triggersJSON = string(b)
		}
	}

	now := time.Now()
	dayStart := now.UTC().Truncate(24 * time.Hour)

	var log models.MoodLog
	err := m.db.Where("user_id = ? AND created_at >= ?", userID, dayStart).
		Order("created_at DESC").First(&log).Error
	switch {
	case err == nil:
		log.Mood = req.Mood
		log.Note = utils.Sanitize(req.Note)
		log.EnergyLevel = req.EnergyLevel
		log.AnxietyLevel = req.AnxietyLevel
		log.StressLevel = req.StressLevel
		log.Triggers = triggersJSON
		log.ContextNote = utils.Sanitize(req.ContextNote)
		if err := m.db.Save(&log).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to update check-in")
			return
		}
	case err == gorm.ErrRecordNotFound:
		log = models.MoodLog{
			UserID:       userID,
			Mood:         req.Mood,
			Note:         utils.Sanitize(req.Note),
			EnergyLevel:  req.EnergyLevel,
			AnxietyLevel: req.AnxietyLevel,
			StressLevel:  req.StressLevel,
			Triggers:     triggersJSON,
			ContextNote:  utils.Sanitize(req.ContextNote),
			CreatedAt:    now,
		}
		if err := m.db.Create(&log).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to save check-in")
			return
		}
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load today's check-in")
		return
	}

	earned, celebration, _ := m.achievements.Run(ctx.Request.Context(), userID)

	utils.Success(ctx, gin.H{
		"log":              log,
		"new_achievements": earned,
		"celebration":      celebration,
	})
}

// Today returns the current UTC day's check-in, if any.
func (m *MoodController) Today(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	var log models.MoodLog
	err := m.db.Where("user_id = ? AND created_at >= ?", userID, dayStart).
		Order("created_at DESC").First(&log).Error
	if err == gorm.ErrRecordNotFound {
		utils.Success(ctx, nil)
		return
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load today's check-in")
		return
	}
	utils.Success(ctx, log)
}

// List returns mood logs for the requested window, newest first. Defaults to
// the last 30 days, capped at 365.
func (m *MoodController) List(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	days := 30
	if v := ctx.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	var logs []models.MoodLog
	if err := m.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").Find(&logs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to load mood logs")
		return
	}
	utils.Success(ctx, gin.H{"items": logs, "days": days})
}
