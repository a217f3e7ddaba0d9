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

// AchievementController exposes the achievement catalog, per-user unlocks and
// the streak surface.
type AchievementController struct {
	db      *gorm.DB
	service *services.AchievementService
}

// NewAchievementController creates an AchievementController.
func NewAchievementController(db *gorm.DB, service *services.AchievementService) *AchievementController {
	return &AchievementController{db: db, service: service}
}

// List returns the catalog annotated with the caller's unlock state.
func (a *AchievementController) List(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	catalog, err := a.service.Catalog()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load achievements")
		return
	}

	var rows []models.UserAchievement
	if err := a.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to load unlocks")
		return
	}
	unlockedAt := make(map[uint]time.Time, len(rows))
	for _, r := range rows {
		unlockedAt[r.AchievementID] = r.UnlockedAt
	}

	type item struct {
		models.Achievement
		Unlocked   bool       `json:"unlocked"`
		UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	}
	items := make([]item, 0, len(catalog))
	unlockedCount := 0
	for _, ach := range catalog {
		it := item{Achievement: ach}
		if ts, ok := unlockedAt[ach.ID]; ok {
			it.Unlocked = true
			it.UnlockedAt = &ts
			unlockedCount++
		}
		items = append(items, it)
	}

	utils.Success(ctx, gin.H{
		"items":    items,
		"unlocked": unlockedCount,
		"total":    len(items),
	})
}

// Refresh runs the unlock pass on demand and returns anything newly earned.
func (a *AchievementController) Refresh(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	earned, celebration, err := a.service.Run(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to evaluate achievements")
		return
	}
	utils.Success(ctx, gin.H{
		"new_achievements": earned,
		"celebration":      celebration,
	})
}

// Streak returns the user's current streak, activity totals and whether today
// counted yet.
func (a *AchievementController) Streak(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	counts, err := a.service.CollectCounts(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to compute streak")
		return
	}

	// Last 30 days of activity for the calendar view.
	since := time.Now().UTC().AddDate(0, 0, -30)
	var moodTimes, journalTimes []time.Time
	_ = a.db.Model(&models.MoodLog{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Pluck("created_at", &moodTimes).Error
	_ = a.db.Model(&models.JournalEntry{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Pluck("created_at", &journalTimes).Error
	activeDays := services.ActiveDays(append(append([]time.Time{}, moodTimes...), journalTimes...))

	activeToday := false
	if len(activeDays) > 0 && activeDays[0] == services.DateKey(time.Now()) {
		activeToday = true
	}

	nextMilestone := 0
	for _, m := range services.Milestones {
		if m > counts.Streak {
			nextMilestone = m
			break
		}
	}

	var celebration *services.Celebration
	if a.service.Notifier != nil {
		celebration = a.service.Notifier.Check(ctx.Request.Context(), userID, counts.Streak, time.Now())
	}

	utils.Success(ctx, gin.H{
		"streak":         counts.Streak,
		"active_today":   activeToday,
		"active_days":    activeDays,
		"next_milestone": nextMilestone,
		"check_ins":      counts.CheckInCount,
		"journal_count":  counts.JournalCount,
		"session_count":  counts.SessionCount,
		"celebration":    celebration,
	})
}
