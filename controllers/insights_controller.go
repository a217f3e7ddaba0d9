package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/services"
	"github.com/mindhaven/mindhaven/utils"
)

// InsightsController aggregates mood and journal data for the insights
// dashboard and exposes anonymous public stats.
type InsightsController struct {
	db      *gorm.DB
	ai      *ai.Client
	persona *services.PersonaService
}

// NewInsightsController creates an InsightsController.
func NewInsightsController(db *gorm.DB, aiClient *ai.Client, persona *services.PersonaService) *InsightsController {
	return &InsightsController{db: db, ai: aiClient, persona: persona}
}

// Mood returns trigger frequencies, weekday averages and the daily heatmap
// over the requested window (default 30 days, capped at 365).
func (i *InsightsController) Mood(ctx *gin.Context) {
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
	if err := i.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Find(&logs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load mood logs")
		return
	}

	insights := services.BuildMoodInsights(logs)

	// Optional model-written narrative over the aggregates; omitted on any
	// failure rather than erroring the endpoint.
	narrative := ""
	if ctx.Query("narrative") == "true" && i.ai.Available() && insights.TotalLogs > 0 {
		prompt := fmt.Sprintf(
			"In 2-3 warm, encouraging sentences, summarize this mood data for the user. Average mood %.1f of 5 over %d check-ins in %d days. Most common triggers: %s.",
			insights.AverageMood, insights.TotalLogs, days, triggerNames(insights.TopTriggers))
		if out, err := i.ai.Generate(ctx.Request.Context(), prompt); err == nil {
			narrative = strings.TrimSpace(out)
		}
	}

	utils.Success(ctx, gin.H{"days": days, "insights": insights, "narrative": narrative})
}

func triggerNames(triggers []services.TriggerFrequency) string {
	if len(triggers) == 0 {
		return "none recorded"
	}
	names := make([]string, 0, len(triggers))
	for _, t := range triggers {
		names = append(names, t.Trigger)
	}
	return strings.Join(names, ", ")
}

// WeeklyJournal summarizes the past week's journal entries via the model.
// Gated on the user's journal sharing preference.
func (i *InsightsController) WeeklyJournal(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var user models.User
	if err := i.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	if !user.ShareJournal {
		utils.Error(ctx, http.StatusForbidden, 40390, "journal sharing is disabled in privacy settings")
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -7)
	var contents []string
	if err := i.db.Model(&models.JournalEntry{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").Pluck("content", &contents).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to load journal entries")
		return
	}
	if len(contents) == 0 {
		utils.Success(ctx, gin.H{"insights": nil, "entries": 0})
		return
	}

	insights, err := i.ai.WeeklyJournalInsights(ctx.Request.Context(), contents)
	if err != nil {
		utils.Error(ctx, http.StatusServiceUnavailable, 50390, "insights are unavailable right now")
		return
	}
	utils.Success(ctx, gin.H{"insights": insights, "entries": len(contents)})
}

// RefreshPersona regenerates the caller's persona summary on demand.
func (i *InsightsController) RefreshPersona(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	if err := i.persona.RefreshUser(ctx.Request.Context(), userID); err != nil {
		utils.Error(ctx, http.StatusServiceUnavailable, 50391, "persona refresh is unavailable right now")
		return
	}

	var user models.User
	if err := i.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"persona_summary": user.PersonaSummary})
}

// PublicStats returns anonymous aggregate counters, cached for five minutes.
func (i *InsightsController) PublicStats(ctx *gin.Context) {
	const cacheKey = "stats:public"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var users, checkIns, entries, sessions int64
	if err := i.db.Model(&models.User{}).Count(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to load stats")
		return
	}
	_ = i.db.Model(&models.MoodLog{}).Count(&checkIns).Error
	_ = i.db.Model(&models.JournalEntry{}).Count(&entries).Error
	_ = i.db.Model(&models.UserActivity{}).Count(&sessions).Error

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	var activeToday int64
	_ = i.db.Model(&models.MoodLog{}).Where("created_at >= ?", dayStart).
		Distinct("user_id").Count(&activeToday).Error

	payload := utils.JSONResponse{
		Code:    0,
		Message: "success",
		Data: gin.H{
			"users":              users,
			"check_ins":          checkIns,
			"journal_entries":    entries,
			"sessions_completed": sessions,
			"active_today":       activeToday,
		},
	}
	utils.CacheSetJSON(cacheKey, payload, 5*time.Minute)
	utils.Success(ctx, payload.Data)
}
