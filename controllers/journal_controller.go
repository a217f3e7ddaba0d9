package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/services"
	"github.com/mindhaven/mindhaven/utils"
)

// JournalController handles journal entry CRUD and AI-assisted features.
type JournalController struct {
	db           *gorm.DB
	ai           *ai.Client
	achievements *services.AchievementService
}

// NewJournalController creates a JournalController.
func NewJournalController(db *gorm.DB, aiClient *ai.Client, achievements *services.AchievementService) *JournalController {
	return &JournalController{db: db, ai: aiClient, achievements: achievements}
}

// Create stores a new journal entry. Tags come from the request or, when
// omitted, from the model in a best-effort background pass alongside the
// entry's embedding.
func (j *JournalController) Create(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Title   string   `json:"title" binding:"required,max=255"`
		Content string   `json:"content" binding:"required"`
		Mood    string   `json:"mood"`
		Tags    []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.Mood != "" && !models.ValidMood(req.Mood) {
		utils.Error(ctx, http.StatusBadRequest, 40011, "unknown mood value")
		return
	}

	tagsJSON := "[]"
	if len(req.Tags) > 0 {
		if b, err := json.Marshal(req.Tags); err == nil {
			tagsJSON = string(b)
		}
	}

	entry := models.JournalEntry{
		UserID:  userID,
		Title:   utils.Sanitize(req.Title),
		Content: utils.Sanitize(req.Content),
		Mood:    req.Mood,
		Tags:    tagsJSON,
	}
	if err := j.db.Create(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to save journal entry")
		return
	}

	// Best effort: derive tags and embedding without blocking the response.
	go j.enrichEntry(entry.ID, userID, entry.Content, len(req.Tags) == 0)

	earned, celebration, _ := j.achievements.Run(ctx.Request.Context(), userID)

	utils.Success(ctx, gin.H{
		"entry":            entry,
		"new_achievements": earned,
		"celebration":      celebration,
	})
}

func (j *JournalController) enrichEntry(entryID, userID uint, content string, wantTags bool) {
	defer func() {
		if r := recover(); r != nil && utils.Sugar != nil {
			utils.Sugar.Errorf("journal enrich panic entry=%d: %v", entryID, r)
		}
	}()
	bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if wantTags && j.ai.Available() {
		if tags := j.ai.JournalTags(bg, content); len(tags) > 0 {
			if b, err := json.Marshal(tags); err == nil {
				_ = j.db.Model(&models.JournalEntry{}).Where("id = ?", entryID).
					Update("tags", string(b)).Error
			}
		}
	}

	if vec, err := j.ai.Embed(bg, content); err == nil {
		if enc, err := ai.EncodeVector(vec); err == nil {
			meta, _ := json.Marshal(map[string]interface{}{"journal_entry_id": entryID})
			_ = j.db.Create(&models.Embedding{
				UserID:   userID,
				Type:     models.EmbeddingJournal,
				Content:  content,
				Vector:   enc,
				Metadata: string(meta),
			}).Error
		}
	}
}

// List returns the user's entries, newest first, paginated.
func (j *JournalController) List(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	page, pageSize := 1, 20
	if v := ctx.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := ctx.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}

	var total int64
	if err := j.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count journal entries")
		return
	}

	var entries []models.JournalEntry
	if err := j.db.Where("user_id = ?", userID).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load journal entries")
		return
	}

	utils.Success(ctx, gin.H{
		"items": entries,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// Get returns a single entry owned by the caller.
func (j *JournalController) Get(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var entry models.JournalEntry
	if err := j.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40420, "journal entry not found")
		return
	}
	utils.Success(ctx, entry)
}

// Update edits title, content, mood or tags of an owned entry.
func (j *JournalController) Update(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var entry models.JournalEntry
	if err := j.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40420, "journal entry not found")
		return
	}

	var req struct {
		Title   *string  `json:"title"`
		Content *string  `json:"content"`
		Mood    *string  `json:"mood"`
		Tags    []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	if req.Title != nil {
		entry.Title = utils.Sanitize(*req.Title)
	}
	if req.Content != nil {
		entry.Content = utils.Sanitize(*req.Content)
	}
	if req.Mood != nil {
		if *req.Mood != "" && !models.ValidMood(*req.Mood) {
			utils.Error(ctx, http.StatusBadRequest, 40011, "unknown mood value")
			return
		}
		entry.Mood = *req.Mood
	}
	if req.Tags != nil {
		if b, err := json.Marshal(req.Tags); err == nil {
			entry.Tags = string(b)
		}
	}

	if err := j.db.Save(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update journal entry")
		return
	}
	utils.Success(ctx, entry)
}

// Delete removes an owned entry.
func (j *JournalController) Delete(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	res := j.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).Delete(&models.JournalEntry{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to delete journal entry")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40420, "journal entry not found")
		return
	}
	utils.Success(ctx, gin.H{"message": "deleted"})
}

// Prompts suggests writing prompts tuned to the user's latest mood.
func (j *JournalController) Prompts(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	mood := models.MoodOkay
	var latest models.MoodLog
	if err := j.db.Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error; err == nil {
		mood = latest.Mood
	}

	prompts := j.ai.JournalPrompts(ctx.Request.Context(), mood)
	utils.Success(ctx, gin.H{"mood": mood, "prompts": prompts})
}
