package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/utils"
)

// DocumentController lets users store personal context documents (condition
// notes, therapy summaries) that the chat companion can retrieve from.
type DocumentController struct {
	db *gorm.DB
	ai *ai.Client
}

// NewDocumentController creates a DocumentController.
func NewDocumentController(db *gorm.DB, aiClient *ai.Client) *DocumentController {
	return &DocumentController{db: db, ai: aiClient}
}

// Upload stores a text document and its embedding. Documents are chunked so
// retrieval stays focused on relevant passages.
func (d *DocumentController) Upload(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required,max=255"`
		Content string `json:"content" binding:"required"`
		Type    string `json:"type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40080, "invalid request payload")
		return
	}
	if !d.ai.Available() {
		utils.Error(ctx, http.StatusServiceUnavailable, 50380, "document indexing is unavailable right now")
		return
	}

	docType := models.EmbeddingDocument
	if req.Type == models.EmbeddingCondition {
		docType = models.EmbeddingCondition
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	chunks := chunkText(content, 1500)
	meta, _ := json.Marshal(map[string]string{"title": strings.TrimSpace(req.Title)})

	created := 0
	for _, chunk := range chunks {
		vec, err := d.ai.Embed(ctx.Request.Context(), chunk)
		if err != nil {
			continue
		}
		enc, err := ai.EncodeVector(vec)
		if err != nil {
			continue
		}
		row := models.Embedding{
			UserID:   userID,
			Type:     docType,
			Content:  chunk,
			Vector:   enc,
			Metadata: string(meta),
		}
		if err := d.db.Create(&row).Error; err == nil {
			created++
		}
	}
	if created == 0 {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to index document")
		return
	}

	utils.Success(ctx, gin.H{"chunks": created, "title": req.Title})
}

// List returns the user's stored document fragments without vectors.
func (d *DocumentController) List(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var rows []models.Embedding
	if err := d.db.Select("id", "user_id", "type", "content", "metadata", "created_at").
		Where("user_id = ? AND type IN ?", userID,
			[]string{models.EmbeddingDocument, models.EmbeddingCondition}).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load documents")
		return
	}
	utils.Success(ctx, gin.H{"items": rows})
}

// Delete removes an owned document fragment.
func (d *DocumentController) Delete(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	res := d.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).Delete(&models.Embedding{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to delete document")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40480, "document not found")
		return
	}
	utils.Success(ctx, gin.H{"message": "deleted"})
}

// chunkText splits text on paragraph boundaries into pieces no longer than
// maxLen runes.
func chunkText(text string, maxLen int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len([]rune(text)) <= maxLen {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && len([]rune(current.String()+para)) > maxLen {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		// A single oversized paragraph gets hard-split.
		for len([]rune(para)) > maxLen {
			rs := []rune(para)
			chunks = append(chunks, string(rs[:maxLen]))
			para = string(rs[maxLen:])
		}
		current.WriteString(para)
		current.WriteString("\n\n")
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}
