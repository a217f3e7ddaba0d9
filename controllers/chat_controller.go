package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/utils"
)

const chatFallbackReply = "I'm here with you. I'm having trouble responding right now, but your message was saved. Take a breath, and feel free to try again in a moment."

// ChatController handles AI companion chat sessions and messages.
type ChatController struct {
	db *gorm.DB
	ai *ai.Client
}

// NewChatController creates a ChatController.
func NewChatController(db *gorm.DB, aiClient *ai.Client) *ChatController {
	return &ChatController{db: db, ai: aiClient}
}

// ListSessions returns the user's chat sessions, most recently active first.
// Archived sessions are excluded unless ?archived=true.
func (c *ChatController) ListSessions(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	q := c.db.Where("user_id = ?", userID)
	if ctx.Query("archived") == "true" {
		q = q.Where("is_archived = ?", true)
	} else {
		q = q.Where("is_archived = ?", false)
	}

	var sessions []models.ChatSession
	if err := q.Order("updated_at DESC").Find(&sessions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load sessions")
		return
	}
	utils.Success(ctx, gin.H{"items": sessions})
}

// CreateSession starts a new chat session.
func (c *ChatController) CreateSession(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	_ = ctx.ShouldBindJSON(&req)

	session := models.ChatSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  strings.TrimSpace(req.Title),
	}
	if session.Title == "" {
		session.Title = "New conversation"
	}
	if err := c.db.Create(&session).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to create session")
		return
	}
	utils.Success(ctx, session)
}

// GetSession returns a session with its messages in chronological order.
func (c *ChatController) GetSession(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	session, ok := c.ownedSession(ctx, userID)
	if !ok {
		return
	}

	var messages []models.ChatMessage
	if err := c.db.Where("session_id = ?", session.ID).Order("created_at ASC").Find(&messages).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to load messages")
		return
	}
	utils.Success(ctx, gin.H{"session": session, "messages": messages})
}

// UpdateSession edits the title or tags of a session.
func (c *ChatController) UpdateSession(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	session, ok := c.ownedSession(ctx, userID)
	if !ok {
		return
	}

	var req struct {
		Title    *string  `json:"title"`
		Tags     []string `json:"tags"`
		Archived *bool    `json:"archived"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		session.Title = strings.TrimSpace(*req.Title)
	}
	if req.Tags != nil {
		if b, err := json.Marshal(req.Tags); err == nil {
			session.Tags = string(b)
		}
	}
	if req.Archived != nil {
		session.IsArchived = *req.Archived
	}

	if err := c.db.Save(&session).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to update session")
		return
	}
	utils.Success(ctx, session)
}

// DeleteSession removes a session and its messages.
func (c *ChatController) DeleteSession(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	session, ok := c.ownedSession(ctx, userID)
	if !ok {
		return
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to delete session")
		return
	}
	utils.Success(ctx, gin.H{"message": "deleted"})
}

// GenerateTags asks the model for topic tags from the session's recent
// history and stores them on the session.
func (c *ChatController) GenerateTags(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	session, ok := c.ownedSession(ctx, userID)
	if !ok {
		return
	}

	var history []models.ChatMessage
	if err := c.db.Where("session_id = ? AND sender = ?", session.ID, models.SenderUser).
		Order("created_at DESC").Limit(10).Find(&history).Error; err != nil || len(history) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40072, "no messages to tag")
		return
	}

	var parts []string
	for i := len(history) - 1; i >= 0; i-- {
		parts = append(parts, history[i].Content)
	}
	tags := c.ai.JournalTags(ctx.Request.Context(), strings.Join(parts, "\n"))

	if b, err := json.Marshal(tags); err == nil {
		session.Tags = string(b)
		if err := c.db.Save(&session).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to update session")
			return
		}
	}
	utils.Success(ctx, gin.H{"session": session, "tags": tags})
}

// PinMessage toggles the pinned flag on a message in an owned session.
func (c *ChatController) PinMessage(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var msg models.ChatMessage
	if err := c.db.Where("id = ? AND user_id = ?", ctx.Param("messageId"), userID).First(&msg).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40470, "message not found")
		return
	}
	msg.IsPinned = !msg.IsPinned
	if err := c.db.Save(&msg).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50075, "failed to update message")
		return
	}
	utils.Success(ctx, msg)
}

// SendMessage appends a user message, asks the model for a reply using the
// user's persona and related personal context, and persists both sides.
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	session, ok := c.ownedSession(ctx, userID)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40071, "invalid request payload")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40071, "message is empty")
		return
	}

	userMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    userID,
		Sender:    models.SenderUser,
		Content:   content,
	}
	if err := c.db.Create(&userMsg).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50076, "failed to save message")
		return
	}

	reply := c.generateReply(ctx.Request.Context(), userID, session.ID, content)

	aiMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    userID,
		Sender:    models.SenderAI,
		Content:   reply,
	}
	if err := c.db.Create(&aiMsg).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50077, "failed to save reply")
		return
	}

	// First exchange titles the session; later ones just bump activity.
	var msgCount int64
	_ = c.db.Model(&models.ChatMessage{}).Where("session_id = ?", session.ID).Count(&msgCount).Error
	updates := map[string]interface{}{"updated_at": time.Now()}
	if msgCount <= 2 && (session.Title == "" || session.Title == "New conversation") {
		updates["title"] = c.ai.ChatTitle(ctx.Request.Context(), content)
	}
	_ = c.db.Model(&session).Updates(updates).Error

	go c.embedMessage(userID, userMsg.ID, content)

	utils.Success(ctx, gin.H{"message": userMsg, "reply": aiMsg})
}

// generateReply builds the prompt from persona, retrieved personal context and
// recent history, then calls the model. Any failure degrades to a static
// supportive reply so the conversation never errors out.
func (c *ChatController) generateReply(ctx context.Context, userID uint, sessionID, content string) string {
	if !c.ai.Available() {
		return chatFallbackReply
	}

	var user models.User
	_ = c.db.First(&user, userID).Error

	var sb strings.Builder
	sb.WriteString("You are a warm, supportive mental wellness companion. Be empathetic and concise. You are not a therapist and must suggest professional help for anything serious.\n\n")

	if user.PersonaSummary != "" {
		sb.WriteString("About this user: " + user.PersonaSummary + "\n\n")
	}

	if relevant := c.relevantContext(ctx, user, content); len(relevant) > 0 {
		sb.WriteString("Context from the user's own writing that may be relevant:\n")
		for _, r := range relevant {
			sb.WriteString("- " + r + "\n")
		}
		sb.WriteString("\n")
	}

	var history []models.ChatMessage
	_ = c.db.Where("session_id = ?", sessionID).Order("created_at DESC").Limit(10).Find(&history).Error
	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for i := len(history) - 1; i >= 0; i-- {
			role := "User"
			if history[i].Sender == models.SenderAI {
				role = "Companion"
			}
			sb.WriteString(fmt.Sprintf("%s: %s\n", role, history[i].Content))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("User: " + content + "\nCompanion:")

	reply, err := c.ai.Generate(ctx, sb.String())
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("chat generation failed user=%d err=%v", userID, err)
		}
		return chatFallbackReply
	}
	return strings.TrimSpace(reply)
}

// relevantContext retrieves the user's most similar stored fragments, honoring
// their sharing preferences per source type.
func (c *ChatController) relevantContext(ctx context.Context, user models.User, query string) []string {
	queryVec, err := c.ai.Embed(ctx, query)
	if err != nil {
		return nil
	}

	allowed := []string{models.EmbeddingDocument, models.EmbeddingCondition}
	if user.ShareJournal {
		allowed = append(allowed, models.EmbeddingJournal)
	}
	if user.ShareActivities {
		allowed = append(allowed, models.EmbeddingChat)
	}

	var rows []models.Embedding
	if err := c.db.Where("user_id = ? AND type IN ?", user.ID, allowed).
		Order("created_at DESC").Limit(200).Find(&rows).Error; err != nil {
		return nil
	}

	vectors := make([][]float32, len(rows))
	for i, row := range rows {
		if v, err := ai.DecodeVector(row.Vector); err == nil {
			vectors[i] = v
		}
	}

	ranked := ai.RankBySimilarity(queryVec, vectors, 3, 0.5)
	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		text := rows[s.Index].Content
		if len(text) > 500 {
			text = text[:500]
		}
		out = append(out, text)
	}
	return out
}

func (c *ChatController) embedMessage(userID uint, messageID, content string) {
	defer func() {
		if r := recover(); r != nil && utils.Sugar != nil {
			utils.Sugar.Errorf("chat embed panic msg=%s: %v", messageID, r)
		}
	}()
	bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vec, err := c.ai.Embed(bg, content)
	if err != nil {
		return
	}
	enc, err := ai.EncodeVector(vec)
	if err != nil {
		return
	}
	meta, _ := json.Marshal(map[string]string{"message_id": messageID})
	_ = c.db.Create(&models.Embedding{
		UserID:   userID,
		Type:     models.EmbeddingChat,
		Content:  content,
		Vector:   enc,
		Metadata: string(meta),
	}).Error
}

func (c *ChatController) ownedSession(ctx *gin.Context, userID uint) (models.ChatSession, bool) {
	var session models.ChatSession
	if err := c.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&session).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40471, "session not found")
		return session, false
	}
	return session, true
}
