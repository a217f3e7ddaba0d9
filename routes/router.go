package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/config"
	"github.com/mindhaven/mindhaven/controllers"
	"github.com/mindhaven/mindhaven/middleware"
	"github.com/mindhaven/mindhaven/services"
	"github.com/mindhaven/mindhaven/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	aiClient := ai.Default()
	notifier := &services.MilestoneNotifier{
		Store:  &services.RedisCelebrationStore{Client: utils.GetRedis()},
		Logger: utils.Sugar,
	}
	achievementSvc := services.NewAchievementService(db, notifier, utils.Sugar)
	personaSvc := services.NewPersonaService(db, aiClient, utils.Sugar)

	authController := controllers.NewAuthController(db)
	moodController := controllers.NewMoodController(db, achievementSvc)
	journalController := controllers.NewJournalController(db, aiClient, achievementSvc)
	wellnessController := controllers.NewWellnessController(db, achievementSvc)
	chatController := controllers.NewChatController(db, aiClient)
	achievementController := controllers.NewAchievementController(db, achievementSvc)
	insightsController := controllers.NewInsightsController(db, aiClient, personaSvc)
	documentController := controllers.NewDocumentController(db, aiClient)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/send-email-code", authController.SendEmailCode)
	authGroup.POST("/forgot-password", authController.ForgotPassword)
	authGroup.POST("/reset-password", authController.ResetPassword)
	authGroup.GET("/captcha", authController.Captcha)
	authGroup.POST("/captcha/verify", authController.CaptchaVerify)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public endpoints
	api.GET("/stats", insightsController.PublicStats)
	api.GET("/wellness/sessions", wellnessController.ListSessions)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/mood/check-in", moodController.CheckIn)
	protected.GET("/mood/today", moodController.Today)
	protected.GET("/mood/logs", moodController.List)

	protected.POST("/journal", journalController.Create)
	protected.GET("/journal", journalController.List)
	protected.GET("/journal/prompts", journalController.Prompts)
	protected.GET("/journal/:id", journalController.Get)
	protected.PUT("/journal/:id", journalController.Update)
	protected.DELETE("/journal/:id", journalController.Delete)

	protected.POST("/wellness/complete", wellnessController.Complete)
	protected.GET("/wellness/history", wellnessController.History)
	protected.GET("/wellness/recommendations", wellnessController.Recommendations)

	protected.GET("/chat/sessions", chatController.ListSessions)
	protected.POST("/chat/sessions", chatController.CreateSession)
	protected.GET("/chat/sessions/:id", chatController.GetSession)
	protected.PATCH("/chat/sessions/:id", chatController.UpdateSession)
	protected.DELETE("/chat/sessions/:id", chatController.DeleteSession)
	protected.POST("/chat/sessions/:id/messages", chatController.SendMessage)
	protected.POST("/chat/sessions/:id/tags", chatController.GenerateTags)
	protected.POST("/chat/messages/:messageId/pin", chatController.PinMessage)

	protected.GET("/achievements", achievementController.List)
	protected.POST("/achievements/refresh", achievementController.Refresh)
	protected.GET("/streak", achievementController.Streak)

	protected.GET("/insights/mood", insightsController.Mood)
	protected.GET("/insights/journal/weekly", insightsController.WeeklyJournal)
	protected.POST("/insights/persona/refresh", insightsController.RefreshPersona)

	protected.POST("/documents", documentController.Upload)
	protected.GET("/documents", documentController.List)
	protected.DELETE("/documents/:id", documentController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
