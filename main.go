package main

import (
	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/config"
	"github.com/mindhaven/mindhaven/jobs"
	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/routes"
	"github.com/mindhaven/mindhaven/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.MoodLog{},
		&models.JournalEntry{},
		&models.WellnessSession{},
		&models.UserActivity{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.ChatSession{},
		&models.ChatMessage{},
		&models.Embedding{},
	)

	if err := models.SeedDefaults(db); err != nil {
		utils.Sugar.Warnf("seeding default catalogs failed: %v", err)
	}

	r := routes.SetupRouter(db)

	scheduler := jobs.Start(db, ai.Default(), utils.Sugar)
	defer scheduler.Stop()

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.RunGraceServer(r, ":"+cfg.AppPort); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
