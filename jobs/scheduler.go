package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mindhaven/mindhaven/ai"
	"github.com/mindhaven/mindhaven/config"
	"github.com/mindhaven/mindhaven/services"
)

// Scheduler runs periodic background jobs, currently the nightly persona
// refresh for recently active users.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.SugaredLogger
}

// Start registers and starts all jobs. Returns nil when no jobs are
// configured.
func Start(db *gorm.DB, aiClient *ai.Client, logger *zap.SugaredLogger) *Scheduler {
	cfg := config.Get()
	if cfg.PersonaRefreshCron == "" {
		return nil
	}

	c := cron.New()
	persona := services.NewPersonaService(db, aiClient, logger)

	_, err := c.AddFunc(cfg.PersonaRefreshCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		persona.RefreshRecentlyActive(ctx)
	})
	if err != nil {
		if logger != nil {
			logger.Errorf("invalid persona refresh cron %q: %v", cfg.PersonaRefreshCron, err)
		}
		return nil
	}

	c.Start()
	if logger != nil {
		logger.Infof("scheduler started, persona refresh at %q", cfg.PersonaRefreshCron)
	}
	return &Scheduler{cron: c, logger: logger}
}

// Stop halts the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
