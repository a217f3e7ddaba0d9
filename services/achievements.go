package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindhaven/mindhaven/models"
	"github.com/mindhaven/mindhaven/utils"
)

// ActivityCounts holds the per-user totals count-type achievements compare
// against.
type ActivityCounts struct {
	Streak       int
	JournalCount int
	SessionCount int
	CheckInCount int
}

// ClassifyCountAchievement maps a count achievement to the counter it tracks.
// The structured Category field wins; legacy rows without one fall back to
// name/description keyword matching. Returns false when no counter applies,
// in which case the achievement can never unlock and should be flagged as a
// catalog misconfiguration.
func ClassifyCountAchievement(a models.Achievement) (string, bool) {
	switch a.Category {
	case models.CategoryJournal, models.CategorySession, models.CategoryCheckIn:
		return a.Category, true
	}

	text := strings.ToLower(a.Name + " " + a.Description)
	switch {
	case strings.Contains(text, "journal") || strings.Contains(text, "write"):
		return models.CategoryJournal, true
	case strings.Contains(text, "zen") || strings.Contains(text, "wellness") || strings.Contains(text, "session"):
		return models.CategorySession, true
	case strings.Contains(text, "first step") || strings.Contains(text, "check-in"):
		return models.CategoryCheckIn, true
	}
	return "", false
}

// Evaluate returns the IDs of locked achievements whose conditions the current
// counts satisfy. Pure; no I/O.
func Evaluate(catalog []models.Achievement, unlocked map[uint]bool, counts ActivityCounts, logger *zap.SugaredLogger) []uint {
	var newly []uint
	for _, a := range catalog {
		if unlocked[a.ID] {
			continue
		}
		switch a.ConditionType {
		case models.ConditionStreak:
			if counts.Streak >= a.ConditionValue {
				newly = append(newly, a.ID)
			}
		case models.ConditionCount:
			category, ok := ClassifyCountAchievement(a)
			if !ok {
				if logger != nil {
					logger.Warnf("achievement %d (%s) has no recognizable category; skipping", a.ID, a.Name)
				}
				continue
			}
			var current int
			switch category {
			case models.CategoryJournal:
				current = counts.JournalCount
			case models.CategorySession:
				current = counts.SessionCount
			case models.CategoryCheckIn:
				current = counts.CheckInCount
			}
			if current >= a.ConditionValue {
				newly = append(newly, a.ID)
			}
		}
	}
	return newly
}

// AchievementService runs the unlock pass for a user after activity changes.
type AchievementService struct {
	DB       *gorm.DB
	Notifier *MilestoneNotifier
	Logger   *zap.SugaredLogger
}

func NewAchievementService(db *gorm.DB, notifier *MilestoneNotifier, logger *zap.SugaredLogger) *AchievementService {
	return &AchievementService{DB: db, Notifier: notifier, Logger: logger}
}

const achievementCatalogCacheKey = "achievements:catalog"

// Catalog returns the full achievement list, cached for an hour.
func (s *AchievementService) Catalog() ([]models.Achievement, error) {
	var catalog []models.Achievement
	if utils.CacheGetJSON(achievementCatalogCacheKey, &catalog) && len(catalog) > 0 {
		return catalog, nil
	}
	if err := s.DB.Order("condition_value asc").Find(&catalog).Error; err != nil {
		return nil, err
	}
	utils.CacheSetJSON(achievementCatalogCacheKey, catalog, time.Hour)
	return catalog, nil
}

// CollectCounts gathers the user's activity totals and streak in one place.
func (s *AchievementService) CollectCounts(userID uint) (ActivityCounts, error) {
	var counts ActivityCounts

	var moodTimes []time.Time
	if err := s.DB.Model(&models.MoodLog{}).Where("user_id = ?", userID).
		Pluck("created_at", &moodTimes).Error; err != nil {
		return counts, err
	}
	var journalTimes []time.Time
	if err := s.DB.Model(&models.JournalEntry{}).Where("user_id = ?", userID).
		Pluck("created_at", &journalTimes).Error; err != nil {
		return counts, err
	}
	var sessionCount int64
	if err := s.DB.Model(&models.UserActivity{}).Where("user_id = ?", userID).
		Count(&sessionCount).Error; err != nil {
		return counts, err
	}

	activity := append(append([]time.Time{}, moodTimes...), journalTimes...)
	counts.Streak = CalculateStreak(activity, time.Now())
	counts.CheckInCount = len(moodTimes)
	counts.JournalCount = len(journalTimes)
	counts.SessionCount = int(sessionCount)
	return counts, nil
}

// Run evaluates and persists any newly earned achievements for the user, and
// returns them together with a milestone celebration if one fired. A read
// failure aborts the whole pass; unlocking from stale counts is worse than
// unlocking a little late.
func (s *AchievementService) Run(ctx context.Context, userID uint) ([]models.Achievement, *Celebration, error) {
	counts, err := s.CollectCounts(userID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warnf("achievement pass aborted user=%d err=%v", userID, err)
		}
		return nil, nil, err
	}

	catalog, err := s.Catalog()
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warnf("achievement pass aborted user=%d err=%v", userID, err)
		}
		return nil, nil, err
	}

	var rows []models.UserAchievement
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		if s.Logger != nil {
			s.Logger.Warnf("achievement pass aborted user=%d err=%v", userID, err)
		}
		return nil, nil, err
	}
	unlocked := make(map[uint]bool, len(rows))
	for _, r := range rows {
		unlocked[r.AchievementID] = true
	}

	newlyIDs := Evaluate(catalog, unlocked, counts, s.Logger)

	now := time.Now()
	var earned []models.Achievement
	for _, id := range newlyIDs {
		row := models.UserAchievement{UserID: userID, AchievementID: id, UnlockedAt: now}
		// Unique (user_id, achievement_id) index makes concurrent passes safe.
		res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			if s.Logger != nil {
				s.Logger.Errorf("achievement unlock failed user=%d achievement=%d err=%v", userID, id, res.Error)
			}
			continue
		}
		if res.RowsAffected == 0 {
			continue // another pass got there first
		}
		for _, a := range catalog {
			if a.ID == id {
				earned = append(earned, a)
				break
			}
		}
	}

	var celebration *Celebration
	if s.Notifier != nil {
		celebration = s.Notifier.Check(ctx, userID, counts.Streak, now)
	}
	return earned, celebration, nil
}
