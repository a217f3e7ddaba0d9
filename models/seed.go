package models

import "gorm.io/gorm"

// SeedDefaults inserts the built-in achievement and wellness catalogs when the
// tables are empty. Safe to call on every boot.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		achievements := []Achievement{
			{Name: "First Step", Description: "Complete your first check-in", Icon: "🌱", Category: CategoryCheckIn, ConditionType: ConditionCount, ConditionValue: 1},
			{Name: "Getting Started", Description: "Keep a 3-day streak", Icon: "✨", Category: CategoryStreak, ConditionType: ConditionStreak, ConditionValue: 3},
			{Name: "One Week Strong", Description: "Keep a 7-day streak", Icon: "🔥", Category: CategoryStreak, ConditionType: ConditionStreak, ConditionValue: 7},
			{Name: "Habit Builder", Description: "Keep a 30-day streak", Icon: "🏆", Category: CategoryStreak, ConditionType: ConditionStreak, ConditionValue: 30},
			{Name: "Dedicated Writer", Description: "Write 5 journal entries", Icon: "📝", Category: CategoryJournal, ConditionType: ConditionCount, ConditionValue: 5},
			{Name: "Prolific Author", Description: "Write 25 journal entries", Icon: "📚", Category: CategoryJournal, ConditionType: ConditionCount, ConditionValue: 25},
			{Name: "Zen Beginner", Description: "Complete 3 wellness sessions", Icon: "🧘", Category: CategorySession, ConditionType: ConditionCount, ConditionValue: 3},
			{Name: "Zen Master", Description: "Complete 20 wellness sessions", Icon: "☯️", Category: CategorySession, ConditionType: ConditionCount, ConditionValue: 20},
			{Name: "Consistent Soul", Description: "Check in 30 times", Icon: "💙", Category: CategoryCheckIn, ConditionType: ConditionCount, ConditionValue: 30},
		}
		if err := db.Create(&achievements).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&WellnessSession{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		sessions := []WellnessSession{
			{Title: "Morning Calm", Description: "A gentle meditation to start the day", Type: SessionMeditation, DurationMinutes: 10},
			{Title: "Deep Focus", Description: "Meditation for concentration", Type: SessionMeditation, DurationMinutes: 15},
			{Title: "Box Breathing", Description: "Four-count breathing to settle the nervous system", Type: SessionBreathing, DurationMinutes: 5},
			{Title: "4-7-8 Breath", Description: "A calming breath pattern for anxious moments", Type: SessionBreathing, DurationMinutes: 8},
			{Title: "Full Body Scan", Description: "Progressive relaxation from head to toe", Type: SessionBodyScan, DurationMinutes: 20},
			{Title: "Rain on Leaves", Description: "Ambient soundscape for rest", Type: SessionSound, DurationMinutes: 30},
		}
		if err := db.Create(&sessions).Error; err != nil {
			return err
		}
	}
	return nil
}
