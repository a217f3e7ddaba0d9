package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindhaven/mindhaven/models"
)

func TestClassifyCountAchievementStructuredCategoryWins(t *testing.T) {
	a := models.Achievement{Name: "Zen Writer", Category: models.CategoryJournal}
	cat, ok := ClassifyCountAchievement(a)
	assert.True(t, ok)
	assert.Equal(t, models.CategoryJournal, cat, "category field beats keyword hints in the name")
}

func TestClassifyCountAchievementKeywordFallback(t *testing.T) {
	cases := []struct {
		name, desc, want string
	}{
		{"Dedicated Writer", "Write 5 journal entries", models.CategoryJournal},
		{"Zen Master", "Complete 10 wellness sessions", models.CategorySession},
		{"First Step", "Complete your first check-in", models.CategoryCheckIn},
	}
	for _, tc := range cases {
		cat, ok := ClassifyCountAchievement(models.Achievement{Name: tc.name, Description: tc.desc})
		assert.True(t, ok, tc.name)
		assert.Equal(t, tc.want, cat, tc.name)
	}
}

func TestClassifyCountAchievementUnrecognized(t *testing.T) {
	_, ok := ClassifyCountAchievement(models.Achievement{Name: "Mystery Badge", Description: "???"})
	assert.False(t, ok)
}

func TestEvaluateStreakCondition(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 1, Name: "Hot Streak", ConditionType: models.ConditionStreak, ConditionValue: 3},
		{ID: 2, Name: "On Fire", ConditionType: models.ConditionStreak, ConditionValue: 7},
	}
	ids := Evaluate(catalog, map[uint]bool{}, ActivityCounts{Streak: 5}, nil)
	assert.Equal(t, []uint{1}, ids)
}

func TestEvaluateCountConditions(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 1, Name: "Dedicated Writer", Description: "Write 5 journal entries", ConditionType: models.ConditionCount, ConditionValue: 5},
		{ID: 2, Name: "Zen Beginner", Category: models.CategorySession, ConditionType: models.ConditionCount, ConditionValue: 3},
		{ID: 3, Name: "First Step", Description: "Complete your first check-in", ConditionType: models.ConditionCount, ConditionValue: 1},
	}
	counts := ActivityCounts{JournalCount: 5, SessionCount: 2, CheckInCount: 1}
	ids := Evaluate(catalog, map[uint]bool{}, counts, nil)
	assert.Equal(t, []uint{1, 3}, ids)
}

func TestEvaluateSkipsAlreadyUnlocked(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 1, ConditionType: models.ConditionStreak, ConditionValue: 3},
	}
	ids := Evaluate(catalog, map[uint]bool{1: true}, ActivityCounts{Streak: 10}, nil)
	assert.Empty(t, ids)
}

func TestEvaluateUnclassifiedNeverUnlocks(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 9, Name: "Mystery Badge", ConditionType: models.ConditionCount, ConditionValue: 1},
	}
	counts := ActivityCounts{JournalCount: 100, SessionCount: 100, CheckInCount: 100}
	assert.Empty(t, Evaluate(catalog, map[uint]bool{}, counts, nil))
}

func TestEvaluateMonotonicWithCounts(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 1, Category: models.CategoryJournal, ConditionType: models.ConditionCount, ConditionValue: 5},
	}
	low := Evaluate(catalog, map[uint]bool{}, ActivityCounts{JournalCount: 4}, nil)
	exact := Evaluate(catalog, map[uint]bool{}, ActivityCounts{JournalCount: 5}, nil)
	high := Evaluate(catalog, map[uint]bool{}, ActivityCounts{JournalCount: 50}, nil)
	assert.Empty(t, low)
	assert.Equal(t, []uint{1}, exact)
	assert.Equal(t, []uint{1}, high)
}
