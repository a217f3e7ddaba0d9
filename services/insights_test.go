package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/mindhaven/models"
)

func moodLog(mood, date string, triggers string) models.MoodLog {
	t, _ := time.Parse("2006-01-02", date)
	return models.MoodLog{Mood: mood, CreatedAt: t, Triggers: triggers}
}

func TestBuildMoodInsightsEmpty(t *testing.T) {
	insights := BuildMoodInsights(nil)
	assert.Equal(t, 0, insights.TotalLogs)
	assert.Empty(t, insights.TopTriggers)
	assert.Empty(t, insights.DailyAverages)
}

func TestBuildMoodInsightsAverages(t *testing.T) {
	logs := []models.MoodLog{
		moodLog(models.MoodGreat, "2026-03-09", ""),    // 5, Monday
		moodLog(models.MoodStruggling, "2026-03-09", ""), // 1, Monday
		moodLog(models.MoodGood, "2026-03-10", ""),     // 4, Tuesday
	}
	insights := BuildMoodInsights(logs)
	assert.Equal(t, 3, insights.TotalLogs)
	assert.InDelta(t, 3.33, insights.AverageMood, 0.01)

	require.Len(t, insights.DailyAverages, 2)
	assert.Equal(t, "2026-03-09", insights.DailyAverages[0].Date)
	assert.InDelta(t, 3.0, insights.DailyAverages[0].Average, 0.01)
	assert.Equal(t, "2026-03-10", insights.DailyAverages[1].Date)
	assert.InDelta(t, 4.0, insights.DailyAverages[1].Average, 0.01)

	var monday *WeekdayAverage
	for i := range insights.WeekdayAverages {
		if insights.WeekdayAverages[i].Weekday == "Monday" {
			monday = &insights.WeekdayAverages[i]
		}
	}
	require.NotNil(t, monday)
	assert.Equal(t, 2, monday.Count)
	assert.InDelta(t, 3.0, monday.Average, 0.01)
}

func TestBuildMoodInsightsTopTriggers(t *testing.T) {
	logs := []models.MoodLog{
		moodLog(models.MoodOkay, "2026-03-01", `["work","sleep"]`),
		moodLog(models.MoodOkay, "2026-03-02", `["work"]`),
		moodLog(models.MoodOkay, "2026-03-03", `["work","family"]`),
		moodLog(models.MoodOkay, "2026-03-04", `["sleep"]`),
		moodLog(models.MoodOkay, "2026-03-05", `["health"]`),
		moodLog(models.MoodOkay, "2026-03-06", `["money"]`),
		moodLog(models.MoodOkay, "2026-03-07", `["weather"]`),
	}
	insights := BuildMoodInsights(logs)
	require.True(t, len(insights.TopTriggers) <= 5)
	assert.Equal(t, "work", insights.TopTriggers[0].Trigger)
	assert.Equal(t, 3, insights.TopTriggers[0].Count)
	assert.Equal(t, "sleep", insights.TopTriggers[1].Trigger)
}

func TestBuildMoodInsightsIgnoresMalformedTriggers(t *testing.T) {
	logs := []models.MoodLog{
		moodLog(models.MoodOkay, "2026-03-01", `not json`),
		moodLog(models.MoodOkay, "2026-03-02", `["ok"]`),
	}
	insights := BuildMoodInsights(logs)
	require.Len(t, insights.TopTriggers, 1)
	assert.Equal(t, "ok", insights.TopTriggers[0].Trigger)
}
