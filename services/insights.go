package services

import (
	"encoding/json"
	"sort"

	"github.com/mindhaven/mindhaven/models"
)

// TriggerFrequency is one entry in the "most common triggers" ranking.
type TriggerFrequency struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

// WeekdayAverage is the mean mood value for one day of the week.
type WeekdayAverage struct {
	Weekday string  `json:"weekday"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// DailyMood is the mean mood value for a single calendar day, used by the
// heatmap view.
type DailyMood struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MoodInsights aggregates a window of mood logs for the insights dashboard.
type MoodInsights struct {
	TotalLogs       int                `json:"total_logs"`
	AverageMood     float64            `json:"average_mood"`
	TopTriggers     []TriggerFrequency `json:"top_triggers"`
	WeekdayAverages []WeekdayAverage   `json:"weekday_averages"`
	DailyAverages   []DailyMood        `json:"daily_averages"`
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// BuildMoodInsights computes trigger frequencies (top 5), per-weekday mood
// averages, and the per-day heatmap from a set of logs.
func BuildMoodInsights(logs []models.MoodLog) MoodInsights {
	insights := MoodInsights{TotalLogs: len(logs)}
	if len(logs) == 0 {
		return insights
	}

	triggerCounts := map[string]int{}
	weekdaySums := make([]int, 7)
	weekdayCounts := make([]int, 7)
	dailySums := map[string]int{}
	dailyCounts := map[string]int{}
	total := 0

	for _, log := range logs {
		v := models.MoodValue(log.Mood)
		total += v

		wd := int(log.CreatedAt.UTC().Weekday())
		weekdaySums[wd] += v
		weekdayCounts[wd]++

		day := DateKey(log.CreatedAt)
		dailySums[day] += v
		dailyCounts[day]++

		if log.Triggers != "" {
			var triggers []string
			if err := json.Unmarshal([]byte(log.Triggers), &triggers); err == nil {
				for _, t := range triggers {
					if t != "" {
						triggerCounts[t]++
					}
				}
			}
		}
	}

	insights.AverageMood = round2(float64(total) / float64(len(logs)))

	for t, c := range triggerCounts {
		insights.TopTriggers = append(insights.TopTriggers, TriggerFrequency{Trigger: t, Count: c})
	}
	sort.Slice(insights.TopTriggers, func(i, j int) bool {
		if insights.TopTriggers[i].Count != insights.TopTriggers[j].Count {
			return insights.TopTriggers[i].Count > insights.TopTriggers[j].Count
		}
		return insights.TopTriggers[i].Trigger < insights.TopTriggers[j].Trigger
	})
	if len(insights.TopTriggers) > 5 {
		insights.TopTriggers = insights.TopTriggers[:5]
	}

	for wd := 0; wd < 7; wd++ {
		if weekdayCounts[wd] == 0 {
			continue
		}
		insights.WeekdayAverages = append(insights.WeekdayAverages, WeekdayAverage{
			Weekday: weekdayNames[wd],
			Average: round2(float64(weekdaySums[wd]) / float64(weekdayCounts[wd])),
			Count:   weekdayCounts[wd],
		})
	}

	for day, sum := range dailySums {
		insights.DailyAverages = append(insights.DailyAverages, DailyMood{
			Date:    day,
			Average: round2(float64(sum) / float64(dailyCounts[day])),
			Count:   dailyCounts[day],
		})
	}
	sort.Slice(insights.DailyAverages, func(i, j int) bool {
		return insights.DailyAverages[i].Date < insights.DailyAverages[j].Date
	})

	return insights
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
