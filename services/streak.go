package services

import (
	"sort"
	"time"
)

// Milestones are the streak lengths that trigger a celebration.
var Milestones = []int{3, 7, 14, 30, 50, 100, 365}

// IsMilestone reports whether a streak length is a celebration milestone.
func IsMilestone(streak int) bool {
	for _, m := range Milestones {
		if m == streak {
			return true
		}
	}
	return false
}

// DateKey formats a timestamp as its UTC calendar day.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// CalculateStreak counts consecutive active days ending today or yesterday.
// Timestamps from any activity source (check-ins, journal entries, sessions)
// are collapsed to UTC calendar days; duplicate days count once. A streak
// anchored on yesterday is still alive, so missing today does not reset it.
// "now" is injected for testability.
func CalculateStreak(activity []time.Time, now time.Time) int {
	if len(activity) == 0 {
		return 0
	}

	days := make(map[string]struct{}, len(activity))
	for _, t := range activity {
		days[DateKey(t)] = struct{}{}
	}

	today := now.UTC().Truncate(24 * time.Hour)
	anchor := today
	if _, ok := days[DateKey(anchor)]; !ok {
		anchor = today.AddDate(0, 0, -1)
		if _, ok := days[DateKey(anchor)]; !ok {
			return 0
		}
	}

	streak := 0
	for d := anchor; ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[DateKey(d)]; !ok {
			break
		}
		streak++
	}
	return streak
}

// ActiveDays returns the sorted distinct UTC days present in the activity set,
// most recent first. Feeds the streak calendar view.
func ActiveDays(activity []time.Time) []string {
	seen := make(map[string]struct{}, len(activity))
	for _, t := range activity {
		seen[DateKey(t)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
