package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalculateStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, CalculateStreak(nil, day("2026-03-10")))
}

func TestCalculateStreakTodayOnly(t *testing.T) {
	now := day("2026-03-10")
	assert.Equal(t, 1, CalculateStreak([]time.Time{now}, now))
}

func TestCalculateStreakYesterdayOnly(t *testing.T) {
	now := day("2026-03-10")
	activity := []time.Time{day("2026-03-09")}
	assert.Equal(t, 1, CalculateStreak(activity, now))
}

func TestCalculateStreakConsecutiveRun(t *testing.T) {
	now := day("2026-03-10")
	activity := []time.Time{day("2026-03-10"), day("2026-03-09"), day("2026-03-08")}
	assert.Equal(t, 3, CalculateStreak(activity, now))
}

func TestCalculateStreakGapBreaks(t *testing.T) {
	now := day("2026-03-10")
	activity := []time.Time{day("2026-03-10"), day("2026-03-08"), day("2026-03-07")}
	assert.Equal(t, 1, CalculateStreak(activity, now))
}

func TestCalculateStreakDeadWhenLastActivityTwoDaysAgo(t *testing.T) {
	now := day("2026-03-10")
	activity := []time.Time{day("2026-03-08"), day("2026-03-07"), day("2026-03-06")}
	assert.Equal(t, 0, CalculateStreak(activity, now))
}

func TestCalculateStreakDuplicateSameDayCountsOnce(t *testing.T) {
	now := day("2026-03-10")
	activity := []time.Time{
		day("2026-03-10").Add(8 * time.Hour),
		day("2026-03-10").Add(20 * time.Hour),
		day("2026-03-09").Add(3 * time.Hour),
	}
	assert.Equal(t, 2, CalculateStreak(activity, now))
}

func TestCalculateStreakAnchoredYesterdayWalksBack(t *testing.T) {
	now := day("2026-03-10")
	activity := []time.Time{day("2026-03-09"), day("2026-03-08"), day("2026-03-07"), day("2026-03-05")}
	assert.Equal(t, 3, CalculateStreak(activity, now))
}

func TestCalculateStreakUsesUTCDays(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2026-03-10 02:00 +09:00 is 2026-03-09 17:00 UTC
	activity := []time.Time{time.Date(2026, 3, 10, 2, 0, 0, 0, loc)}
	now := day("2026-03-10")
	assert.Equal(t, 1, CalculateStreak(activity, now))
}

func TestCalculateStreakDeterministic(t *testing.T) {
	now := day("2026-03-10")
	activity := []time.Time{day("2026-03-10"), day("2026-03-09"), day("2026-03-08")}
	first := CalculateStreak(activity, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CalculateStreak(activity, now))
	}
}

func TestIsMilestone(t *testing.T) {
	for _, m := range []int{3, 7, 14, 30, 50, 100, 365} {
		assert.True(t, IsMilestone(m), "expected %d to be a milestone", m)
	}
	for _, m := range []int{0, 1, 2, 4, 15, 99, 364, 366} {
		assert.False(t, IsMilestone(m), "expected %d not to be a milestone", m)
	}
}

func TestActiveDaysSortedDistinct(t *testing.T) {
	activity := []time.Time{
		day("2026-03-08"),
		day("2026-03-10"),
		day("2026-03-10").Add(5 * time.Hour),
		day("2026-03-09"),
	}
	assert.Equal(t, []string{"2026-03-10", "2026-03-09", "2026-03-08"}, ActiveDays(activity))
}
