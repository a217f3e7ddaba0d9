package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Celebration is the payload shown to a user when a streak milestone is hit.
type Celebration struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Value   int    `json:"value"`
}

// CelebrationStore records that a milestone was celebrated so the same
// milestone is announced at most once per calendar day.
type CelebrationStore interface {
	// TryMark returns true when this (user, milestone, day) has not been
	// celebrated yet and atomically marks it.
	TryMark(ctx context.Context, userID uint, milestone int, day string) (bool, error)
}

// RedisCelebrationStore implements CelebrationStore on Redis SETNX with a TTL
// so dedup markers self-expire.
type RedisCelebrationStore struct {
	Client *redis.Client
}

func (s *RedisCelebrationStore) TryMark(ctx context.Context, userID uint, milestone int, day string) (bool, error) {
	key := fmt.Sprintf("streak:celebrated:%d:%d:%s", userID, milestone, day)
	return s.Client.SetNX(ctx, key, "1", 48*time.Hour).Result()
}

// MilestoneNotifier decides whether to emit a celebration for a streak value.
type MilestoneNotifier struct {
	Store  CelebrationStore
	Logger *zap.SugaredLogger
}

// Check returns a celebration when the streak sits exactly on a milestone and
// it has not been celebrated for this user today. A store failure fails open:
// a duplicate celebration is more acceptable than a missed one.
func (n *MilestoneNotifier) Check(ctx context.Context, userID uint, streak int, now time.Time) *Celebration {
	if !IsMilestone(streak) {
		return nil
	}
	fresh, err := n.Store.TryMark(ctx, userID, streak, DateKey(now))
	if err != nil {
		if n.Logger != nil {
			n.Logger.Warnf("celebration dedup unavailable user=%d milestone=%d err=%v", userID, streak, err)
		}
		fresh = true
	}
	if !fresh {
		return nil
	}
	return &Celebration{
		Title:   fmt.Sprintf("%d-Day Streak!", streak),
		Message: celebrationMessage(streak),
		Value:   streak,
	}
}

func celebrationMessage(streak int) string {
	switch {
	case streak >= 365:
		return "A full year of showing up for yourself. Extraordinary."
	case streak >= 100:
		return "100+ days of consistent self-care. You have built a real habit."
	case streak >= 30:
		return "A whole month of daily check-ins. Keep going!"
	case streak >= 7:
		return "One week strong. Your consistency is paying off."
	default:
		return "You're building momentum. Every day counts."
	}
}
