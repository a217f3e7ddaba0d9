package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCelebrationStore struct {
	marked map[string]bool
	err    error
}

func (f *fakeCelebrationStore) TryMark(_ context.Context, userID uint, milestone int, day string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	key := fmt.Sprintf("%d:%d:%s", userID, milestone, day)
	if f.marked[key] {
		return false, nil
	}
	if f.marked == nil {
		f.marked = map[string]bool{}
	}
	f.marked[key] = true
	return true, nil
}

func TestMilestoneNotifierNonMilestoneIsSilent(t *testing.T) {
	n := &MilestoneNotifier{Store: &fakeCelebrationStore{}}
	assert.Nil(t, n.Check(context.Background(), 1, 5, time.Now()))
	assert.Nil(t, n.Check(context.Background(), 1, 0, time.Now()))
}

func TestMilestoneNotifierFiresOncePerDay(t *testing.T) {
	n := &MilestoneNotifier{Store: &fakeCelebrationStore{}}
	now := day("2026-03-10")

	c := n.Check(context.Background(), 1, 7, now)
	require.NotNil(t, c)
	assert.Equal(t, 7, c.Value)
	assert.Contains(t, c.Title, "7")

	assert.Nil(t, n.Check(context.Background(), 1, 7, now), "same day should dedup")
	assert.NotNil(t, n.Check(context.Background(), 1, 7, now.AddDate(0, 0, 1)), "next day fires again")
}

func TestMilestoneNotifierIndependentPerUser(t *testing.T) {
	n := &MilestoneNotifier{Store: &fakeCelebrationStore{}}
	now := day("2026-03-10")
	require.NotNil(t, n.Check(context.Background(), 1, 30, now))
	require.NotNil(t, n.Check(context.Background(), 2, 30, now))
}

func TestMilestoneNotifierFailsOpenOnStoreError(t *testing.T) {
	n := &MilestoneNotifier{Store: &fakeCelebrationStore{err: errors.New("redis down")}}
	c := n.Check(context.Background(), 1, 14, time.Now())
	require.NotNil(t, c, "store failure should not suppress the celebration")
	assert.Equal(t, 14, c.Value)
}
