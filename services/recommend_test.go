package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/mindhaven/models"
)

func TestPreferredSessionType(t *testing.T) {
	assert.Equal(t, models.SessionBreathing, PreferredSessionType(1))
	assert.Equal(t, models.SessionBreathing, PreferredSessionType(2))
	assert.Equal(t, models.SessionBodyScan, PreferredSessionType(3))
	assert.Equal(t, models.SessionMeditation, PreferredSessionType(4))
	assert.Equal(t, models.SessionMeditation, PreferredSessionType(5))
}

func TestRecommendSessionsPrefersMatchingType(t *testing.T) {
	catalog := []models.WellnessSession{
		{ID: 1, Type: models.SessionBreathing},
		{ID: 2, Type: models.SessionBreathing},
		{ID: 3, Type: models.SessionBreathing},
		{ID: 4, Type: models.SessionMeditation},
	}
	out := RecommendSessions(catalog, 1)
	require.Len(t, out, 3)
	assert.Equal(t, models.SessionBreathing, out[0].Type)
	assert.Equal(t, models.SessionBreathing, out[1].Type)
	assert.Equal(t, models.SessionMeditation, out[2].Type, "third pick comes from another type")
}

func TestRecommendSessionsEmptyCatalog(t *testing.T) {
	assert.Nil(t, RecommendSessions(nil, 3))
}

func TestRecommendSessionsNoPreferredMatches(t *testing.T) {
	catalog := []models.WellnessSession{
		{ID: 1, Type: models.SessionSound},
		{ID: 2, Type: models.SessionSound},
	}
	out := RecommendSessions(catalog, 1)
	require.NotEmpty(t, out)
}
