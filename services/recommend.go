package services

import (
	"math/rand"

	"github.com/mindhaven/mindhaven/models"
)

// PreferredSessionType maps the user's latest mood to the session type most
// likely to help: low moods get grounding breathing work, high moods get
// meditation to sustain the state, the middle gets a body scan.
func PreferredSessionType(moodValue int) string {
	switch {
	case moodValue <= 2:
		return models.SessionBreathing
	case moodValue >= 4:
		return models.SessionMeditation
	default:
		return models.SessionBodyScan
	}
}

// RecommendSessions picks up to two sessions of the preferred type plus one
// from another type for variety.
func RecommendSessions(catalog []models.WellnessSession, moodValue int) []models.WellnessSession {
	if len(catalog) == 0 {
		return nil
	}
	preferred := PreferredSessionType(moodValue)

	var matching, others []models.WellnessSession
	for _, s := range catalog {
		if s.Type == preferred {
			matching = append(matching, s)
		} else {
			others = append(others, s)
		}
	}

	var out []models.WellnessSession
	for i := 0; i < len(matching) && i < 2; i++ {
		out = append(out, matching[i])
	}
	if len(others) > 0 {
		out = append(out, others[rand.Intn(len(others))])
	}
	if len(out) == 0 {
		// no preferred matches at all; fall back to whatever exists
		for i := 0; i < len(catalog) && i < 3; i++ {
			out = append(out, catalog[i])
		}
	}
	return out
}
