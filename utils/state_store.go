package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const oauthStateTTL = 10 * time.Minute

var (
	memStates   = map[string]time.Time{}
	memStatesMu sync.Mutex
)

// NewOAuthState creates and persists a random state value for the OAuth flow.
func NewOAuthState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	state := hex.EncodeToString(buf)
	saveState(state)
	return state
}

func saveState(state string) {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, "oauth:state:"+state, "1", oauthStateTTL).Err(); err == nil {
			return
		}
	}
	memStatesMu.Lock()
	memStates[state] = time.Now().Add(oauthStateTTL)
	memStatesMu.Unlock()
}

// ConsumeOAuthState validates and deletes a state value. Each state is
// single-use to defend against CSRF on the callback.
func ConsumeOAuthState(state string) bool {
	if state == "" {
		return false
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := rc.Del(ctx, "oauth:state:"+state).Result()
		if err == nil {
			return n > 0
		}
	}
	memStatesMu.Lock()
	defer memStatesMu.Unlock()
	until, ok := memStates[state]
	delete(memStates, state)
	return ok && time.Now().Before(until)
}
