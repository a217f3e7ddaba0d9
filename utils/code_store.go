package utils

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

const (
	emailCodeTTL      = 10 * time.Minute
	emailCodeCooldown = 60 * time.Second
)

type storedCode struct {
	code      string
	expiresAt time.Time
}

var (
	memCodes   = map[string]storedCode{}
	memCodesMu sync.Mutex
)

// GenerateVerificationCode returns a 6-digit numeric code.
func GenerateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failure is effectively fatal for codes; use a time-derived fallback
		return time.Now().UTC().Format("040506")
	}
	digits := n.Int64()
	code := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		code[i] = byte('0' + digits%10)
		digits /= 10
	}
	return string(code)
}

// SaveCode stores a verification code for a purpose+email pair.
// Prefers Redis; falls back to process memory.
func SaveCode(purpose, email, code string) {
	key := "email:code:" + purpose + ":" + email
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, key, code, emailCodeTTL).Err(); err == nil {
			return
		}
	}
	memCodesMu.Lock()
	memCodes[key] = storedCode{code: code, expiresAt: time.Now().Add(emailCodeTTL)}
	memCodesMu.Unlock()
}

// VerifyAndConsumeCode checks the code and deletes it on success so each code
// is single-use.
func VerifyAndConsumeCode(purpose, email, code string) bool {
	if code == "" {
		return false
	}
	key := "email:code:" + purpose + ":" + email
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		stored, err := rc.Get(ctx, key).Result()
		if err == nil {
			if stored != code {
				return false
			}
			_ = rc.Del(ctx, key).Err()
			return true
		}
	}
	memCodesMu.Lock()
	defer memCodesMu.Unlock()
	entry, ok := memCodes[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(memCodes, key)
		return false
	}
	if entry.code != code {
		return false
	}
	delete(memCodes, key)
	return true
}

var (
	memCooldowns   = map[string]time.Time{}
	memCooldownsMu sync.Mutex
)

// EmailCooldownTrySet enforces a per-address send cooldown. Returns false when
// a send happened too recently.
func EmailCooldownTrySet(purpose, email string) bool {
	key := "email:cooldown:" + purpose + ":" + email
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		ok, err := rc.SetNX(ctx, key, "1", emailCodeCooldown).Result()
		if err == nil {
			return ok
		}
	}
	memCooldownsMu.Lock()
	defer memCooldownsMu.Unlock()
	if until, ok := memCooldowns[key]; ok && time.Now().Before(until) {
		return false
	}
	memCooldowns[key] = time.Now().Add(emailCodeCooldown)
	return true
}
