package utils

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/mindhaven/mindhaven/config"
)

// Registration abuse controls: per-IP cooldown between signups, a daily cap,
// and a temp ban after repeated failed attempts. Redis-backed with an
// in-memory fallback so a Redis outage degrades instead of breaking signup.

type memAbuseState struct {
	cooldownUntil time.Time
	dayKey        string
	dayCount      int
	failCount     int
	failWindowEnd time.Time
	banUntil      time.Time
}

var (
	memAbuse   = map[string]*memAbuseState{}
	memAbuseMu sync.Mutex
)

func abuseCfg() (cooldown time.Duration, dailyLimit int, failLimit int, banFor time.Duration) {
	cfg := config.Get()
	cooldown = time.Duration(cfg.RegisterAttemptCooldownSec) * time.Second
	dailyLimit = cfg.RegisterMaxPerIPPerDay
	failLimit = cfg.RegisterFailedMaxPerIPPerHour
	banFor = time.Duration(cfg.RegisterTempBanMinutes) * time.Minute
	return
}

// RegisterAllowed reports whether an IP may attempt registration right now.
// Returns false plus a human-readable reason when blocked.
func RegisterAllowed(ip string) (bool, string) {
	_, dailyLimit, _, _ := abuseCfg()
	today := time.Now().UTC().Format("2006-01-02")

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, "register:ban:"+ip).Result(); err == nil && n > 0 {
			return false, "too many failed attempts, try again later"
		}
		if n, err := rc.Exists(ctx, "register:cooldown:"+ip).Result(); err == nil && n > 0 {
			return false, "please wait before registering again"
		}
		if v, err := rc.Get(ctx, "register:daily:"+today+":"+ip).Result(); err == nil {
			if count, _ := strconv.Atoi(v); count >= dailyLimit {
				return false, "daily registration limit reached"
			}
		}
		return true, ""
	}

	memAbuseMu.Lock()
	defer memAbuseMu.Unlock()
	st := memAbuse[ip]
	if st == nil {
		return true, ""
	}
	now := time.Now()
	if now.Before(st.banUntil) {
		return false, "too many failed attempts, try again later"
	}
	if now.Before(st.cooldownUntil) {
		return false, "please wait before registering again"
	}
	if st.dayKey == today && st.dayCount >= dailyLimit {
		return false, "daily registration limit reached"
	}
	return true, ""
}

// RecordRegisterSuccess starts the cooldown and bumps the daily counter.
func RecordRegisterSuccess(ip string) {
	cooldown, _, _, _ := abuseCfg()
	today := time.Now().UTC().Format("2006-01-02")

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		pipe := rc.Pipeline()
		pipe.Set(ctx, "register:cooldown:"+ip, "1", cooldown)
		dailyKey := "register:daily:" + today + ":" + ip
		pipe.Incr(ctx, dailyKey)
		pipe.Expire(ctx, dailyKey, 48*time.Hour)
		if _, err := pipe.Exec(ctx); err == nil {
			return
		}
	}

	memAbuseMu.Lock()
	defer memAbuseMu.Unlock()
	st := memAbuse[ip]
	if st == nil {
		st = &memAbuseState{}
		memAbuse[ip] = st
	}
	st.cooldownUntil = time.Now().Add(cooldown)
	if st.dayKey != today {
		st.dayKey = today
		st.dayCount = 0
	}
	st.dayCount++
}

// RecordRegisterFailure counts a failed attempt; crossing the limit within the
// window bans the IP for the configured duration.
func RecordRegisterFailure(ip string) {
	_, _, failLimit, banFor := abuseCfg()

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		failKey := "register:fail:" + ip
		n, err := rc.Incr(ctx, failKey).Result()
		if err == nil {
			_ = rc.Expire(ctx, failKey, time.Hour).Err()
			if int(n) >= failLimit {
				_ = rc.Set(ctx, "register:ban:"+ip, "1", banFor).Err()
				_ = rc.Del(ctx, failKey).Err()
				if Sugar != nil {
					Sugar.Warnf("registration temp-banned ip=%s fails=%d", ip, n)
				}
			}
			return
		}
	}

	memAbuseMu.Lock()
	defer memAbuseMu.Unlock()
	st := memAbuse[ip]
	if st == nil {
		st = &memAbuseState{}
		memAbuse[ip] = st
	}
	now := time.Now()
	if now.After(st.failWindowEnd) {
		st.failCount = 0
		st.failWindowEnd = now.Add(time.Hour)
	}
	st.failCount++
	if st.failCount >= failLimit {
		st.banUntil = now.Add(banFor)
		st.failCount = 0
		if Sugar != nil {
			Sugar.Warnf("registration temp-banned ip=%s", ip)
		}
	}
}
