package utils

import (
	"context"
	"time"

	"github.com/mojocn/base64Captcha"
)

const captchaTTL = 5 * time.Minute

// redisCaptchaStore persists captcha answers in Redis so captcha verification
// survives restarts and works across replicas. Falls back to the library's
// in-memory store when Redis is unavailable.
type redisCaptchaStore struct {
	fallback base64Captcha.Store
}

func newCaptchaStore() base64Captcha.Store {
	return &redisCaptchaStore{
		fallback: base64Captcha.NewMemoryStore(base64Captcha.GCLimitNumber, captchaTTL),
	}
}

func (s *redisCaptchaStore) Set(id string, value string) error {
	rc := GetRedis()
	if rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, "captcha:"+id, value, captchaTTL).Err(); err == nil {
			return nil
		}
	}
	return s.fallback.Set(id, value)
}

func (s *redisCaptchaStore) Get(id string, clear bool) string {
	rc := GetRedis()
	if rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		v, err := rc.Get(ctx, "captcha:"+id).Result()
		if err == nil {
			if clear {
				_ = rc.Del(ctx, "captcha:"+id).Err()
			}
			return v
		}
	}
	return s.fallback.Get(id, clear)
}

func (s *redisCaptchaStore) Verify(id, answer string, clear bool) bool {
	v := s.Get(id, clear)
	return v != "" && v == answer
}
