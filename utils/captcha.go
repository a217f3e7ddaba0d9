package utils

import (
	"sync"

	"github.com/mojocn/base64Captcha"
)

var (
	captchaInstance *base64Captcha.Captcha
	captchaOnce     sync.Once
)

func getCaptcha() *base64Captcha.Captcha {
	captchaOnce.Do(func() {
		driver := base64Captcha.NewDriverDigit(80, 240, 5, 0.7, 80)
		captchaInstance = base64Captcha.NewCaptcha(driver, newCaptchaStore())
	})
	return captchaInstance
}

// GenerateCaptcha returns (id, base64 PNG data URI) for a fresh challenge.
func GenerateCaptcha() (string, string, error) {
	id, b64, _, err := getCaptcha().Generate()
	return id, b64, err
}

// VerifyCaptcha checks the answer; the challenge is consumed either way.
func VerifyCaptcha(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return getCaptcha().Verify(id, answer, true)
}

// VerifyCaptchaNoConsume checks the answer without consuming the challenge.
// Used for client-side validation before the real submit.
func VerifyCaptchaNoConsume(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return getCaptcha().Verify(id, answer, false)
}
