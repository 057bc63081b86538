package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gacha_backend/internal/config"
)

const (
	sessionSecretEnvName       = "SESSION_SECRET"
	sessionTTLEnvName          = "SESSION_TTL"
	sessionSecureCookieEnvName = "SESSION_SECURE_COOKIE"

	defaultSessionTTL = 30 * 24 * time.Hour // 30 дней
)

type sessionConfig struct {
	secretKey    string
	ttl          time.Duration
	secureCookie bool
}

func NewSessionConfig() (config.SessionConfig, error) {
	secret := os.Getenv(sessionSecretEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret key not found")
	}

	ttl := defaultSessionTTL
	if raw := os.Getenv(sessionTTLEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid session ttl: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("session ttl must be positive, got %s", parsed)
		}
		ttl = parsed
	}

	secure := false
	if raw := os.Getenv(sessionSecureCookieEnvName); len(raw) != 0 {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", sessionSecureCookieEnvName, err)
		}
		secure = parsed
	}

	return &sessionConfig{
		secretKey:    secret,
		ttl:          ttl,
		secureCookie: secure,
	}, nil
}

func (s *sessionConfig) SecretKey() []byte {
	return []byte(s.secretKey)
}

func (s *sessionConfig) TTL() time.Duration {
	return s.ttl
}

func (s *sessionConfig) SecureCookie() bool {
	return s.secureCookie
}
