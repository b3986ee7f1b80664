package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects where session scopes are stored.
type SessionBackend string

const (
	// SessionBackendRedis stores sessions in Redis hashes (production).
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory keeps sessions in process memory (dev and tests).
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch SessionBackend(v) {
	case SessionBackendRedis, SessionBackendMemory:
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: redis, memory)", v)
	}
}

const (
	defaultSessionCookieName = "chemclass_sid"
	defaultSessionTTL        = 7 * 24 * time.Hour
	defaultSessionKeyPrefix  = "chemclass:session:"
	minSessionTTL            = time.Minute
)

// SessionConfig contains browser session configuration.
type SessionConfig struct {
	Backend    SessionBackend `env:"SESSION_BACKEND"     envDefault:"redis"`
	CookieName string         `env:"SESSION_COOKIE_NAME" envDefault:"chemclass_sid"`
	// TTL is the idle lifetime of a session scope; every write slides it.
	TTL       time.Duration `env:"SESSION_TTL"        envDefault:"168h"`
	KeyPrefix string        `env:"SESSION_KEY_PREFIX" envDefault:"chemclass:session:"`
}

// Sanitize applies defaults and clamps the TTL.
func (c *SessionConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = SessionBackendRedis
	}
	if c.CookieName = strings.TrimSpace(c.CookieName); c.CookieName == "" {
		c.CookieName = defaultSessionCookieName
	}
	if c.TTL <= 0 {
		c.TTL = defaultSessionTTL
	}
	if c.TTL < minSessionTTL {
		c.TTL = minSessionTTL
	}
	if c.KeyPrefix = strings.TrimSpace(c.KeyPrefix); c.KeyPrefix == "" {
		c.KeyPrefix = defaultSessionKeyPrefix
	}
}
