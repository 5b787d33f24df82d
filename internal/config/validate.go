package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var channelRe = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.Leeway < 0 || c.Auth.Leeway > 5*time.Minute {
		return fmt.Errorf("auth.leeway must be between 0 and 5m (got %s)", c.Auth.Leeway)
	}

	if err := c.Election.validate(); err != nil {
		return fmt.Errorf("election: %w", err)
	}

	if err := c.Live.validate(); err != nil {
		return fmt.Errorf("live: %w", err)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Database.LockTimeout < 0 {
		return fmt.Errorf("database.lock_timeout must be >= 0 (got %s)", c.Database.LockTimeout)
	}

	if c.RateLimit.CastPerMinute <= 0 || c.RateLimit.VerifyPerMinute <= 0 {
		return fmt.Errorf("rate_limit: per-minute limits must be > 0")
	}

	return nil
}

func (e *ElectionConfig) validate() error {
	if e.StorageTimeout <= 0 {
		return fmt.Errorf("storage_timeout must be > 0 (got %s)", e.StorageTimeout)
	}
	if e.SideEffectTimeout <= 0 {
		return fmt.Errorf("side_effect_timeout must be > 0 (got %s)", e.SideEffectTimeout)
	}
	if e.SettingsCacheTTL < 0 {
		return fmt.Errorf("settings_cache_ttl must be >= 0 (got %s)", e.SettingsCacheTTL)
	}
	if e.AuditPageSize <= 0 {
		return fmt.Errorf("audit_page_size must be > 0 (got %d)", e.AuditPageSize)
	}
	if e.ResetTokenHash != "" && !strings.HasPrefix(e.ResetTokenHash, "$2") {
		return fmt.Errorf("reset_token_hash must be a bcrypt hash")
	}
	return nil
}

func (l *LiveConfig) validate() error {
	if !channelRe.MatchString(l.Channel) {
		return fmt.Errorf("channel %q must be a lowercase identifier", l.Channel)
	}
	if l.SubscriberBuffer <= 0 {
		return fmt.Errorf("subscriber_buffer must be > 0 (got %d)", l.SubscriberBuffer)
	}
	if l.Heartbeat <= 0 {
		return fmt.Errorf("heartbeat must be > 0 (got %s)", l.Heartbeat)
	}
	return nil
}
