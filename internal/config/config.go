package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Election  ElectionConfig  `yaml:"election"`
	Live      LiveConfig      `yaml:"live"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Reset-Confirmation"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Request-Id,Retry-After"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy makes X-Forwarded-For and X-Real-Ip authoritative for client IPs.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
	// LockTimeout bounds row and advisory lock waits per session; 0 disables it.
	LockTimeout time.Duration `yaml:"lock_timeout" env:"DATABASE_LOCK_TIMEOUT" env-default:"5s"`
}

// AuthConfig holds token validation settings. Tokens are issued by the
// membership service; this backend only validates them.
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"   env:"AUTH_JWT_SECRET"   env-required:"true"`
	JWTIssuer   string        `yaml:"jwt_issuer"   env:"AUTH_JWT_ISSUER"   env-default:"election"`
	JWTAudience string        `yaml:"jwt_audience" env:"AUTH_JWT_AUDIENCE"`
	Leeway      time.Duration `yaml:"leeway"       env:"AUTH_LEEWAY"       env-default:"30s"`
}

// ElectionConfig holds the voting core settings.
type ElectionConfig struct {
	// VerificationRequired is the fallback when system_settings has no value.
	VerificationRequired bool          `yaml:"verification_required" env:"ELECTION_VERIFICATION_REQUIRED" env-default:"true"`
	StorageTimeout       time.Duration `yaml:"storage_timeout"       env:"ELECTION_STORAGE_TIMEOUT"       env-default:"750ms"`
	SideEffectTimeout    time.Duration `yaml:"side_effect_timeout"   env:"ELECTION_SIDE_EFFECT_TIMEOUT"   env-default:"2s"`
	SettingsCacheTTL     time.Duration `yaml:"settings_cache_ttl"    env:"ELECTION_SETTINGS_CACHE_TTL"    env-default:"30s"`
	// ResetTokenHash is the bcrypt hash of the emergency reset confirmation token.
	// Empty disables the reset endpoint.
	ResetTokenHash string `yaml:"reset_token_hash" env:"ELECTION_RESET_TOKEN_HASH"`
	AuditPageSize  int    `yaml:"audit_page_size"  env:"ELECTION_AUDIT_PAGE_SIZE"  env-default:"500"`
}

// LiveConfig holds live-update fan-out settings.
type LiveConfig struct {
	Channel          string        `yaml:"channel"           env:"LIVE_CHANNEL"           env-default:"vote_updates"`
	SubscriberBuffer int           `yaml:"subscriber_buffer" env:"LIVE_SUBSCRIBER_BUFFER" env-default:"32"`
	Heartbeat        time.Duration `yaml:"heartbeat"         env:"LIVE_HEARTBEAT"         env-default:"25s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	CastPerMinute   int           `yaml:"cast_per_minute"   env:"RATE_LIMIT_CAST_PER_MINUTE"   env-default:"30"`
	VerifyPerMinute int           `yaml:"verify_per_minute" env:"RATE_LIMIT_VERIFY_PER_MINUTE" env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}

// ResetEnabled reports whether an emergency reset confirmation hash is configured.
func (c ElectionConfig) ResetEnabled() bool {
	return c.ResetTokenHash != ""
}
