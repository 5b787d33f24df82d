package settings

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// KeyVerificationRequired is the system_settings key holding the count policy.
const KeyVerificationRequired = "verification_required"

type settingsRepo interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// Provider resolves runtime election settings from storage with a short-lived
// cache. When the stored value is missing or unreadable the configured
// fallback is used.
type Provider struct {
	repo     settingsRepo
	fallback bool
	ttl      time.Duration
	now      func() time.Time
	log      *slog.Logger

	mu        sync.Mutex
	cached    bool
	expiresAt time.Time
}

// NewProvider creates a new settings Provider.
func NewProvider(log *slog.Logger, repo settingsRepo, fallback bool, ttl time.Duration) *Provider {
	return &Provider{
		repo:     repo,
		fallback: fallback,
		ttl:      ttl,
		now:      time.Now,
		log:      log.With("service", "settings"),
	}
}

// VerificationRequired reports whether only verified votes are counted.
func (p *Provider) VerificationRequired(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.ttl > 0 && now.Before(p.expiresAt) {
		return p.cached
	}

	value := p.load(ctx)
	p.cached = value
	p.expiresAt = now.Add(p.ttl)
	return value
}

// Invalidate drops the cached value so the next read hits storage.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.expiresAt = time.Time{}
	p.mu.Unlock()
}

func (p *Provider) load(ctx context.Context) bool {
	raw, ok, err := p.repo.Get(ctx, KeyVerificationRequired)
	if err != nil {
		p.log.WarnContext(ctx, "read setting failed, using fallback",
			slog.String("key", KeyVerificationRequired),
			slog.Bool("fallback", p.fallback),
			slog.String("error", err.Error()),
		)
		return p.fallback
	}
	if !ok {
		return p.fallback
	}

	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		p.log.WarnContext(ctx, "malformed setting, using fallback",
			slog.String("key", KeyVerificationRequired),
			slog.String("value", raw),
		)
		return p.fallback
	}
	return value
}
