package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	postgres "github.com/heartmarshall/election-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/election-backend/internal/adapter/postgres/audit"
	candidaterepo "github.com/heartmarshall/election-backend/internal/adapter/postgres/candidate"
	"github.com/heartmarshall/election-backend/internal/adapter/postgres/notify"
	postrepo "github.com/heartmarshall/election-backend/internal/adapter/postgres/post"
	settingsrepo "github.com/heartmarshall/election-backend/internal/adapter/postgres/settings"
	ledger "github.com/heartmarshall/election-backend/internal/adapter/postgres/vote"
	voterrepo "github.com/heartmarshall/election-backend/internal/adapter/postgres/voter"
	"github.com/heartmarshall/election-backend/internal/config"
	"github.com/heartmarshall/election-backend/internal/metrics"
	"github.com/heartmarshall/election-backend/internal/service/integrity"
	"github.com/heartmarshall/election-backend/internal/service/settings"
	"github.com/heartmarshall/election-backend/internal/service/tally"
	"github.com/heartmarshall/election-backend/internal/service/voting"
)

// core is the storage-backed part of the application shared by the server
// and the offline commands.
type core struct {
	pool     *pgxpool.Pool
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	tally    *tally.Engine
	voting   *voting.Service
	verifier *integrity.Verifier
}

// bootstrap loads configuration and sets up logging.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, NewLogger(cfg.Log), nil
}

// newCore connects to the database, applies migrations when enabled, and
// builds the services.
func newCore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*core, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newBuildInfo(),
	)
	m := metrics.New(registry)

	var (
		txm        = postgres.NewTxManager(pool)
		lock       = postgres.NewElectionLock(pool)
		votes      = ledger.New(pool)
		posts      = postrepo.New(pool)
		candidates = candidaterepo.New(pool)
		voters     = voterrepo.New(pool)
		audit      = auditrepo.New(pool)
		publisher  = notify.NewPublisher(pool, cfg.Live.Channel)
	)

	policy := settings.NewProvider(logger, settingsrepo.New(pool), cfg.Election.VerificationRequired, cfg.Election.SettingsCacheTTL)
	engine := tally.NewEngine(logger, votes, posts, candidates, policy, lock, txm, m)
	votingSvc := voting.NewService(logger, voters, posts, candidates, votes, engine, audit, publisher, lock, txm, m, nil, cfg.Election)

	return &core{
		pool:     pool,
		registry: registry,
		metrics:  m,
		tally:    engine,
		voting:   votingSvc,
		verifier: integrity.NewVerifier(logger, votes),
	}, nil
}

func (c *core) Close() {
	c.pool.Close()
}
