package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/election-backend/internal/adapter/postgres/notify"
	"github.com/heartmarshall/election-backend/internal/auth"
	"github.com/heartmarshall/election-backend/internal/live"
	"github.com/heartmarshall/election-backend/internal/transport/middleware"
	"github.com/heartmarshall/election-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database, and serves HTTP while a LISTEN loop feeds live updates into the
// in-process hub. It returns when ctx is cancelled or a component fails.
func Run(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	c, err := newCore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	hub := live.NewHub(logger, cfg.Live.SubscriberBuffer, c.metrics)
	listener := notify.NewListener(c.pool, cfg.Live.Channel, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	tokens := auth.NewTokenVerifier(cfg.Auth)

	mux := rest.NewRouter(rest.Handlers{
		Votes:   rest.NewVoteHandler(c.voting, c.verifier, logger),
		Admin:   rest.NewAdminHandler(c.voting, c.verifier, cfg.Election.ResetTokenHash, logger),
		Live:    rest.NewLiveHandler(hub, cfg.Live.Heartbeat, logger),
		Health:  rest.NewHealthHandler(c.pool, listener, hub, BuildVersion()),
		Metrics: promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}),
	}, limiter.Limit("cast", cfg.RateLimit.CastPerMinute), limiter.Limit("verify", cfg.RateLimit.VerifyPerMinute))

	handler := middleware.Stack(middleware.StackOptions{
		Logger:     logger,
		CORS:       cfg.CORS,
		TrustProxy: cfg.Server.TrustProxy,
		Tokens:     tokens,
		Metrics:    c.metrics,
	})(mux)

	srv := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:     handler,
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
		// WriteTimeout is left unset: live streams are long-lived responses.
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return listener.Run(gctx, hub.Publish)
	})

	g.Go(func() error {
		<-gctx.Done()
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("application stopped")
	return nil
}
