package app

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/election-backend/internal/service/integrity"
)

// Retally recomputes the counters of every post from the ledger.
func Retally(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	c, err := newCore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	tallies, err := c.tally.RecomputeAll(ctx)
	if err != nil {
		return err
	}

	for _, t := range tallies {
		logger.InfoContext(ctx, "post recomputed",
			slog.String("post_id", t.PostID.String()),
			slog.Int("total_votes", t.TotalVotes),
			slog.Int("candidates", len(t.Candidates)),
		)
	}
	logger.InfoContext(ctx, "retally complete", slog.Int("posts", len(tallies)))
	return nil
}

// VerifyIntegrity scans the whole ledger and reports votes whose stored
// fingerprint no longer matches their fields.
func VerifyIntegrity(ctx context.Context) (integrity.Report, error) {
	cfg, logger, err := bootstrap()
	if err != nil {
		return integrity.Report{}, err
	}

	c, err := newCore(ctx, cfg, logger)
	if err != nil {
		return integrity.Report{}, err
	}
	defer c.Close()

	report, err := c.verifier.AuditLedger(ctx, cfg.Election.AuditPageSize)
	if err != nil {
		return integrity.Report{}, err
	}

	attrs := []any{
		slog.Int("scanned", report.Scanned),
		slog.Int("tampered", len(report.Tampered)),
		slog.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	}
	if report.Clean() {
		logger.InfoContext(ctx, "ledger integrity verified", attrs...)
	} else {
		for _, id := range report.Tampered {
			logger.ErrorContext(ctx, "tampered vote", slog.String("vote_id", id.String()))
		}
		logger.ErrorContext(ctx, "ledger integrity check failed", attrs...)
	}
	return report, nil
}
