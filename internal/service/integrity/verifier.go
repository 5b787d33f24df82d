package integrity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/election-backend/internal/domain"
)

// DefaultPageSize is used by AuditLedger when no page size is given.
const DefaultPageSize = 500

type voteReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vote, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (domain.Vote, error)
	ListPage(ctx context.Context, after uuid.UUID, limit int) ([]domain.Vote, error)
}

// Verifier answers public receipt lookups and administrative tamper checks.
type Verifier struct {
	votes voteReader
	log   *slog.Logger
}

// NewVerifier creates a new Verifier.
func NewVerifier(log *slog.Logger, votes voteReader) *Verifier {
	return &Verifier{
		votes: votes,
		log:   log.With("service", "integrity"),
	}
}

// VerifyByFingerprint returns the anonymous receipt of the vote with the
// given fingerprint. The receipt never carries voter fields.
func (v *Verifier) VerifyByFingerprint(ctx context.Context, fingerprint string) (domain.VoteReceipt, error) {
	fp := strings.ToLower(strings.TrimSpace(fingerprint))
	if !wellFormed(fp) {
		return domain.VoteReceipt{}, domain.ErrVoteNotFound
	}

	vote, err := v.votes.FindByFingerprint(ctx, fp)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.VoteReceipt{}, domain.ErrVoteNotFound
		}
		return domain.VoteReceipt{}, fmt.Errorf("find vote by fingerprint: %w", err)
	}

	return domain.VoteReceipt{
		PostID:      vote.PostID,
		CandidateID: vote.CandidateID,
		Status:      vote.Status,
		CreatedAt:   vote.CreatedAt,
		Verified:    vote.Status == domain.VoteStatusVerified,
	}, nil
}

// CheckResult is the outcome of a tamper check on a single vote.
type CheckResult struct {
	VoteID uuid.UUID
	Valid  bool
}

// CheckVote recomputes the fingerprint of one vote.
func (v *Verifier) CheckVote(ctx context.Context, voteID uuid.UUID) (CheckResult, error) {
	vote, err := v.votes.GetByID(ctx, voteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return CheckResult{}, domain.ErrVoteNotFound
		}
		return CheckResult{}, fmt.Errorf("get vote: %w", err)
	}

	valid := ValidateIntegrity(vote)
	if !valid {
		v.log.WarnContext(ctx, "vote fingerprint mismatch",
			slog.String("vote_id", voteID.String()),
			slog.String("post_id", vote.PostID.String()),
		)
	}
	return CheckResult{VoteID: voteID, Valid: valid}, nil
}

// Report summarises a full ledger scan.
type Report struct {
	Scanned    int
	Tampered   []uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
}

// Clean reports whether no tampered vote was found.
func (r Report) Clean() bool {
	return len(r.Tampered) == 0
}

// AuditLedger scans every vote in id order and collects the ids whose
// fingerprint no longer matches. Pages are fetched while the previous page
// is being checked.
func (v *Verifier) AuditLedger(ctx context.Context, pageSize int) (Report, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	report := Report{StartedAt: time.Now().UTC()}
	pages := make(chan []domain.Vote, 2)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(pages)
		after := uuid.Nil
		for {
			page, err := v.votes.ListPage(gctx, after, pageSize)
			if err != nil {
				return fmt.Errorf("list votes after %s: %w", after, err)
			}
			if len(page) == 0 {
				return nil
			}
			select {
			case pages <- page:
			case <-gctx.Done():
				return gctx.Err()
			}
			if len(page) < pageSize {
				return nil
			}
			after = page[len(page)-1].ID
		}
	})

	g.Go(func() error {
		for page := range pages {
			for _, vote := range page {
				report.Scanned++
				if !ValidateIntegrity(vote) {
					report.Tampered = append(report.Tampered, vote.ID)
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	report.FinishedAt = time.Now().UTC()

	if report.Clean() {
		v.log.InfoContext(ctx, "ledger integrity verified", slog.Int("scanned", report.Scanned))
	} else {
		v.log.ErrorContext(ctx, "ledger integrity violated",
			slog.Int("scanned", report.Scanned),
			slog.Int("tampered", len(report.Tampered)),
		)
	}

	return report, nil
}
