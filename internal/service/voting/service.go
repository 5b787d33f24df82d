package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/config"
	"github.com/heartmarshall/election-backend/internal/domain"
)

type voterRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Voter, error)
	MarkVoted(ctx context.Context, id uuid.UUID, at time.Time) error
	ResetVoted(ctx context.Context) (int64, error)
}

type postRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)
	ResetTotals(ctx context.Context) (int64, error)
}

type candidateRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Candidate, error)
	ResetTallies(ctx context.Context) (int64, error)
}

type voteRepo interface {
	Insert(ctx context.Context, v domain.Vote) (domain.Vote, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vote, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Vote, error)
	FindByVoterAndPost(ctx context.Context, voterID, postID uuid.UUID) (domain.Vote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VoteStatus, metadata map[string]any, at time.Time) (domain.Vote, error)
	List(ctx context.Context, f domain.VoteFilter) ([]domain.Vote, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type tallyEngine interface {
	Recompute(ctx context.Context, postID uuid.UUID) (domain.PostTally, error)
	Results(ctx context.Context, postID uuid.UUID) (domain.PostResults, error)
}

type auditLogger interface {
	Log(ctx context.Context, event domain.AuditEvent) error
}

type livePublisher interface {
	Publish(ctx context.Context, update domain.LiveUpdate) error
}

type electionLock interface {
	Shared(ctx context.Context) error
	Exclusive(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	VoteCast(outcome string)
	StatusChanged(to string)
	SideEffectFailed(step string)
	ResetCompleted()
}

// Clock returns the current time.
type Clock func() time.Time

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Service is the vote casting orchestrator. It owns every write to the vote
// ledger: casting, status transitions and the emergency reset.
type Service struct {
	voters     voterRepo
	posts      postRepo
	candidates candidateRepo
	votes      voteRepo
	tally      tallyEngine
	audit      auditLogger
	live       livePublisher
	lock       electionLock
	tx         txManager
	metrics    recorder
	now        Clock
	cfg        config.ElectionConfig
	log        *slog.Logger
}

// NewService creates a new voting Service.
func NewService(
	log *slog.Logger,
	voters voterRepo,
	posts postRepo,
	candidates candidateRepo,
	votes voteRepo,
	tally tallyEngine,
	audit auditLogger,
	live livePublisher,
	lock electionLock,
	tx txManager,
	metrics recorder,
	clock Clock,
	cfg config.ElectionConfig,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		voters:     voters,
		posts:      posts,
		candidates: candidates,
		votes:      votes,
		tally:      tally,
		audit:      audit,
		live:       live,
		lock:       lock,
		tx:         tx,
		metrics:    metrics,
		now:        clock,
		cfg:        cfg,
		log:        log.With("service", "voting"),
	}
}

// storageFailure reports whether err means storage could not answer in time,
// as opposed to answering with a business outcome.
func storageFailure(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, domain.ErrUnavailable)
}

// wrapStorage converts timeouts into the retryable StorageUnavailable kind
// and wraps everything else with op.
func wrapStorage(op string, err error) error {
	if storageFailure(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStorageUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// sideEffectContext detaches ctx from the caller's cancellation and bounds it
// with the side-effect timeout.
func (s *Service) sideEffectContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.SideEffectTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// sideEffectFailed logs and counts a best-effort step that did not complete.
func (s *Service) sideEffectFailed(ctx context.Context, step string, voteID uuid.UUID, err error) {
	s.metrics.SideEffectFailed(step)
	s.log.ErrorContext(ctx, "vote side effect failed",
		slog.String("step", step),
		slog.String("vote_id", voteID.String()),
		slog.String("error", err.Error()),
	)
}

// publish sends a live update without failing the caller.
func (s *Service) publish(ctx context.Context, update domain.LiveUpdate, voteID uuid.UUID) {
	if err := s.live.Publish(ctx, update); err != nil {
		s.sideEffectFailed(ctx, StepPublish, voteID, err)
	}
}

// Side-effect step names used in logs and metrics.
const (
	StepRecompute = "recompute"
	StepMarkVoted = "mark_voted"
	StepAudit     = "audit"
	StepPublish   = "publish"
)

func copyMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}
