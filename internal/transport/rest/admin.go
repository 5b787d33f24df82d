package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
	"github.com/heartmarshall/election-backend/internal/service/integrity"
	"github.com/heartmarshall/election-backend/internal/service/voting"
	"github.com/heartmarshall/election-backend/internal/transport/middleware"
	"golang.org/x/crypto/bcrypt"
)

// ResetConfirmationHeader carries the emergency reset token.
const ResetConfirmationHeader = "X-Reset-Confirmation"

type adminVoting interface {
	ListVotes(ctx context.Context, input voting.ListVotesInput) ([]domain.Vote, error)
	VerifyVote(ctx context.Context, voteID, actorID uuid.UUID) (*domain.Vote, error)
	InvalidateVote(ctx context.Context, input voting.InvalidateVoteInput) (*domain.Vote, error)
	RecomputePost(ctx context.Context, postID, actorID uuid.UUID) (*domain.PostTally, error)
	ResetAllVotes(ctx context.Context, actorID uuid.UUID) (domain.ResetSummary, error)
}

type voteChecker interface {
	CheckVote(ctx context.Context, voteID uuid.UUID) (integrity.CheckResult, error)
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	voting    adminVoting
	integrity voteChecker
	resetHash []byte
	log       *slog.Logger
}

// NewAdminHandler creates an AdminHandler. An empty resetHash disables the
// emergency reset endpoint.
func NewAdminHandler(votingSvc adminVoting, checker voteChecker, resetHash string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		voting:    votingSvc,
		integrity: checker,
		resetHash: []byte(resetHash),
		log:       logger.With("handler", "admin"),
	}
}

// ListVotes returns ledger records matching the query filters.
// GET /api/admin/votes?post_id=&candidate_id=&status=&limit=&offset=
func (h *AdminHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireAdmin(r.Context()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	input, err := parseListVotes(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	votes, err := h.voting.ListVotes(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]VoteResponse, 0, len(votes))
	for i := range votes {
		out = append(out, toVoteResponse(&votes[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func parseListVotes(r *http.Request) (voting.ListVotesInput, error) {
	var input voting.ListVotesInput
	var err error

	if input.PostID, err = queryUUID(r, "post_id"); err != nil {
		return input, err
	}
	if input.CandidateID, err = queryUUID(r, "candidate_id"); err != nil {
		return input, err
	}
	if input.Status, err = domain.ParseVoteStatusFilter("status", r.URL.Query().Get("status")); err != nil {
		return input, err
	}
	if input.Limit, err = queryInt(r, "limit", 0); err != nil {
		return input, err
	}
	if input.Offset, err = queryInt(r, "offset", 0); err != nil {
		return input, err
	}
	return input, nil
}

// Verify confirms a cast vote.
// POST /api/admin/votes/{id}/verify
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.RequireAdmin(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	voteID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	vote, err := h.voting.VerifyVote(r.Context(), voteID, adminID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toVoteResponse(vote))
}

type invalidateRequest struct {
	Reason string `json:"reason"`
}

// Invalidate strikes a vote from the tally with a recorded reason.
// POST /api/admin/votes/{id}/invalidate
func (h *AdminHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.RequireAdmin(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	voteID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req invalidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	vote, err := h.voting.InvalidateVote(r.Context(), voting.InvalidateVoteInput{
		VoteID:  voteID,
		ActorID: adminID,
		Reason:  req.Reason,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toVoteResponse(vote))
}

// Integrity recomputes a vote's fingerprint and compares it with the stored one.
// GET /api/admin/votes/{id}/integrity
func (h *AdminHandler) Integrity(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireAdmin(r.Context()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	voteID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	res, err := h.integrity.CheckVote(r.Context(), voteID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, IntegrityResponse{VoteID: res.VoteID, Valid: res.Valid})
}

// Recompute rebuilds one post's counters from the ledger.
// POST /api/admin/posts/{id}/recompute
func (h *AdminHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.RequireAdmin(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	postID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	tally, err := h.voting.RecomputePost(r.Context(), postID, adminID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTallyResponse(tally))
}

// Reset wipes the ledger. Requires an admin and the configured confirmation token.
// POST /api/admin/election/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.RequireAdmin(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	if len(h.resetHash) == 0 {
		writeError(w, http.StatusForbidden, "RESET_DISABLED", "emergency reset is not configured")
		return
	}

	token := r.Header.Get(ResetConfirmationHeader)
	if token == "" {
		writeError(w, http.StatusForbidden, "RESET_CONFIRMATION_REQUIRED", "missing "+ResetConfirmationHeader+" header")
		return
	}
	if err := bcrypt.CompareHashAndPassword(h.resetHash, []byte(token)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			h.log.ErrorContext(r.Context(), "compare reset token", slog.String("error", err.Error()))
		}
		h.log.WarnContext(r.Context(), "rejected reset confirmation", slog.String("admin_id", adminID.String()))
		writeError(w, http.StatusForbidden, "RESET_CONFIRMATION_INVALID", "reset confirmation does not match")
		return
	}

	summary, err := h.voting.ResetAllVotes(r.Context(), adminID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResetResponse(summary))
}
