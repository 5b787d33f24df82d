package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
	"github.com/heartmarshall/election-backend/internal/service/voting"
	"github.com/heartmarshall/election-backend/internal/transport/middleware"
	"github.com/heartmarshall/election-backend/pkg/ctxutil"
)

type voteCaster interface {
	CastVote(ctx context.Context, input voting.CastVoteInput) (*domain.Vote, error)
	GetResults(ctx context.Context, postID uuid.UUID) (*domain.PostResults, error)
}

type receiptVerifier interface {
	VerifyByFingerprint(ctx context.Context, fingerprint string) (domain.VoteReceipt, error)
}

// VoteHandler serves the voter-facing and public vote endpoints.
type VoteHandler struct {
	votes    voteCaster
	receipts receiptVerifier
	log      *slog.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(votes voteCaster, receipts receiptVerifier, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{
		votes:    votes,
		receipts: receipts,
		log:      logger.With("handler", "votes"),
	}
}

type castRequest struct {
	PostID      uuid.UUID `json:"post_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
}

// Cast records the authenticated voter's choice for one post.
// POST /api/votes
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	voterID, err := middleware.RequireUser(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req castRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	vote, err := h.votes.CastVote(r.Context(), voting.CastVoteInput{
		VoterID:     voterID,
		PostID:      req.PostID,
		CandidateID: req.CandidateID,
		Client: domain.ClientContext{
			IPAddress: ctxutil.ClientIPFromCtx(r.Context()),
			UserAgent: r.UserAgent(),
		},
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCastResponse(vote))
}

// VerifyReceipt returns the anonymous receipt for a fingerprint.
// GET /api/votes/verify/{fingerprint}
func (h *VoteHandler) VerifyReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.receipts.VerifyByFingerprint(r.Context(), r.PathValue("fingerprint"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// Results returns the current standing of a post.
// GET /api/posts/{id}/results
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	res, err := h.votes.GetResults(r.Context(), postID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultsResponse(res))
}
