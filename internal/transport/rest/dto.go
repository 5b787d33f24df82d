package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

const maxBodyBytes = 1 << 16

// VoteResponse is the JSON view of a ledger record.
type VoteResponse struct {
	ID          uuid.UUID         `json:"id"`
	VoterID     uuid.UUID         `json:"voter_id"`
	PostID      uuid.UUID         `json:"post_id"`
	CandidateID uuid.UUID         `json:"candidate_id"`
	Status      domain.VoteStatus `json:"status"`
	Fingerprint string            `json:"fingerprint"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CastResponse is returned to the voter after a successful cast. The
// fingerprint is the receipt used with the public verification endpoint.
type CastResponse struct {
	VoteID      uuid.UUID         `json:"vote_id"`
	PostID      uuid.UUID         `json:"post_id"`
	CandidateID uuid.UUID         `json:"candidate_id"`
	Status      domain.VoteStatus `json:"status"`
	Fingerprint string            `json:"fingerprint"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CandidateResult is one candidate's public standing.
type CandidateResult struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	VoteCount      int       `json:"vote_count"`
	VotePercentage float64   `json:"vote_percentage"`
}

// ResultsResponse is the public result page of a post.
type ResultsResponse struct {
	PostID     uuid.UUID         `json:"post_id"`
	Title      string            `json:"title"`
	Status     domain.PostStatus `json:"status"`
	TotalVotes int               `json:"total_votes"`
	Candidates []CandidateResult `json:"candidates"`
}

// TallyResponse reports a recompute.
type TallyResponse struct {
	PostID     uuid.UUID         `json:"post_id"`
	TotalVotes int               `json:"total_votes"`
	Candidates []CandidateResult `json:"candidates"`
}

// IntegrityResponse reports whether a stored fingerprint still matches.
type IntegrityResponse struct {
	VoteID uuid.UUID `json:"vote_id"`
	Valid  bool      `json:"valid"`
}

// ResetResponse summarizes an emergency reset.
type ResetResponse struct {
	VotesDeleted    int64     `json:"votes_deleted"`
	CandidatesReset int64     `json:"candidates_reset"`
	PostsReset      int64     `json:"posts_reset"`
	VotersReset     int64     `json:"voters_reset"`
	ResetAt         time.Time `json:"reset_at"`
}

func toVoteResponse(v *domain.Vote) VoteResponse {
	return VoteResponse{
		ID:          v.ID,
		VoterID:     v.VoterID,
		PostID:      v.PostID,
		CandidateID: v.CandidateID,
		Status:      v.Status,
		Fingerprint: v.Fingerprint,
		Metadata:    v.Metadata,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toCastResponse(v *domain.Vote) CastResponse {
	return CastResponse{
		VoteID:      v.ID,
		PostID:      v.PostID,
		CandidateID: v.CandidateID,
		Status:      v.Status,
		Fingerprint: v.Fingerprint,
		CreatedAt:   v.CreatedAt,
	}
}

func toResultsResponse(res *domain.PostResults) ResultsResponse {
	out := ResultsResponse{
		PostID:     res.Post.ID,
		Title:      res.Post.Title,
		Status:     res.Post.Status,
		TotalVotes: res.Post.TotalVotes,
		Candidates: make([]CandidateResult, 0, len(res.Candidates)),
	}
	for _, c := range res.Candidates {
		out.Candidates = append(out.Candidates, CandidateResult{
			ID:             c.ID,
			FullName:       c.FullName,
			VoteCount:      c.VoteCount,
			VotePercentage: c.VotePercentage,
		})
	}
	return out
}

func toTallyResponse(t *domain.PostTally) TallyResponse {
	out := TallyResponse{
		PostID:     t.PostID,
		TotalVotes: t.TotalVotes,
		Candidates: make([]CandidateResult, 0, len(t.Candidates)),
	}
	for _, c := range t.Candidates {
		out.Candidates = append(out.Candidates, CandidateResult{
			ID:             c.CandidateID,
			VoteCount:      c.VoteCount,
			VotePercentage: c.VotePercentage,
		})
	}
	return out
}

func toResetResponse(s domain.ResetSummary) ResetResponse {
	return ResetResponse(s)
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON body")
	}
	return nil
}

// pathUUID parses a {name} path wildcard.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// queryUUID parses an optional UUID query parameter.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a UUID")
	}
	return &id, nil
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(name, fmt.Sprintf("must be a non-negative integer, got %q", raw))
	}
	return n, nil
}
