package rest

import (
	"net/http"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Votes   *VoteHandler
	Admin   *AdminHandler
	Live    *LiveHandler
	Health  *HealthHandler
	Metrics http.Handler
}

// NewRouter registers the HTTP surface. castLimit wraps the cast endpoint
// and verifyLimit the public receipt lookup.
func NewRouter(h Handlers, castLimit, verifyLimit func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Probes and metrics
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	// Voting (voter token) and public reads
	mux.Handle("POST /api/votes", castLimit(http.HandlerFunc(h.Votes.Cast)))
	mux.Handle("GET /api/votes/verify/{fingerprint}", verifyLimit(http.HandlerFunc(h.Votes.VerifyReceipt)))
	mux.HandleFunc("GET /api/posts/{id}/results", h.Votes.Results)
	mux.HandleFunc("GET /api/live", h.Live.Stream)

	// Administration
	mux.HandleFunc("GET /api/admin/votes", h.Admin.ListVotes)
	mux.HandleFunc("POST /api/admin/votes/{id}/verify", h.Admin.Verify)
	mux.HandleFunc("POST /api/admin/votes/{id}/invalidate", h.Admin.Invalidate)
	mux.HandleFunc("GET /api/admin/votes/{id}/integrity", h.Admin.Integrity)
	mux.HandleFunc("POST /api/admin/posts/{id}/recompute", h.Admin.Recompute)
	mux.HandleFunc("POST /api/admin/election/reset", h.Admin.Reset)

	return mux
}
