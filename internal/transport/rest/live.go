package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/live"
)

type subscriber interface {
	Subscribe() *live.Subscription
}

// LiveHandler streams vote updates as Server-Sent Events.
type LiveHandler struct {
	hub       subscriber
	heartbeat time.Duration
	log       *slog.Logger
}

// NewLiveHandler creates a LiveHandler. A comment line is written every
// heartbeat so idle proxies keep the stream open.
func NewLiveHandler(hub subscriber, heartbeat time.Duration, logger *slog.Logger) *LiveHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &LiveHandler{
		hub:       hub,
		heartbeat: heartbeat,
		log:       logger.With("handler", "live"),
	}
}

// Stream sends every update until the client disconnects or the hub closes.
// An optional post_id query parameter narrows the stream to one post; resets
// are always delivered.
// GET /api/live
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	postFilter, err := queryUUID(r, "post_id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	rc := http.NewResponseController(w)

	sub := h.hub.Subscribe()
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprint(w, "retry: 3000\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		h.log.WarnContext(r.Context(), "streaming unsupported", slog.String("error", err.Error()))
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case update, ok := <-sub.C:
			if !ok {
				return
			}
			if postFilter != nil && update.PostID != uuid.Nil && update.PostID != *postFilter {
				continue
			}
			data, err := json.Marshal(update)
			if err != nil {
				h.log.ErrorContext(r.Context(), "marshal live update", slog.String("error", err.Error()))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", update.Action, data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
