package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/election-backend/internal/domain"
	"github.com/heartmarshall/election-backend/pkg/ctxutil"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// presentError maps a domain error to an HTTP status and a stable body.
// Voting failures carry their kind as code; other errors use the category.
func presentError(log *slog.Logger, r *http.Request, err error) (int, ErrorResponse) {
	var status int
	var resp ErrorResponse

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, resp = http.StatusNotFound, ErrorResponse{Error: "not_found", Code: "NOT_FOUND"}
	case errors.Is(err, domain.ErrAlreadyExists):
		status, resp = http.StatusConflict, ErrorResponse{Error: "already_exists", Code: "ALREADY_EXISTS"}
	case errors.Is(err, domain.ErrValidation):
		status, resp = http.StatusBadRequest, ErrorResponse{Error: "validation", Code: "VALIDATION"}
	case errors.Is(err, domain.ErrUnauthorized):
		status, resp = http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated", Code: "UNAUTHENTICATED"}
	case errors.Is(err, domain.ErrForbidden):
		status, resp = http.StatusForbidden, ErrorResponse{Error: "forbidden", Code: "FORBIDDEN"}
	case errors.Is(err, domain.ErrConflict):
		status, resp = http.StatusConflict, ErrorResponse{Error: "conflict", Code: "CONFLICT"}
	case errors.Is(err, domain.ErrUnavailable):
		status, resp = http.StatusServiceUnavailable, ErrorResponse{Error: "unavailable", Code: "UNAVAILABLE"}
	default:
		// Unexpected error: log it, return a generic message to the client.
		log.ErrorContext(r.Context(), "unexpected error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		return http.StatusInternalServerError, ErrorResponse{Error: "internal", Code: "INTERNAL", Message: "internal error"}
	}

	resp.Message = err.Error()

	var ve *domain.VoteError
	if errors.As(err, &ve) {
		resp.Code = string(ve.Kind)
		resp.Message = ve.Message
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		resp.Message = "invalid request"
		for _, fe := range valErr.Errors {
			resp.Fields = append(resp.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
	}

	return status, resp
}

// respondError writes err as an ErrorResponse.
func respondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, resp := presentError(log, r, err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, resp)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   strings.ToLower(code),
		Code:    code,
		Message: message,
	})
}
