package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// errorBody mirrors the REST error envelope so clients parse middleware
// rejections the same way as handler errors.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error:   strings.ToLower(code),
		Code:    code,
		Message: message,
	})
}
