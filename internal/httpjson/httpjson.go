// Package httpjson holds the small JSON request/response helpers shared by
// handlers and middleware.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the flat error body returned by every failing endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// Write serializes v as the response body with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a {message} error body.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, ErrorResponse{Message: message})
}

// ErrorWithDetail writes a {message, error} body. Used only in development
// mode, where internal detail may be exposed.
func ErrorWithDetail(w http.ResponseWriter, status int, message, detail string) {
	Write(w, status, ErrorResponse{Message: message, Detail: detail})
}

// Decode reads the request body into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
