package httputil

import (
	"encoding/json"
	"net/http"
)

// MsgResponse is the single-message error body: {"msg": "..."}
type MsgResponse struct {
	Msg string `json:"msg"`
}

// FieldError is one entry of a validation error body.
type FieldError struct {
	Msg string `json:"msg"`
}

// ErrorsResponse is the validation error body: {"errors": [{"msg": "..."}, ...]}
type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing left to do.
			return
		}
	}
}

// WriteMsg writes an error response with a single message body.
func WriteMsg(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, MsgResponse{Msg: msg})
}

// WriteErrors writes a 400 response enumerating every validation failure.
func WriteErrors(w http.ResponseWriter, msgs []string) {
	errs := make([]FieldError, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, FieldError{Msg: m})
	}
	WriteJSON(w, http.StatusBadRequest, ErrorsResponse{Errors: errs})
}

// WriteUnauthorized writes a 401 Unauthorized error
func WriteUnauthorized(w http.ResponseWriter, msg string) {
	WriteMsg(w, http.StatusUnauthorized, msg)
}

// WriteNotFound writes a 404 Not Found error
func WriteNotFound(w http.ResponseWriter, msg string) {
	WriteMsg(w, http.StatusNotFound, msg)
}

// WriteInternalError writes a 500 Internal Server Error without leaking detail
func WriteInternalError(w http.ResponseWriter) {
	WriteMsg(w, http.StatusInternalServerError, "Internal Server Error")
}
