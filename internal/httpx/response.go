// Package httpx provides the JSON response envelopes used by every API
// handler: {"message": ..., "data": ...} on success, {"error": ...} on
// failure.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the success response shape.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Changes int64  `json:"changes,omitempty"`
}

// ErrorResponse is the failure response shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes payload as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// Success writes a 200 {"message":"success","data":...} envelope.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Message: "success", Data: data})
}

// Changed writes an envelope confirming how many rows an update or delete
// touched, e.g. {"message":"deleted","changes":1}.
func Changed(w http.ResponseWriter, message string, changes int64) {
	JSON(w, http.StatusOK, Envelope{Message: message, Changes: changes})
}

// Error writes a {"error": msg} body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Error: msg})
}
