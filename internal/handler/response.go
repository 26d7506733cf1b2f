package handler

import (
	"encoding/json"
	"log"
	"net/http"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
)

// ErrorBody matches the backend's error shape so the frontend parses both
// the same way.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("⚠️ failed to encode response:", err)
	}
}

// WriteError keeps the upstream status for backend errors and uses 500 for
// anything unclassified.
func WriteError(w http.ResponseWriter, err error) {
	status := appErrors.StatusOf(err)
	if status < 400 {
		status = http.StatusInternalServerError
		log.Println("❌ request failed:", err)
	}
	WriteJSON(w, status, ErrorBody{Detail: err.Error()})
}

func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, ErrorBody{Detail: detail})
}
