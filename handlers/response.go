package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes the uniform response envelope. Data fields sit next to
// "success" rather than under a nested key, matching the client contract.
func respondJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	if message != "" {
		payload["message"] = message
	}
	for key, value := range data {
		payload[key] = value
	}
	respondJSON(w, status, payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"success": false, "message": message})
}
