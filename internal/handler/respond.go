package handler

import (
	"encoding/json"
	"net/http"

	"yoloserver/internal/dto"
)

// EncodeFailureMessage is the detail returned when a response cannot be marshalled.
const EncodeFailureMessage = "Failed to encode response"

// respondJSON marshals data before writing the status, so a value JSON cannot
// represent (NaN confidence) yields a 500 instead of a truncated 200 body.
func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	body, err := json.Marshal(data)
	if err != nil {
		body, _ = json.Marshal(dto.ErrorResponse{Detail: EncodeFailureMessage})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, dto.ErrorResponse{Detail: message}, status)
}
