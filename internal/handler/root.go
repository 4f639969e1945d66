package handler

import (
	"net/http"

	"yoloserver/internal/config"
	"yoloserver/internal/dto"
)

// WelcomeMessage is the fixed body of the root endpoint.
const WelcomeMessage = "Welcome to the YOLOv8 Inference API. Use the /predict/ endpoint to perform object detection."

// ClassLister exposes the model's class labels keyed by class id.
type ClassLister interface {
	ClassLabels() map[int]string
}

// RootHandler serves GET / with a static welcome message.
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, dto.MessageResponse{Message: WelcomeMessage}, http.StatusOK)
	}
}

// InfoHandler serves GET /info with service metadata and the class table.
func InfoHandler(classes ClassLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, dto.ServiceInfo{
			Title:       config.Title,
			Description: config.Description,
			Version:     config.Version,
			Classes:     classes.ClassLabels(),
		}, http.StatusOK)
	}
}
