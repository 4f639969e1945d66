package handler

import (
	"context"
	"errors"
	"net/http"

	"yoloserver/internal/config"
	"yoloserver/internal/dto"
	"yoloserver/internal/logger"
	"yoloserver/internal/service"
)

// FileField is the multipart field carrying the image.
const FileField = "file"

// UploadTooLargeMessage is the detail returned when the body exceeds MaxUploadSize.
const UploadTooLargeMessage = "Upload exceeds the maximum allowed size"

// Predictor runs detection on one upload.
type Predictor interface {
	Predict(ctx context.Context, upload dto.Upload) (*dto.PredictionResponse, error)
}

// PredictHandler handles POST /predict with a multipart image upload.
func PredictHandler(predictor Predictor, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadSize)

		// Pliki powyżej limitu pamięci trafiają do plików tymczasowych
		if err := r.ParseMultipartForm(cfg.MaxUploadSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(w, UploadTooLargeMessage, http.StatusRequestEntityTooLarge)
				return
			}
			respondError(w, "Expected a multipart/form-data body", http.StatusUnprocessableEntity)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile(FileField)
		if err != nil {
			respondError(w, "Field required: "+FileField, http.StatusUnprocessableEntity)
			return
		}
		defer file.Close()

		upload := dto.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}

		result, err := predictor.Predict(r.Context(), upload)
		if err != nil {
			if service.IsClientError(err) {
				respondError(w, err.Error(), http.StatusBadRequest)
				return
			}

			logger.With(
				"kind", service.Kind(err),
				"filename", upload.Filename,
				"content_type", upload.ContentType,
				"size", upload.Size,
			).Error("Prediction failed: %v", err)
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondJSON(w, result, http.StatusOK)
	}
}
