package route

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yoloserver/internal/config"
	"yoloserver/internal/dto"
	"yoloserver/internal/handler"
	"yoloserver/internal/logger"
	"yoloserver/internal/service"
	"yoloserver/internal/service/ai"
)

type nopDetector struct{}

func (nopDetector) Detect(context.Context, image.Image) ([]ai.RawDetection, error) {
	return nil, nil
}

func (nopDetector) Names() ai.ClassNames {
	return ai.ClassNames{0: "person"}
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{MaxUploadSize: 1 << 20, AllowedOrigins: []string{"*"}}
	svc := service.NewPredictionService(nopDetector{}, logger.NewNop())
	return SetupRoutes(svc, cfg, logger.NewNop())
}

func TestSetupRoutes_Root(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?anything=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var msg dto.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if msg.Message != handler.WelcomeMessage {
		t.Errorf("Unexpected message %q", msg.Message)
	}
}

func TestSetupRoutes_MethodsAndPaths(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		method   string
		path     string
		expected int
	}{
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/predict", http.StatusMethodNotAllowed},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodGet, "/info", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestSetupRoutes_PredictRejectsNonImage(t *testing.T) {
	router := setupRouter(t)

	body := "--b\r\nContent-Disposition: form-data; name=\"file\"; filename=\"notes.txt\"\r\nContent-Type: text/plain\r\n\r\nhello\r\n--b--\r\n"
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), service.InvalidFileTypeMessage) {
		t.Errorf("Unexpected body %s", rec.Body.String())
	}
}
