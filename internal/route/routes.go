package route

import (
	"net/http"

	"yoloserver/internal/config"
	"yoloserver/internal/handler"
	"yoloserver/internal/logger"
	"yoloserver/internal/middleware"
	"yoloserver/internal/service"
)

// SetupRoutes registers the HTTP API and wraps the mux with recovery,
// request logging and CORS.
func SetupRoutes(svc *service.PredictionService, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.RootHandler())
	mux.HandleFunc("POST /predict", handler.PredictHandler(svc, cfg, logger))
	mux.HandleFunc("GET /info", handler.InfoHandler(svc))

	var h http.Handler = mux
	h = middleware.Recover(logger)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CORS(cfg.AllowedOrigins)(h)
	return h
}
