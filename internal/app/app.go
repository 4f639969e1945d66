package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"yoloserver/internal/config"
	"yoloserver/internal/logger"
	"yoloserver/internal/route"
	"yoloserver/internal/service"
	"yoloserver/internal/service/ai"
	"yoloserver/internal/service/ai/yolo"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	detector *yolo.Detector
	server   *http.Server
}

// NewApp loads configuration and the model. The model is fully loaded before
// any request can be served.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{
		Directory: cfg.LogDirectory,
		Level:     cfg.LogLevel,
		Console:   true,
	})
	if err != nil {
		return nil, err
	}

	names, err := ai.LoadClassNames(cfg.NamesPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		log.Warning("Class names file %s not found, every class will be reported as %q", cfg.NamesPath, ai.UnknownClass)
	}

	detector, err := yolo.NewDetector(yolo.Options{
		ModelPath:           cfg.ModelPath,
		Workers:             cfg.InferenceWorkers,
		InputSize:           cfg.InputSize,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		IoUThreshold:        cfg.IoUThreshold,
	}, names, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	svc := service.NewPredictionService(detector, log)

	return &App{
		config:   cfg,
		logger:   log,
		detector: detector,
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           route.SetupRoutes(svc, cfg, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.logger.Sync()
	defer a.detector.Close()

	a.logger.Info("🚀 %s v%s", config.Title, config.Version)
	a.logger.Info("📍 URL: http://localhost:%d", a.config.Port)
	a.logger.Info("🤖 AI Model: %s", a.config.ModelPath)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}
