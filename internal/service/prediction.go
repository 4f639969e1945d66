package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"yoloserver/internal/dto"
	"yoloserver/internal/logger"
	"yoloserver/internal/service/ai"
	"yoloserver/internal/service/imagecodec"
)

// PredictionService validates uploads, runs the detector and shapes its output.
type PredictionService struct {
	detector ai.Detector
	logger   *logger.Logger
}

// NewPredictionService creates a service around an already loaded detector.
func NewPredictionService(detector ai.Detector, logger *logger.Logger) *PredictionService {
	return &PredictionService{
		detector: detector,
		logger:   logger,
	}
}

// Predict runs detection on a single upload. Non-image content types fail with
// ErrInvalidInput before the body is read.
func (s *PredictionService) Predict(ctx context.Context, upload dto.Upload) (*dto.PredictionResponse, error) {
	if !IsImageContentType(upload.ContentType) {
		return nil, ErrInvalidInput
	}

	start := time.Now()

	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	img, err := imagecodec.Decode(data)
	if err != nil {
		return nil, err
	}

	raw, err := s.detector.Detect(ctx, img)
	if err != nil {
		return nil, err
	}

	detections := BuildDetections(raw, s.detector.Names())

	s.logger.Info("Detected %d objects in %s (%dx%d, %s)",
		len(detections), upload.Filename, img.Bounds().Dx(), img.Bounds().Dy(), time.Since(start).Round(time.Millisecond))

	return &dto.PredictionResponse{Detections: detections}, nil
}

// ClassLabels returns a copy of the class table keyed by the class_id the
// model reports, so sparse tables keep their ids.
func (s *PredictionService) ClassLabels() map[int]string {
	return lo.Assign(s.detector.Names())
}

// BuildDetections maps raw model rows to response records. Class ids are
// truncated toward zero and resolved against names.
func BuildDetections(raw []ai.RawDetection, names ai.ClassNames) []dto.Detection {
	return lo.Map(raw, func(det ai.RawDetection, _ int) dto.Detection {
		classID := int(math.Trunc(det.ClassID))
		return dto.Detection{
			BBox: dto.BoundingBox{
				XMin: det.Left,
				YMin: det.Top,
				XMax: det.Right,
				YMax: det.Bottom,
			},
			Confidence: det.Confidence,
			ClassID:    classID,
			ClassName:  names.Lookup(classID),
		}
	})
}

// IsImageContentType reports whether a declared media type is an image type.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
