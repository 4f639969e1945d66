package ai

import (
	"context"
	"errors"
	"image"
)

// ErrInference wraps every failure raised while running the model.
var ErrInference = errors.New("inference failed")

// RawDetection is one model output row: box corners in pixels of the input
// image, a confidence in [0,1] and the class id as the model emits it.
type RawDetection struct {
	Left       float64
	Top        float64
	Right      float64
	Bottom     float64
	Confidence float64
	ClassID    float64
}

// Detector runs object detection on a decoded image.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]RawDetection, error)
	Names() ClassNames
}
