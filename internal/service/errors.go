package service

import (
	"errors"

	"yoloserver/internal/service/ai"
	"yoloserver/internal/service/imagecodec"
)

// InvalidFileTypeMessage is returned to clients uploading a non-image file.
const InvalidFileTypeMessage = "Invalid file type. Please upload an image."

var (
	// ErrInvalidInput marks uploads rejected before any processing.
	ErrInvalidInput = errors.New(InvalidFileTypeMessage)
	// ErrIO marks failures reading the upload body.
	ErrIO = errors.New("failed to read upload")
	// ErrDecode marks bytes that are not a decodable image.
	ErrDecode = imagecodec.ErrDecode
	// ErrInference marks failures inside the detection model.
	ErrInference = ai.ErrInference
)

// Kind returns a short label for err, used as a log field.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrInference):
		return "inference"
	default:
		return "unknown"
	}
}

// IsClientError reports whether err should be answered with a 4xx status.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
