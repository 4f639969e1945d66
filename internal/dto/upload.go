package dto

import "io"

// Upload is a single file received by the predict endpoint.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
