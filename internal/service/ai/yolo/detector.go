// Package yolo runs ONNX YOLOv8 exports through the OpenCV DNN module.
package yolo

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"yoloserver/internal/logger"
	"yoloserver/internal/service/ai"
)

// padValue is the letterbox fill colour used by ultralytics.
var padValue = color.RGBA{R: 114, G: 114, B: 114, A: 0}

// Options configures model loading and output filtering.
type Options struct {
	ModelPath           string
	Workers             int
	InputSize           int
	ConfidenceThreshold float64
	IoUThreshold        float64
}

// Detector is an ai.Detector backed by a pool of independently loaded networks.
// A gocv.Net is not safe for concurrent Forward calls, so each request borrows one.
type Detector struct {
	pool      chan gocv.Net
	nets      []gocv.Net
	names     ai.ClassNames
	inputSize int
	conf      float32
	iou       float32
	logger    *logger.Logger
	closeOnce sync.Once
}

// NewDetector loads opts.Workers copies of the model. The class table is shared
// and must not be modified afterwards.
func NewDetector(opts Options, names ai.ClassNames, logger *logger.Logger) (*Detector, error) {
	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s: %w", opts.ModelPath, err)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	d := &Detector{
		pool:      make(chan gocv.Net, opts.Workers),
		names:     names,
		inputSize: opts.InputSize,
		conf:      float32(opts.ConfidenceThreshold),
		iou:       float32(opts.IoUThreshold),
		logger:    logger,
	}

	for i := 0; i < opts.Workers; i++ {
		net, err := initializeNet(opts.ModelPath)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.nets = append(d.nets, net)
		d.pool <- net
	}

	d.logger.Info("Detection network loaded from %s (%d copies, %d classes)", opts.ModelPath, opts.Workers, len(names))
	return d, nil
}

// initializeNet loads the DNN network and sets backend/target preferences.
func initializeNet(modelPath string) (gocv.Net, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		net.Close()
		return net, fmt.Errorf("failed to load network from %s", modelPath)
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return net, fmt.Errorf("failed to set preferable backend or target")
	}
	return net, nil
}

// Names returns the class table.
func (d *Detector) Names() ai.ClassNames {
	return d.names
}

// Detect runs the network on img and returns boxes in img's pixel space.
func (d *Detector) Detect(ctx context.Context, img image.Image) ([]ai.RawDetection, error) {
	var net gocv.Net
	select {
	case net = <-d.pool:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ai.ErrInference, ctx.Err())
	}
	defer func() { d.pool <- net }()

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert image: %v", ai.ErrInference, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: converted image is empty", ai.ErrInference)
	}

	width, height := mat.Cols(), mat.Rows()
	side := width
	if height > side {
		side = height
	}

	padded := gocv.NewMat()
	defer padded.Close()
	if err := letterbox(mat, &padded, side); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInference, err)
	}

	// RGB, 0-1, no mean subtraction
	blob := gocv.BlobFromImage(padded, 1.0/255.0, image.Pt(d.inputSize, d.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	net.SetInput(blob, "")
	output := net.Forward("")
	defer output.Close()

	if output.Empty() {
		return nil, fmt.Errorf("%w: network returned no output", ai.ErrInference)
	}

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read output: %v", ai.ErrInference, err)
	}

	cands, err := decodeOutput(data, output.Size(), d.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInference, err)
	}
	if len(cands) == 0 {
		return []ai.RawDetection{}, nil
	}

	boxes, scores := rects(cands)
	keep := gocv.NMSBoxes(boxes, scores, d.conf, d.iou)

	scale := float64(side) / float64(d.inputSize)
	return toRaw(cands, keep, scale, width, height), nil
}

// letterbox pads src on the right and bottom into a side x side square.
func letterbox(src gocv.Mat, dst *gocv.Mat, side int) error {
	if err := gocv.CopyMakeBorder(src, dst, 0, side-src.Rows(), 0, side-src.Cols(), gocv.BorderConstant, padValue); err != nil {
		return fmt.Errorf("failed to letterbox image: %w", err)
	}
	if dst.Empty() {
		return fmt.Errorf("failed to letterbox image")
	}
	return nil
}

// Close releases every loaded network.
func (d *Detector) Close() error {
	d.closeOnce.Do(func() {
		for _, net := range d.nets {
			net.Close()
		}
	})
	return nil
}

var _ ai.Detector = (*Detector)(nil)
