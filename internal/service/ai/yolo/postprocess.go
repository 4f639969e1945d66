package yolo

import (
	"fmt"
	"image"
	"math"
	"sort"

	"yoloserver/internal/service/ai"
)

// candidate is a decoded output row before NMS, in padded-input pixels.
type candidate struct {
	x1, y1, x2, y2 float64
	score          float32
	class          int
}

// decodeOutput turns a YOLOv8 head output into candidates above threshold.
// The tensor is [1, 4+C, N] (cx, cy, w, h, class scores per anchor); a
// transposed [1, N, 4+C] export is accepted too.
func decodeOutput(data []float32, dims []int, threshold float32) ([]candidate, error) {
	if len(dims) != 3 || dims[0] != 1 {
		return nil, fmt.Errorf("unexpected output shape %v", dims)
	}

	attrs, anchors := dims[1], dims[2]
	transposed := false
	if attrs > anchors {
		attrs, anchors = anchors, attrs
		transposed = true
	}
	if attrs <= 4 {
		return nil, fmt.Errorf("output shape %v has no class scores", dims)
	}
	if len(data) < attrs*anchors {
		return nil, fmt.Errorf("output holds %d values, shape %v needs %d", len(data), dims, attrs*anchors)
	}

	at := func(attr, anchor int) float32 {
		if transposed {
			return data[anchor*attrs+attr]
		}
		return data[attr*anchors+anchor]
	}

	var out []candidate
	for i := 0; i < anchors; i++ {
		best, bestClass := float32(-1), -1
		for c := 4; c < attrs; c++ {
			if s := at(c, i); s > best {
				best, bestClass = s, c-4
			}
		}
		if best < threshold {
			continue
		}

		cx, cy := float64(at(0, i)), float64(at(1, i))
		w, h := float64(at(2, i)), float64(at(3, i))
		out = append(out, candidate{
			x1:    cx - w/2,
			y1:    cy - h/2,
			x2:    cx + w/2,
			y2:    cy + h/2,
			score: best,
			class: bestClass,
		})
	}
	return out, nil
}

// rects converts candidates to integer rectangles for NMS.
func rects(cands []candidate) ([]image.Rectangle, []float32) {
	boxes := make([]image.Rectangle, len(cands))
	scores := make([]float32, len(cands))
	for i, c := range cands {
		boxes[i] = image.Rect(
			int(math.Round(c.x1)), int(math.Round(c.y1)),
			int(math.Round(c.x2)), int(math.Round(c.y2)),
		)
		scores[i] = c.score
	}
	return boxes, scores
}

// toRaw maps the kept candidates back to source pixels, clipped to the image,
// sorted by descending confidence.
func toRaw(cands []candidate, keep []int, scale float64, width, height int) []ai.RawDetection {
	out := make([]ai.RawDetection, 0, len(keep))
	for _, idx := range keep {
		if idx < 0 || idx >= len(cands) {
			continue
		}
		c := cands[idx]
		out = append(out, ai.RawDetection{
			Left:       clamp(c.x1*scale, float64(width)),
			Top:        clamp(c.y1*scale, float64(height)),
			Right:      clamp(c.x2*scale, float64(width)),
			Bottom:     clamp(c.y2*scale, float64(height)),
			Confidence: float64(c.score),
			ClassID:    float64(c.class),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func clamp(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
