package dto

// BoundingBox holds box corners in pixels of the decoded image.
type BoundingBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Detection represents one detected object in a prediction response.
type Detection struct {
	BBox       BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
	ClassID    int         `json:"class_id"`
	ClassName  string      `json:"class_name"`
}

// PredictionResponse is the body returned by POST /predict.
type PredictionResponse struct {
	Detections []Detection `json:"detections"`
}
