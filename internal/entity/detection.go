package entity

// BoundingBox is the pixel-space box reported by the AI detection service,
// in the resized frame's coordinates.
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (b BoundingBox) PixelWidth() int {
	return b.X2 - b.X1
}

type Detection struct {
	Label      string      `json:"label"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"bbox"`
}

// DetectionFrameResult is the full per-frame response from the detection service.
type DetectionFrameResult struct {
	Detections []Detection `json:"detections"`
	ModelName  string      `json:"model_name,omitempty"`
	InferentMS float64     `json:"inference_ms,omitempty"`
}
