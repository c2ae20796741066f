package extract

import "strings"

// minConfidence is the floor below which OCR detections are discarded.
// Deliberately low: later stages are better at filtering noise than this
// one is at telling noise from real data. The boundary is exclusive, so a
// detection at exactly 0.10 is dropped.
const minConfidence = 0.10

// Point is a pixel coordinate in the source screenshot.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawDetection is one OCR-recognized text span exactly as the engine
// supplies it: a four-corner bounding polygon, the recognized text, and a
// confidence score in [0,1].
type RawDetection struct {
	Polygon    [4]Point `json:"polygon"`
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
}

// Detection is a normalized detection anchored by the left edge and the
// vertical center of its bounding polygon. Immutable once created.
type Detection struct {
	Text       string
	Confidence float64
	LeftX      float64
	CenterY    float64
}

// normalize converts raw OCR output into a flat list of Detections,
// dropping low-confidence spans and trimming surrounding whitespace.
func normalize(raw []RawDetection) []Detection {
	detections := make([]Detection, 0, len(raw))
	for _, r := range raw {
		if r.Confidence <= minConfidence {
			continue
		}

		leftX := r.Polygon[0].X
		sumY := 0.0
		for _, p := range r.Polygon {
			if p.X < leftX {
				leftX = p.X
			}
			sumY += p.Y
		}

		detections = append(detections, Detection{
			Text:       strings.TrimSpace(r.Text),
			Confidence: r.Confidence,
			LeftX:      leftX,
			CenterY:    sumY / float64(len(r.Polygon)),
		})
	}

	return detections
}
