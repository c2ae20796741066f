// Package ocr wraps the Tesseract OCR engine (via gosseract) as the
// upstream text-detection collaborator: per submitted screenshot it yields
// word-level detections with bounding polygons and confidence scores, in
// the shape the extraction pipeline consumes. Tesseract must be installed
// on the system (apt-get install tesseract-ocr / brew install tesseract).
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"github.com/youngbuffalo/scoreline/internal/extract"
)

// Client wraps Tesseract for word-level detection.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when no longer needed to release the
// underlying Tesseract resources.
func New(language string) (*Client, error) {
	client := gosseract.NewClient()

	if language == "" {
		language = "eng"
	}
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting OCR language: %w", err)
	}

	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// DetectWords runs word-level OCR on image data (PNG, JPEG, TIFF) and
// returns one raw detection per recognized word. Tesseract reports
// confidence on a 0-100 scale; detections are normalized to [0,1] so the
// pipeline's confidence floor applies uniformly.
func (c *Client) DetectWords(imageData []byte) ([]extract.RawDetection, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("setting image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("detecting words: %w", err)
	}

	detections := make([]extract.RawDetection, 0, len(boxes))
	for _, box := range boxes {
		minX := float64(box.Box.Min.X)
		minY := float64(box.Box.Min.Y)
		maxX := float64(box.Box.Max.X)
		maxY := float64(box.Box.Max.Y)

		detections = append(detections, extract.RawDetection{
			Polygon: [4]extract.Point{
				{X: minX, Y: minY},
				{X: maxX, Y: minY},
				{X: maxX, Y: maxY},
				{X: minX, Y: maxY},
			},
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
		})
	}

	return detections, nil
}
