// Package screenshot turns uploaded scoreboard images into reconstructed
// player tables by running each image through OCR and the extraction
// pipeline, preserving image-submission order.
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/youngbuffalo/scoreline/internal/extract"
)

// WordDetector is the upstream OCR collaborator: word-level text detection
// with bounding polygons and confidence.
type WordDetector interface {
	DetectWords(imageData []byte) ([]extract.RawDetection, error)
}

// ImageReport describes the outcome for one submitted image.
type ImageReport struct {
	ImageIndex  int                     `json:"image_index"`
	RecordCount int                     `json:"record_count"`
	Skipped     []extract.RowDiagnostic `json:"skipped,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// Extraction is the combined result for one team's batch of screenshots:
// accepted records concatenated in image-submission order, plus a per-image
// report. No cross-image deduplication or merging happens here; that policy
// belongs to the review layer.
type Extraction struct {
	Records []extract.PlayerRecord `json:"records"`
	Images  []ImageReport          `json:"images"`
}

// Ingester runs the OCR + extraction pipeline over screenshot batches.
type Ingester struct {
	detector WordDetector
	logger   *log.Logger
}

// NewIngester creates an ingester over the given OCR collaborator.
func NewIngester(detector WordDetector, logger *log.Logger) *Ingester {
	if logger == nil {
		logger = log.New(log.Writer(), "[screenshot] ", log.LstdFlags)
	}
	return &Ingester{detector: detector, logger: logger}
}

// Ingest extracts player records from each image in order. Per-image
// failures (unreadable image, no detections, no valid rows) are recorded in
// that image's report and never abort the batch. An error is returned only
// when no image in the batch produced any records.
func (ing *Ingester) Ingest(ctx context.Context, images [][]byte) (*Extraction, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images submitted")
	}

	extraction := &Extraction{}
	for i, image := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report := ImageReport{ImageIndex: i}

		raw, err := ing.detector.DetectWords(image)
		if err != nil {
			ing.logger.Printf("image %d: OCR failed: %v", i, err)
			report.Error = err.Error()
			extraction.Images = append(extraction.Images, report)
			continue
		}

		result, err := extract.Extract(raw)
		if err != nil {
			ing.logger.Printf("image %d: extraction failed: %v", i, err)
			report.Error = err.Error()

			var noValid *extract.NoValidRowsError
			if errors.As(err, &noValid) {
				report.Skipped = noValid.Diagnostics
			}
			extraction.Images = append(extraction.Images, report)
			continue
		}

		report.RecordCount = len(result.Records)
		report.Skipped = result.Skipped
		extraction.Images = append(extraction.Images, report)
		extraction.Records = append(extraction.Records, result.Records...)
	}

	if len(extraction.Records) == 0 {
		return extraction, fmt.Errorf("no player rows extracted from %d image(s)", len(images))
	}

	return extraction, nil
}
