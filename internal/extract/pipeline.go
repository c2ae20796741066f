// Package extract reconstructs structured scoreboard tables from unordered
// OCR text detections. Given a bag of (polygon, text, confidence) spans it
// infers row structure from spatial geometry alone: detections are grouped
// into horizontal bands, each band is split into a player name and numeric
// tokens, and qualifying bands become PlayerRecords in top-to-bottom order.
//
// The pipeline is pure and stateless; every call is independent given its
// input, so concurrent extraction of independent images needs no
// coordination.
package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDetections reports that the OCR engine produced no usable detections
// after confidence filtering. Terminal for that image; the caller should
// prompt for a better-quality capture.
var ErrNoDetections = errors.New("no text detected in image")

// NoValidRowsError reports that rows were formed but none met the
// acceptance threshold. It carries the full per-row report so an operator
// can tune the capture or fall back to manual entry.
type NoValidRowsError struct {
	Diagnostics []RowDiagnostic
}

func (e *NoValidRowsError) Error() string {
	return fmt.Sprintf("no valid player rows among %d detected rows", len(e.Diagnostics))
}

// Result is a successful extraction: at least one reconstructed record in
// scoreboard order, plus diagnostics for any rows skipped along the way.
type Result struct {
	Records []PlayerRecord  `json:"records"`
	Skipped []RowDiagnostic `json:"skipped,omitempty"`
}

// Extract reconstructs scoreboard rows from one image's OCR detections.
// Row-level failures are isolated: a bad row contributes a diagnostic and
// processing continues, so one garbled line never costs the rest of the
// image. Records preserve the top-to-bottom row order.
func Extract(raw []RawDetection) (*Result, error) {
	detections := normalize(raw)
	if len(detections) == 0 {
		return nil, ErrNoDetections
	}

	rows := groupRows(detections)

	result := &Result{}
	for i, row := range rows {
		tokens := tokenizeRow(row)
		record, err := assembleRecord(tokens, len(result.Records)+1)
		if err != nil {
			result.Skipped = append(result.Skipped, RowDiagnostic{
				RowIndex:    i,
				Text:        rowText(row),
				Numbers:     tokens.numbers,
				NumberCount: len(tokens.numbers),
				Reason:      err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, record)
	}

	if len(result.Records) == 0 {
		return nil, &NoValidRowsError{Diagnostics: result.Skipped}
	}

	return result, nil
}

// rowText joins a row's detections for diagnostics, left to right.
func rowText(row Row) string {
	parts := make([]string, len(row))
	for i, d := range row {
		parts[i] = d.Text
	}
	return strings.Join(parts, " ")
}
