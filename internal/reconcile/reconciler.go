// Package reconcile merges OCR-extracted player rows with operator
// corrections submitted during review.
package reconcile

import (
	"fmt"
	"time"

	"github.com/youngbuffalo/scoreline/internal/extract"
)

// Strategy defines how to merge conflicting rows for the same player.
type Strategy string

const (
	// PreferManual prioritizes operator-entered rows over OCR (default).
	PreferManual Strategy = "prefer_manual"

	// PreferOCR prioritizes OCR rows, keeping manual rows only for
	// players OCR never produced.
	PreferOCR Strategy = "prefer_ocr"

	// MergeMissing takes the manual row but fills zero-valued stats from
	// the matching OCR row.
	MergeMissing Strategy = "merge_missing"
)

// Metrics tracks reconciliation statistics.
type Metrics struct {
	TotalReconciliations int
	Conflicts            int
	ManualPreferred      int
	OCRPreferred         int
	LastReconciliation   time.Time
}

// Reconciler merges player tables from the OCR and manual sources.
type Reconciler struct {
	strategy Strategy
	metrics  *Metrics
}

// NewReconciler creates a reconciler with the given strategy.
func NewReconciler(strategy Strategy) (*Reconciler, error) {
	switch strategy {
	case "":
		strategy = PreferManual
	case PreferManual, PreferOCR, MergeMissing:
	default:
		return nil, fmt.Errorf("unknown reconcile strategy %q", strategy)
	}

	return &Reconciler{
		strategy: strategy,
		metrics:  &Metrics{},
	}, nil
}

// Metrics returns a snapshot of the reconciler's counters.
func (r *Reconciler) Metrics() Metrics {
	return *r.metrics
}

// Reconcile merges OCR rows with manual corrections. Players are matched by
// normalized name. Row order follows the primary source for the strategy,
// with unmatched rows from the other source appended in their own order.
func (r *Reconciler) Reconcile(ocrRows, manualRows []extract.PlayerRecord) []extract.PlayerRecord {
	r.metrics.TotalReconciliations++
	r.metrics.LastReconciliation = time.Now()

	if len(manualRows) == 0 {
		r.metrics.OCRPreferred += len(ocrRows)
		return append([]extract.PlayerRecord(nil), ocrRows...)
	}
	if len(ocrRows) == 0 {
		r.metrics.ManualPreferred += len(manualRows)
		return append([]extract.PlayerRecord(nil), manualRows...)
	}

	primary, secondary := manualRows, ocrRows
	if r.strategy == PreferOCR {
		primary, secondary = ocrRows, manualRows
	}

	index := make(map[string]extract.PlayerRecord, len(secondary))
	for _, rec := range secondary {
		index[normalizeName(rec.PlayerName)] = rec
	}

	merged := make([]extract.PlayerRecord, 0, len(primary))
	matched := make(map[string]bool, len(primary))
	for _, rec := range primary {
		key := normalizeName(rec.PlayerName)
		matched[key] = true

		other, ok := index[key]
		if ok && rec != other {
			r.metrics.Conflicts++
		}
		r.countPreference()

		if ok && r.strategy == MergeMissing {
			rec = fillMissing(rec, other)
		}
		merged = append(merged, rec)
	}

	for _, rec := range secondary {
		if !matched[normalizeName(rec.PlayerName)] {
			merged = append(merged, rec)
		}
	}

	return merged
}

func (r *Reconciler) countPreference() {
	if r.strategy == PreferOCR {
		r.metrics.OCRPreferred++
		return
	}
	r.metrics.ManualPreferred++
}

// fillMissing copies stats from donor into any zero-valued field of base.
func fillMissing(base, donor extract.PlayerRecord) extract.PlayerRecord {
	fill := func(dst *int, src int) {
		if *dst == 0 {
			*dst = src
		}
	}
	fill(&base.Defeated, donor.Defeated)
	fill(&base.Assist, donor.Assist)
	fill(&base.Defeated2, donor.Defeated2)
	fill(&base.FunCoin, donor.FunCoin)
	fill(&base.Damage, donor.Damage)
	fill(&base.Tank, donor.Tank)
	fill(&base.Heal, donor.Heal)
	fill(&base.SiegeDamage, donor.SiegeDamage)
	return base
}
