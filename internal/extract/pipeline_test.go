package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEndToEnd(t *testing.T) {
	// Two visual rows: a full player row and a junk row with only two
	// numbers. Exactly one record comes back; the junk row is explained in
	// the skipped report.
	raw := []RawDetection{
		rawDet("Ztee", 10, 100, 0.9),
		rawDet("16", 120, 100, 0.9),
		rawDet("121", 180, 100, 0.9),
		rawDet("3", 240, 100, 0.9),
		rawDet("0", 280, 100, 0.9),
		rawDet("6896682", 330, 100, 0.9),
		rawDet("2071659", 420, 100, 0.9),
		rawDet("0", 500, 100, 0.9),
		rawDet("773143", 540, 100, 0.9),
		rawDet("5", 120, 160, 0.9),
		rawDet("7", 180, 160, 0.9),
	}

	result, err := Extract(raw)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	assert.Equal(t, PlayerRecord{
		PlayerName:  "Ztee",
		Defeated:    16,
		Assist:      121,
		Defeated2:   3,
		FunCoin:     0,
		Damage:      6896682,
		Tank:        2071659,
		Heal:        0,
		SiegeDamage: 773143,
	}, result.Records[0])

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 1, result.Skipped[0].RowIndex)
	assert.Equal(t, 2, result.Skipped[0].NumberCount)
	assert.Equal(t, []string{"5", "7"}, result.Skipped[0].Numbers)
}

func TestExtractNoDetections(t *testing.T) {
	_, err := Extract(nil)
	assert.ErrorIs(t, err, ErrNoDetections)

	// All detections under the confidence floor is the same terminal case.
	_, err = Extract([]RawDetection{rawDet("Ztee", 10, 100, 0.05)})
	assert.ErrorIs(t, err, ErrNoDetections)
}

func TestExtractNoValidRows(t *testing.T) {
	raw := []RawDetection{
		rawDet("5", 10, 100, 0.9),
		rawDet("7", 60, 100, 0.9),
		rawDet("junk", 10, 200, 0.9),
	}

	_, err := Extract(raw)

	var noValid *NoValidRowsError
	require.True(t, errors.As(err, &noValid))
	require.Len(t, noValid.Diagnostics, 2)
	assert.Equal(t, "5 7", noValid.Diagnostics[0].Text)
	assert.Equal(t, 2, noValid.Diagnostics[0].NumberCount)
	assert.Equal(t, 0, noValid.Diagnostics[1].NumberCount)
}

func TestExtractRejectionBoundaryPermutations(t *testing.T) {
	// Four numbers is accepted and three rejected regardless of where the
	// name sits among the numbers.
	positions := [][]string{
		{"Ztee", "1", "2", "3", "4"},
		{"1", "2", "Ztee", "3", "4"},
		{"1", "2", "3", "4", "Ztee"},
	}

	for _, texts := range positions {
		var raw []RawDetection
		for i, text := range texts {
			raw = append(raw, rawDet(text, float64(10+i*80), 100, 0.9))
		}

		result, err := Extract(raw)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "Ztee", result.Records[0].PlayerName)

		// Drop the last number: three numbers must always be rejected.
		short := raw[:0:0]
		for _, r := range raw {
			if r.Text == "4" {
				continue
			}
			short = append(short, r)
		}
		_, err = Extract(short)
		var noValid *NoValidRowsError
		assert.True(t, errors.As(err, &noValid))
	}
}

func TestExtractRowIsolation(t *testing.T) {
	// A malformed row (overflowing digit run) is skipped without costing
	// the valid row below it.
	raw := []RawDetection{
		rawDet("99999999999999999999999", 10, 100, 0.9),
		rawDet("1", 100, 100, 0.9),
		rawDet("2", 150, 100, 0.9),
		rawDet("3", 200, 100, 0.9),
		rawDet("Ztee", 10, 200, 0.9),
		rawDet("1", 100, 200, 0.9),
		rawDet("2", 150, 200, 0.9),
		rawDet("3", 200, 200, 0.9),
		rawDet("4", 250, 200, 0.9),
	}

	result, err := Extract(raw)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Ztee", result.Records[0].PlayerName)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 0, result.Skipped[0].RowIndex)
}

func TestExtractOrderPreserved(t *testing.T) {
	// Shuffled input still yields records in top-to-bottom row order, and
	// placeholder names count accepted rows, not all rows.
	var raw []RawDetection
	addRow := func(y float64, texts ...string) {
		for i, text := range texts {
			raw = append(raw, rawDet(text, float64(10+i*80), y, 0.9))
		}
	}
	addRow(300, "Charlie", "3", "3", "3", "3")
	addRow(100, "Alpha", "1", "1", "1", "1")
	addRow(200, "2", "2", "2", "2")

	result, err := Extract(raw)
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "Alpha", result.Records[0].PlayerName)
	assert.Equal(t, "Player_2", result.Records[1].PlayerName)
	assert.Equal(t, "Charlie", result.Records[2].PlayerName)
}

func TestExtractDeterministic(t *testing.T) {
	raw := []RawDetection{
		rawDet("Ztee", 10, 100, 0.9),
		rawDet("1", 100, 100, 0.9),
		rawDet("2", 150, 100, 0.9),
		rawDet("3", 200, 100, 0.9),
		rawDet("4", 250, 100, 0.9),
	}

	first, err := Extract(raw)
	require.NoError(t, err)
	second, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
