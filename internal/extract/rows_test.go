package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func det(text string, x, y float64) Detection {
	return Detection{Text: text, Confidence: 0.9, LeftX: x, CenterY: y}
}

func TestGroupRowsOrdering(t *testing.T) {
	// Deliberately shuffled input: two visual rows at y=100 and y=200.
	detections := []Detection{
		det("b2", 120, 200),
		det("a2", 150, 100),
		det("b1", 30, 200),
		det("a1", 10, 100),
	}

	rows := groupRows(detections)
	require.Len(t, rows, 2)

	assert.Equal(t, "a1", rows[0][0].Text)
	assert.Equal(t, "a2", rows[0][1].Text)
	assert.Equal(t, "b1", rows[1][0].Text)
	assert.Equal(t, "b2", rows[1][1].Text)
}

func TestGroupRowsBandTolerance(t *testing.T) {
	// 30 units from the running average stays in the row; more starts a
	// new one.
	sameBand := groupRows([]Detection{
		det("x", 10, 100),
		det("y", 50, 130),
	})
	require.Len(t, sameBand, 1)

	split := groupRows([]Detection{
		det("x", 10, 100),
		det("y", 50, 131),
	})
	require.Len(t, split, 2)
}

func TestGroupRowsRunningAverage(t *testing.T) {
	// The comparison is against the average of the open buffer, not the
	// nearest member: 100 and 120 average to 110, so 140 (30 away from the
	// average) still joins even though it is 40 from the first detection.
	rows := groupRows([]Detection{
		det("a", 10, 100),
		det("b", 50, 120),
		det("c", 90, 140),
	})

	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 3)
}

func TestGroupRowsEmpty(t *testing.T) {
	assert.Nil(t, groupRows(nil))
}

func TestGroupRowsSingleDetection(t *testing.T) {
	rows := groupRows([]Detection{det("only", 10, 100)})

	require.Len(t, rows, 1)
	require.Len(t, rows[0], 1)
}
