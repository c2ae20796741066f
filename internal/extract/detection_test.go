package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawDet builds a detection with a rectangular polygon whose left edge is x
// and whose vertical center is y.
func rawDet(text string, x, y, conf float64) RawDetection {
	return RawDetection{
		Polygon: [4]Point{
			{X: x, Y: y - 10},
			{X: x + 40, Y: y - 10},
			{X: x + 40, Y: y + 10},
			{X: x, Y: y + 10},
		},
		Text:       text,
		Confidence: conf,
	}
}

func TestNormalizeConfidenceFloor(t *testing.T) {
	detections := normalize([]RawDetection{
		rawDet("dropped", 0, 100, 0.10),
		rawDet("kept", 0, 100, 0.11),
	})

	require.Len(t, detections, 1)
	assert.Equal(t, "kept", detections[0].Text)
}

func TestNormalizeAnchors(t *testing.T) {
	// Corners deliberately out of order: left_x must be the minimum X and
	// center_y the mean Y regardless of corner ordering.
	raw := RawDetection{
		Polygon: [4]Point{
			{X: 50, Y: 90},
			{X: 10, Y: 90},
			{X: 50, Y: 110},
			{X: 10, Y: 110},
		},
		Text:       "Ztee",
		Confidence: 0.9,
	}

	detections := normalize([]RawDetection{raw})
	require.Len(t, detections, 1)
	assert.Equal(t, 10.0, detections[0].LeftX)
	assert.Equal(t, 100.0, detections[0].CenterY)
}

func TestNormalizeTrimsWhitespace(t *testing.T) {
	detections := normalize([]RawDetection{rawDet("  Ztee \n", 0, 100, 0.9)})

	require.Len(t, detections, 1)
	assert.Equal(t, "Ztee", detections[0].Text)
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, normalize(nil))
}
