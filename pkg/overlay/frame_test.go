package overlay

import (
	"math"
	"testing"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestFrameIndex(t *testing.T) {
	cases := []struct {
		name string
		t    float64
		fps  float64
		want int
	}{
		{"start", 0, 30, 0},
		{"one second at 30fps", 1.0, 30, 30},
		{"floors partial frames", 1.0 / 30 * 2.5, 30, 2},
		{"25fps", 2.0, 25, 50},
		{"beyond duration", 1000, 30, 30000},
		{"negative time", -1, 30, 0},
		{"NaN time", math.NaN(), 30, 0},
		{"zero fps falls back to 30", 1.0, 0, 30},
		{"negative fps falls back to 30", 2.0, -24, 60},
		{"NaN fps falls back to 30", 1.0, math.NaN(), 30},
		{"infinite time", math.Inf(1), 30, NoFrame},
		{"overflowing time", 1e300, 30, NoFrame},
		{"past 32 bits", 1e8, 30, 3000000000},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FrameIndex(c.t, c.fps))
		})
	}
}

func TestFrameIndexMonotonic(t *testing.T) {
	for _, fps := range []float64{12, 23.976, 25, 29.97, 30, 60} {
		prev := FrameIndex(0, fps)
		for i := 1; i <= 5000; i++ {
			tm := float64(i) * 0.0137
			cur := FrameIndex(tm, fps)
			if cur < prev {
				t.Fatalf("frame index decreased at t=%v fps=%v: %d < %d", tm, fps, cur, prev)
			}
			assert.Equal(t, int(math.Floor(tm*fps)), cur)
			prev = cur
		}
	}
}

func TestEventFrame(t *testing.T) {
	e := models.Event{Type: models.EventPopUp, Timestamp: 2.0, Confidence: 0.9}
	assert.Equal(t, 60, EventFrame(e, 30))
	assert.Equal(t, 60, EventFrame(e, 0))
}

func TestNormalizeFPS(t *testing.T) {
	assert.Equal(t, 24.0, NormalizeFPS(24))
	assert.Equal(t, 30.0, NormalizeFPS(0))
	assert.Equal(t, 30.0, NormalizeFPS(math.Inf(1)))
}
