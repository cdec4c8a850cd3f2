package overlay

import (
	"math"
	"testing"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineMarkers(t *testing.T) {
	events := []models.Event{
		{Type: models.EventPopUp, Timestamp: 2.0, Confidence: 0.7},
		{Type: models.EventTurn, Timestamp: 15.0, Confidence: 0.4},
		{Type: models.EventTurn, Timestamp: 30.0, Confidence: 0.4},
	}
	tl := NewTimeline(events, 30, nil)

	markers := tl.Markers()
	require.Len(t, markers, 3)
	assert.InDelta(t, 2.0/30, markers[0].Position, 1e-12)
	assert.Equal(t, 0.5, markers[1].Position)
	assert.Equal(t, 1.0, markers[2].Position)
	assert.Equal(t, "Pop-up at 2.0s", markers[0].Label)
	assert.Equal(t, "Turn at 15.0s", markers[1].Label)
	assert.Equal(t, DefaultStyle().PopUpColor, markers[0].Color)
	assert.Equal(t, DefaultStyle().TurnColor, markers[1].Color)
}

func TestTimelineDisabled(t *testing.T) {
	events := []models.Event{{Type: models.EventPopUp, Timestamp: 2.0}}
	for _, d := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		seeked := false
		tl := NewTimeline(events, d, func(float64) { seeked = true })

		assert.False(t, tl.Enabled())
		assert.Empty(t, tl.Markers())
		_, ok := tl.Click(0.5)
		assert.False(t, ok)
		_, ok = tl.SeekTo(0)
		assert.False(t, ok)
		assert.False(t, seeked)
	}
}

func TestTimelineClick(t *testing.T) {
	var seeks []float64
	tl := NewTimeline(nil, 20, func(ts float64) { seeks = append(seeks, ts) })

	ts, ok := tl.Click(0.25)
	require.True(t, ok)
	assert.Equal(t, 5.0, ts)

	ts, _ = tl.Click(1.5)
	assert.Equal(t, 20.0, ts)
	ts, _ = tl.Click(-1)
	assert.Equal(t, 0.0, ts)

	_, ok = tl.Click(math.NaN())
	assert.False(t, ok)

	assert.Equal(t, []float64{5, 20, 0}, seeks)
}

func TestTimelineSeekTo(t *testing.T) {
	var got float64
	events := []models.Event{{Type: models.EventTurn, Timestamp: 4.5}}
	tl := NewTimeline(events, 10, func(ts float64) { got = ts })

	ts, ok := tl.SeekTo(0)
	require.True(t, ok)
	assert.Equal(t, 4.5, ts)
	assert.Equal(t, 4.5, got)

	_, ok = tl.SeekTo(1)
	assert.False(t, ok)
}

func TestEventLabel(t *testing.T) {
	assert.Equal(t, "Turn at 4.5s", EventLabel(models.Event{Type: models.EventTurn, Timestamp: 4.49}))
	assert.Equal(t, "spin at 1.0s", EventLabel(models.Event{Type: "spin", Timestamp: 1}))
}
