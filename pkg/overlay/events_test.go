package overlay

import (
	"math"
	"testing"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestEventProximity(t *testing.T) {
	popUp := models.Event{Type: models.EventPopUp, Timestamp: 2.0, Confidence: 0.8}
	idx := NewEventIndex([]models.Event{popUp}, 30)

	assert.Equal(t, []models.Event{popUp}, idx.Near(58, 5))
	assert.Empty(t, idx.Near(50, 5))
	assert.Empty(t, idx.Near(55, 5), "distance equal to the tolerance is outside")
	assert.Equal(t, []models.Event{popUp}, idx.Near(64, 5))
	assert.Empty(t, idx.Near(65, 5))
}

func TestEventProximitySymmetric(t *testing.T) {
	const tolerance = 5
	for _, eventFrame := range []int{0, 3, 60, 61, 450} {
		e := models.Event{Type: models.EventTurn, Timestamp: (float64(eventFrame) + 0.5) / 30}
		idx := NewEventIndex([]models.Event{e}, 30)
		for current := eventFrame - 10; current <= eventFrame+10; current++ {
			active := current > eventFrame-tolerance && current < eventFrame+tolerance
			assert.Equal(t, active, len(idx.Near(current, tolerance)) == 1, "event %d current %d", eventFrame, current)
			assert.Equal(t, active, len(NearbyEvents([]models.Event{e}, current, 30, tolerance)) == 1)
		}
	}
}

func TestEventProximityReturnsAllMatches(t *testing.T) {
	events := []models.Event{
		{Type: models.EventTurn, Timestamp: 3.0, Confidence: 0.1},
		{Type: models.EventPopUp, Timestamp: 2.0, Confidence: 0.2},
		{Type: models.EventTurn, Timestamp: 2.05, Confidence: 0.05},
		{Type: models.EventPopUp, Timestamp: 2.0, Confidence: 0.99},
	}
	idx := NewEventIndex(events, 30)

	want := []models.Event{events[1], events[3], events[2]}
	if diff := cmp.Diff(want, idx.Near(61, 5)); diff != "" {
		t.Errorf("highlights mismatch (-want +got):\n%s", diff)
	}

	//confidence never filters
	assert.Len(t, NearbyEvents(events, 61, 30, 5), 3)
}

func TestEventIndexMatchesLinearScan(t *testing.T) {
	var events []models.Event
	for i := 0; i < 40; i++ {
		events = append(events, models.Event{Type: models.EventTurn, Timestamp: float64(i*7%23) * 0.37})
	}
	idx := NewEventIndex(events, 25)

	for current := -10; current < 300; current++ {
		got := idx.Near(current, 5)
		want := NearbyEvents(events, current, 25, 5)
		assert.ElementsMatch(t, want, got, "current %d", current)
	}
}

func TestEventIndexEmpty(t *testing.T) {
	idx := NewEventIndex(nil, 30)
	assert.Empty(t, idx.Near(0, 5))
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 30.0, NewEventIndex(nil, -1).FPS())
}

func TestEventIndexSkipsUnusableTimestamps(t *testing.T) {
	popUp := models.Event{Type: models.EventPopUp, Timestamp: 0, Confidence: 0.7}
	events := []models.Event{
		{Type: models.EventTurn, Timestamp: math.NaN()},
		{Type: models.EventTurn, Timestamp: -1},
		{Type: models.EventTurn, Timestamp: math.Inf(1)},
		{Type: models.EventTurn, Timestamp: 1e300},
		popUp,
	}
	idx := NewEventIndex(events, 30)

	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, []models.Event{popUp}, idx.Near(0, 5))
	assert.Equal(t, []models.Event{popUp}, NearbyEvents(events, 0, 30, 5))
}
