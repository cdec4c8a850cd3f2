package overlay

import (
	"math"
	"sort"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
)

type indexedEvent struct {
	frame int
	event models.Event
}

//EventIndex holds a job's events sorted by their frame index for a fixed frame rate
type EventIndex struct {
	fps    float64
	events []indexedEvent
}

//NewEventIndex computes every event's frame once and sorts them (ties keep input order).
//Events without a usable timestamp (NaN, negative, infinite) are left out.
func NewEventIndex(events []models.Event, fps float64) *EventIndex {
	idx := &EventIndex{
		fps:    NormalizeFPS(fps),
		events: make([]indexedEvent, 0, len(events)),
	}
	for _, e := range events {
		frame, ok := eventFrame(e, idx.fps)
		if !ok {
			continue
		}
		idx.events = append(idx.events, indexedEvent{frame: frame, event: e})
	}
	sort.SliceStable(idx.events, func(i, j int) bool {
		return idx.events[i].frame < idx.events[j].frame
	})
	return idx
}

//FPS returns the frame rate the index was built for
func (idx *EventIndex) FPS() float64 {
	return idx.fps
}

//Len returns the number of indexed events
func (idx *EventIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.events)
}

//Near returns every event with |eventFrame - current| < tolerance, ordered by frame.
//Confidence is not taken into account.
func (idx *EventIndex) Near(current, tolerance int) []models.Event {
	if idx.Len() == 0 || tolerance <= 0 {
		return nil
	}

	start := sort.Search(len(idx.events), func(i int) bool {
		return idx.events[i].frame > current-tolerance
	})

	var out []models.Event
	for i := start; i < len(idx.events) && idx.events[i].frame < current+tolerance; i++ {
		out = append(out, idx.events[i].event)
	}
	return out
}

//NearbyEvents is the unindexed version of EventIndex.Near, preserving input order.
//Fine for one-off queries, use an EventIndex inside a render loop.
func NearbyEvents(events []models.Event, current int, fps float64, tolerance int) []models.Event {
	var out []models.Event
	for _, e := range events {
		frame, ok := eventFrame(e, fps)
		if !ok {
			continue
		}
		d := frame - current
		if d < 0 {
			d = -d
		}
		if d < tolerance {
			out = append(out, e)
		}
	}
	return out
}

func eventFrame(e models.Event, fps float64) (int, bool) {
	if !(e.Timestamp >= 0) || math.IsInf(e.Timestamp, 1) {
		return 0, false
	}
	frame := EventFrame(e, fps)
	return frame, frame != NoFrame
}
