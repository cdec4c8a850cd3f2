package overlay

import (
	"fmt"
	"image/color"
	"math"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
)

//Marker is an event placed on the timeline, Position is a fraction of the duration in [0,1]
type Marker struct {
	Event    models.Event
	Position float64
	Label    string
	Color    color.RGBA
}

//Timeline maps events to scrub bar positions and clicks back to seek timestamps.
//It works on continuous time, not on frames.
type Timeline struct {
	events   []models.Event
	duration float64
	seek     func(float64)
	style    Style
}

//NewTimeline returns a timeline over given events. seek receives the timestamps of clicks
//and is usually Renderer.Seek.
func NewTimeline(events []models.Event, duration float64, seek func(float64)) *Timeline {
	return &Timeline{
		events:   events,
		duration: duration,
		seek:     seek,
		style:    DefaultStyle(),
	}
}

//Enabled reports whether positions can be computed (duration is a positive number)
func (tl *Timeline) Enabled() bool {
	return tl.duration > 0 && !math.IsInf(tl.duration, 1)
}

//Duration returns the timeline duration in seconds
func (tl *Timeline) Duration() float64 {
	return tl.duration
}

//Markers places every event on the timeline, in input order. Empty when the timeline is disabled.
func (tl *Timeline) Markers() []Marker {
	if !tl.Enabled() {
		return nil
	}

	markers := make([]Marker, 0, len(tl.events))
	for _, e := range tl.events {
		markers = append(markers, Marker{
			Event:    e,
			Position: clamp01(e.Timestamp / tl.duration),
			Label:    EventLabel(e),
			Color:    tl.style.EventColor(e.Type),
		})
	}
	return markers
}

//Click converts a click at fractional position p into a seek timestamp (p * duration)
//and delivers it to the seek callback
func (tl *Timeline) Click(p float64) (float64, bool) {
	if !tl.Enabled() || math.IsNaN(p) {
		return 0, false
	}
	ts := clamp01(p) * tl.duration
	if tl.seek != nil {
		tl.seek(ts)
	}
	return ts, true
}

//SeekTo seeks to the i-th event's own timestamp
func (tl *Timeline) SeekTo(i int) (float64, bool) {
	if !tl.Enabled() || i < 0 || i >= len(tl.events) {
		return 0, false
	}
	ts := tl.events[i].Timestamp
	if tl.seek != nil {
		tl.seek(ts)
	}
	return ts, true
}

//EventLabel describes an event for legends and tooltips: "Pop-up at 2.0s"
func EventLabel(e models.Event) string {
	return fmt.Sprintf("%s at %.1fs", e.Type.Label(), e.Timestamp)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
