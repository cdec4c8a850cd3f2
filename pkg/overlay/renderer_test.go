package overlay

import (
	"fmt"
	"image/color"
	"math"
	"testing"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//recordingSurface logs every draw call since the last Clear
type recordingSurface struct {
	width, height int
	clears        int
	ops           []string
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }

func (s *recordingSurface) Resize(width, height int) {
	s.width, s.height = width, height
	s.ops = nil
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.ops = nil
}

func (s *recordingSurface) StrokeRect(r Rect, c color.RGBA, lineWidth float64) {
	s.ops = append(s.ops, fmt.Sprintf("rect %v,%v,%v,%v", r.X1, r.Y1, r.X2, r.Y2))
}

func (s *recordingSurface) Polyline(pts []Point, c color.RGBA, lineWidth float64) {
	s.ops = append(s.ops, fmt.Sprintf("polyline %d", len(pts)))
}

func (s *recordingSurface) FillCircle(center Point, radius float64, c color.RGBA) {
	s.ops = append(s.ops, fmt.Sprintf("circle %v,%v r%v #%02x%02x%02x", center.X, center.Y, radius, c.R, c.G, c.B))
}

func testTracks() []models.TrackFrame {
	return []models.TrackFrame{
		{Frame: 28, BBox: [4]float64{100, 100, 140, 180}, Centroid: [2]float64{120, 140}, TrackID: 1},
		{Frame: 29, BBox: [4]float64{102, 100, 142, 180}, Centroid: [2]float64{122, 140}, TrackID: 1},
		{Frame: 30, BBox: [4]float64{104, 100, 144, 180}, Centroid: [2]float64{124, 140}, TrackID: 1},
		{Frame: 90, BBox: [4]float64{300, 200, 340, 280}, Centroid: [2]float64{320, 240}, TrackID: 1},
	}
}

func testEvents() []models.Event {
	return []models.Event{
		{Type: models.EventPopUp, Timestamp: 1.0, Confidence: 0.9},
		{Type: models.EventTurn, Timestamp: 1.05, Confidence: 0.1},
	}
}

func TestRendererDrawsFrame(t *testing.T) {
	surface := &recordingSurface{}
	r := New(Config{Tracks: testTracks(), Events: testEvents(), FPS: 30}, surface)
	r.OnMetadata(640, 360)

	r.OnTimeUpdate(1.0)

	want := []string{
		"rect 104,100,144,180",
		"polyline 3",
		"circle 124,140 r4 #3b82f6",
		"circle 320,36 r8 #ef4444",
		"circle 320,36 r8 #eab308",
	}
	if diff := cmp.Diff(want, surface.ops); diff != "" {
		t.Errorf("draw calls mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, surface.clears)
}

func TestRendererSinglePointTrajectory(t *testing.T) {
	surface := &recordingSurface{}
	r := New(Config{Tracks: testTracks(), FPS: 30}, surface)
	r.OnMetadata(640, 360)

	r.OnTimeUpdate(3.0)

	assert.Equal(t, []string{"rect 300,200,340,280", "circle 320,240 r4 #3b82f6"}, surface.ops)
}

func TestRendererNoMatchDrawsNothing(t *testing.T) {
	surface := &recordingSurface{}
	r := New(Config{Tracks: testTracks(), Events: testEvents(), FPS: 30}, surface)
	r.OnMetadata(640, 360)

	r.OnTimeUpdate(1.0)
	require.NotEmpty(t, surface.ops)

	r.OnTimeUpdate(2.0)
	assert.Empty(t, surface.ops, "previous frame must be cleared")
	assert.Equal(t, 2, surface.clears)
}

func TestRendererEmptyCollections(t *testing.T) {
	surface := &recordingSurface{}
	r := New(Config{}, surface)
	r.OnMetadata(320, 240)

	for _, tm := range []float64{0, 0.5, 10, -3} {
		require.NoError(t, r.Render(tm))
		assert.Empty(t, surface.ops)
	}
	assert.Equal(t, 30.0, r.FPS())
}

func TestRendererSurfaceNotReady(t *testing.T) {
	surface := &recordingSurface{}
	r := New(Config{Tracks: testTracks(), FPS: 30}, surface)

	assert.NotPanics(t, func() { r.OnTimeUpdate(1.0) })
	assert.ErrorIs(t, r.Render(1.0), models.ErrSurfaceNotReady)
	assert.Equal(t, 0, surface.clears)
}

func TestRendererIdempotent(t *testing.T) {
	surface := &recordingSurface{}
	r := New(Config{Tracks: testTracks(), Events: testEvents(), FPS: 30}, surface)
	r.OnMetadata(640, 360)

	r.OnTimeUpdate(1.0)
	first := append([]string(nil), surface.ops...)
	r.OnTimeUpdate(3.0)
	r.OnTimeUpdate(1.0)

	assert.Equal(t, first, surface.ops)
}

func TestRendererDoesNotMutateInputs(t *testing.T) {
	tracks := testTracks()
	events := testEvents()
	tracks[0], tracks[3] = tracks[3], tracks[0]
	before := append([]models.TrackFrame(nil), tracks...)

	r := New(Config{Tracks: tracks, Events: events, FPS: 30}, &recordingSurface{})
	r.OnMetadata(640, 360)
	r.OnTimeUpdate(1.0)

	assert.Equal(t, before, tracks)
	assert.Equal(t, testEvents(), events)
}

func TestRendererCompose(t *testing.T) {
	r := New(Config{Tracks: testTracks(), Events: testEvents(), FPS: 30, Window: 2, Tolerance: 2}, &recordingSurface{})

	scene := r.Compose(1.0)
	assert.Equal(t, 30, scene.Frame)
	assert.True(t, scene.HasTrack)
	assert.Equal(t, []int{29, 30}, framesOf(scene.Trajectory))
	assert.Len(t, scene.Highlights, 2)

	scene = r.Compose(1.1)
	assert.Equal(t, 33, scene.Frame)
	assert.False(t, scene.HasTrack)
	assert.Empty(t, scene.Trajectory)
	assert.Empty(t, scene.Highlights)
}

func TestRendererComposeWithoutFrame(t *testing.T) {
	tracks := append(testTracks(), models.TrackFrame{Frame: math.MaxInt32, BBox: [4]float64{1, 1, 2, 2}, TrackID: 1})
	events := []models.Event{{Type: models.EventPopUp, Timestamp: 0}}
	r := New(Config{Tracks: tracks, Events: events, FPS: 30, Window: 2, Tolerance: 5}, &recordingSurface{})

	for _, tm := range []float64{math.Inf(1), 1e300} {
		scene := r.Compose(tm)
		assert.Equal(t, NoFrame, scene.Frame)
		assert.False(t, scene.HasTrack)
		assert.Empty(t, scene.Trajectory)
		assert.Empty(t, scene.Highlights)
	}
}

func TestRendererSeek(t *testing.T) {
	var seeks []float64
	r := New(Config{OnSeek: func(ts float64) { seeks = append(seeks, ts) }}, &recordingSurface{})

	r.Seek(2.5)
	r.Seek(-1)
	assert.Equal(t, []float64{2.5, 0}, seeks)

	assert.NotPanics(t, func() { New(Config{}, &recordingSurface{}).Seek(1) })
}

func TestRendererAttachAndClose(t *testing.T) {
	clock := NewClock(10)
	surface := &recordingSurface{}
	r := New(Config{Tracks: testTracks(), FPS: 30}, surface)

	r.Attach(clock)
	assert.Equal(t, 2, clock.Listeners())

	clock.SetResolution(1280, 720)
	w, h := surface.Size()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	clock.SetTime(1.0)
	assert.Contains(t, surface.ops, "rect 104,100,144,180")

	r.Close()
	r.Close()
	assert.Equal(t, 0, clock.Listeners())

	clock.SetTime(3.0)
	assert.Contains(t, surface.ops, "rect 104,100,144,180", "a closed renderer must not redraw")
}

func TestRendererAttachToLoadedMedia(t *testing.T) {
	clock := NewClock(10)
	clock.SetResolution(800, 600)

	surface := &recordingSurface{}
	r := New(Config{}, surface)
	r.Attach(clock)
	defer r.Close()

	w, h := surface.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestRendererSeekThroughClock(t *testing.T) {
	clock := NewClock(6)
	surface := &recordingSurface{}
	r := New(Config{Tracks: testTracks(), FPS: 30, OnSeek: clock.Seek}, surface)
	r.Attach(clock)
	defer r.Close()
	clock.SetResolution(640, 360)

	tl := NewTimeline(testEvents(), clock.Duration(), r.Seek)
	ts, ok := tl.Click(0.5)
	require.True(t, ok)

	assert.InDelta(t, 3.0, ts, 1e-9)
	assert.InDelta(t, 3.0, clock.CurrentTime(), 1e-9)
	assert.Contains(t, surface.ops, "rect 300,200,340,280")
}
