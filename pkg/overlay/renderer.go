package overlay

import (
	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
)

//Config is everything a renderer needs for one job. Zero values take the package defaults
//(30 fps, 30 frames trail, 5 frames event tolerance).
type Config struct {
	Tracks    []models.TrackFrame
	Events    []models.Event
	FPS       float64
	Window    int
	Tolerance int
	//OnSeek receives the timestamps passed to Renderer.Seek, typically the media's seek
	OnSeek func(timestamp float64)
	Style  *Style
}

//Scene is what a render at a given playback time draws
type Scene struct {
	Time       float64
	Frame      int
	Track      models.TrackFrame
	HasTrack   bool
	Trajectory []models.TrackFrame
	Highlights []models.Event
}

//Renderer draws a job's tracking data and events on a surface, in sync with playback time.
//Between two renders it keeps nothing but the immutable indexes built by New.
type Renderer struct {
	tracks    *TrackIndex
	events    *EventIndex
	fps       float64
	window    int
	tolerance int
	onSeek    func(float64)
	style     Style
	surface   Surface
	cancels   []func()
}

//New indexes given tracks and events once and returns a renderer drawing on surface
func New(cfg Config, surface Surface) *Renderer {
	r := &Renderer{
		fps:       NormalizeFPS(cfg.FPS),
		window:    cfg.Window,
		tolerance: cfg.Tolerance,
		onSeek:    cfg.OnSeek,
		style:     DefaultStyle(),
		surface:   surface,
	}
	if r.window <= 0 {
		r.window = utils.TrajectoryWindow
	}
	if r.tolerance <= 0 {
		r.tolerance = utils.ProximityTolerance
	}
	if cfg.Style != nil {
		r.style = *cfg.Style
	}
	r.tracks = NewTrackIndex(cfg.Tracks)
	r.events = NewEventIndex(cfg.Events, r.fps)
	return r
}

//FPS returns the frame rate used to map time to frames
func (r *Renderer) FPS() float64 {
	return r.fps
}

//Surface returns the surface the renderer draws on
func (r *Renderer) Surface() Surface {
	return r.surface
}

//OnMetadata sizes the surface to the video's native resolution
func (r *Renderer) OnMetadata(width, height int) {
	r.surface.Resize(width, height)
}

//OnTimeUpdate redraws the overlay for playback time t. Does nothing while the surface is not sized.
func (r *Renderer) OnTimeUpdate(t float64) {
	_ = r.Render(t)
}

//Render is OnTimeUpdate reporting models.ErrSurfaceNotReady instead of ignoring it
func (r *Renderer) Render(t float64) error {
	return r.Draw(r.Compose(t))
}

//Compose computes what has to be drawn at playback time t, without touching the surface
func (r *Renderer) Compose(t float64) Scene {
	scene := Scene{Time: t, Frame: FrameIndex(t, r.fps)}
	if scene.Frame == NoFrame {
		return scene
	}

	scene.Track, scene.HasTrack = r.tracks.Lookup(scene.Frame)
	if scene.HasTrack {
		scene.Trajectory = r.tracks.Trajectory(scene.Frame, r.window)
	}
	scene.Highlights = r.events.Near(scene.Frame, r.tolerance)

	return scene
}

//Draw clears the surface and draws given scene on it
func (r *Renderer) Draw(scene Scene) error {
	width, height := r.surface.Size()
	if width <= 0 || height <= 0 {
		return models.ErrSurfaceNotReady
	}

	r.surface.Clear()

	if scene.HasTrack {
		r.surface.StrokeRect(bboxRect(scene.Track), r.style.BBoxColor, r.style.LineWidth)

		if len(scene.Trajectory) >= 2 {
			pts := make([]Point, len(scene.Trajectory))
			for i, tf := range scene.Trajectory {
				pts[i] = centroidPoint(tf)
			}
			r.surface.Polyline(pts, r.style.TrajectoryColor, r.style.LineWidth)
		}

		r.surface.FillCircle(centroidPoint(scene.Track), r.style.CentroidRadius, r.style.CentroidColor)
	}

	anchor := r.style.EventAnchor(width, height)
	for _, e := range scene.Highlights {
		r.surface.FillCircle(anchor, r.style.EventRadius, r.style.EventColor(e.Type))
	}

	return nil
}

//Seek forwards a seek request (e.g. a timeline click) to the configured OnSeek callback
func (r *Renderer) Seek(timestamp float64) {
	if r.onSeek == nil {
		return
	}
	if !(timestamp > 0) {
		timestamp = 0
	}
	r.onSeek(timestamp)
}

//Attach subscribes the renderer to media's time and metadata notifications.
//When the media already knows its resolution the surface is sized right away.
func (r *Renderer) Attach(media MediaSource) {
	r.cancels = append(r.cancels,
		media.OnMetadata(r.OnMetadata),
		media.OnTimeUpdate(r.OnTimeUpdate),
	)
	if width, height := media.Resolution(); width > 0 && height > 0 {
		r.OnMetadata(width, height)
	}
}

//Close releases every subscription made by Attach. Safe to call more than once.
func (r *Renderer) Close() {
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
}
