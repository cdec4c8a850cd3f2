package overlay

import (
	"image/color"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
)

//Point is a position in native video pixels
type Point struct {
	X float64
	Y float64
}

//Rect is an axis aligned box in native video pixels, (X1,Y1) top left and (X2,Y2) bottom right
type Rect struct {
	X1, Y1, X2, Y2 float64
}

//Dx returns the rectangle's width
func (r Rect) Dx() float64 { return r.X2 - r.X1 }

//Dy returns the rectangle's height
func (r Rect) Dy() float64 { return r.Y2 - r.Y1 }

//Surface is a raster the renderer draws on. Coordinates are native video pixels,
//so a surface has to be sized to the video's native resolution (not its display size).
//A surface of size 0x0 is not ready and is never drawn on.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear()
	StrokeRect(r Rect, c color.RGBA, lineWidth float64)
	Polyline(pts []Point, c color.RGBA, lineWidth float64)
	FillCircle(center Point, radius float64, c color.RGBA)
}

//Style holds the colors and sizes used to draw the overlay
type Style struct {
	BBoxColor       color.RGBA
	TrajectoryColor color.RGBA
	CentroidColor   color.RGBA
	PopUpColor      color.RGBA
	TurnColor       color.RGBA
	LineWidth       float64
	CentroidRadius  float64
	EventRadius     float64
	//EventAnchorY is the vertical position of event indicators, as a fraction of the surface height
	EventAnchorY float64
}

//DefaultStyle is the overlay look: green box, blue trail and centroid, red pop-ups and yellow turns
func DefaultStyle() Style {
	return Style{
		BBoxColor:       color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
		TrajectoryColor: color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		CentroidColor:   color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		PopUpColor:      color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff},
		TurnColor:       color.RGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0xff},
		LineWidth:       2,
		CentroidRadius:  4,
		EventRadius:     8,
		EventAnchorY:    0.1,
	}
}

//EventColor returns the indicator color of given event type. Anything that is not a pop-up is drawn as a turn.
func (s Style) EventColor(t models.EventType) color.RGBA {
	if t == models.EventPopUp {
		return s.PopUpColor
	}
	return s.TurnColor
}

//EventAnchor is where event indicators are drawn, independent of any bounding box
func (s Style) EventAnchor(width, height int) Point {
	return Point{X: float64(width) / 2, Y: float64(height) * s.EventAnchorY}
}

func bboxRect(tf models.TrackFrame) Rect {
	return Rect{X1: tf.BBox[0], Y1: tf.BBox[1], X2: tf.BBox[2], Y2: tf.BBox[3]}
}

func centroidPoint(tf models.TrackFrame) Point {
	return Point{X: tf.Centroid[0], Y: tf.Centroid[1]}
}
