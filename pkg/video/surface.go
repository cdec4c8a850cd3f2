package video

import (
	"image"
	"image/color"
	"math"

	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"gocv.io/x/gocv"
)

//MatSurface is an overlay.Surface drawing on an OpenCV matrix (BGR, 8 bits per channel).
//Clear restores the current backdrop (the decoded video frame) so drawings end up on top of the video.
type MatSurface struct {
	canvas   gocv.Mat
	blank    gocv.Mat
	backdrop *gocv.Mat
	width    int
	height   int
}

//NewMatSurface returns an unsized surface. Call Close when done, matrices are not garbage collected.
func NewMatSurface() *MatSurface {
	return &MatSurface{canvas: gocv.NewMat(), blank: gocv.NewMat()}
}

func (s *MatSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *MatSurface) Resize(width, height int) {
	s.canvas.Close()
	s.blank.Close()

	if width <= 0 || height <= 0 {
		s.canvas, s.blank = gocv.NewMat(), gocv.NewMat()
		s.width, s.height = 0, 0
		return
	}

	s.canvas = gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	s.blank = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
	s.width, s.height = width, height
}

//SetBackdrop sets the frame restored by Clear. A frame of another size than the surface is ignored.
func (s *MatSurface) SetBackdrop(frame *gocv.Mat) {
	s.backdrop = frame
}

func (s *MatSurface) Clear() {
	if s.width == 0 || s.height == 0 {
		return
	}

	if s.backdrop != nil && !s.backdrop.Empty() && s.backdrop.Cols() == s.width && s.backdrop.Rows() == s.height {
		s.backdrop.CopyTo(&s.canvas)
		return
	}
	s.blank.CopyTo(&s.canvas)
}

func (s *MatSurface) StrokeRect(r overlay.Rect, c color.RGBA, lineWidth float64) {
	gocv.Rectangle(&s.canvas, fixRect(r, s.height, s.width), c, thickness(lineWidth))
}

func (s *MatSurface) Polyline(pts []overlay.Point, c color.RGBA, lineWidth float64) {
	for i := 1; i < len(pts); i++ {
		gocv.Line(&s.canvas, toImagePoint(pts[i-1]), toImagePoint(pts[i]), c, thickness(lineWidth))
	}
}

func (s *MatSurface) FillCircle(center overlay.Point, radius float64, c color.RGBA) {
	gocv.Circle(&s.canvas, toImagePoint(center), int(math.Round(radius)), c, -1) //thickness -1 == filled circle
}

//Mat returns the matrix drawings are made on
func (s *MatSurface) Mat() gocv.Mat {
	return s.canvas
}

//Close releases the surface's matrices (not the backdrop, which belongs to the caller)
func (s *MatSurface) Close() {
	s.canvas.Close()
	s.blank.Close()
}

func toImagePoint(p overlay.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

func thickness(lineWidth float64) int {
	if t := int(math.Round(lineWidth)); t > 0 {
		return t
	}
	return 1
}

//fixRect converts a bounding box to pixels and fixes its values in case they are out of frame's range
func fixRect(r overlay.Rect, frameHeight, frameWidth int) image.Rectangle {
	clamp := func(v float64, max int) int {
		i := int(math.Round(v))
		if i < 0 {
			return 0
		} else if i > max {
			return max
		}
		return i
	}

	return image.Rect(clamp(r.X1, frameWidth), clamp(r.Y1, frameHeight), clamp(r.X2, frameWidth), clamp(r.Y2, frameHeight))
}
