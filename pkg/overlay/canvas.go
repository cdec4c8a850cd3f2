package overlay

import (
	"image"
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	"github.com/chenBenjamin97/surf-coach/pkg/models"
)

//Canvas is a pure Go RGBA surface. A new canvas is unsized until Resize is called.
type Canvas struct {
	dc *gg.Context
}

//NewCanvas returns an unsized canvas
func NewCanvas() *Canvas {
	return &Canvas{}
}

//Size returns the canvas resolution, 0x0 before the first Resize
func (c *Canvas) Size() (int, int) {
	if c.dc == nil {
		return 0, 0
	}
	return c.dc.Width(), c.dc.Height()
}

//Resize allocates a new transparent raster of given resolution, dropping previous content.
//A non positive dimension makes the canvas unsized again.
func (c *Canvas) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		c.dc = nil
		return
	}
	c.dc = gg.NewContext(width, height)
}

//Clear makes every pixel transparent
func (c *Canvas) Clear() {
	if c.dc == nil {
		return
	}
	c.dc.SetRGBA(0, 0, 0, 0)
	c.dc.Clear()
}

func (c *Canvas) StrokeRect(r Rect, col color.RGBA, lineWidth float64) {
	if c.dc == nil {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawRectangle(r.X1, r.Y1, r.Dx(), r.Dy())
	c.dc.Stroke()
}

func (c *Canvas) Polyline(pts []Point, col color.RGBA, lineWidth float64) {
	if c.dc == nil || len(pts) < 2 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.Stroke()
}

func (c *Canvas) FillCircle(center Point, radius float64, col color.RGBA) {
	if c.dc == nil {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.Fill()
}

//Image returns the canvas raster, nil when unsized
func (c *Canvas) Image() image.Image {
	if c.dc == nil {
		return nil
	}
	return c.dc.Image()
}

//EncodePNG writes the canvas as a PNG image
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.dc == nil {
		return models.ErrSurfaceNotReady
	}
	return c.dc.EncodePNG(w)
}
