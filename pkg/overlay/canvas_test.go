package overlay

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbaAt(t *testing.T, c *Canvas, x, y int) color.RGBA {
	t.Helper()
	img := c.Image()
	require.NotNil(t, img)
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestCanvasUnsized(t *testing.T) {
	c := NewCanvas()
	w, h := c.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
	assert.Nil(t, c.Image())
	assert.ErrorIs(t, c.EncodePNG(&bytes.Buffer{}), models.ErrSurfaceNotReady)
	assert.NotPanics(t, func() {
		c.Clear()
		c.FillCircle(Point{X: 1, Y: 1}, 1, color.RGBA{A: 255})
	})
}

func TestCanvasRendersAtNativeResolution(t *testing.T) {
	canvas := NewCanvas()
	r := New(Config{Tracks: testTracks(), Events: testEvents(), FPS: 30}, canvas)
	r.OnMetadata(640, 360)
	require.NoError(t, r.Render(1.0))

	w, h := canvas.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 360, h)

	style := DefaultStyle()
	assert.Equal(t, style.CentroidColor, rgbaAt(t, canvas, 124, 140), "centroid marker")
	assert.Equal(t, style.BBoxColor, rgbaAt(t, canvas, 124, 100), "top edge of the bounding box")
	assert.Equal(t, uint8(0), rgbaAt(t, canvas, 10, 300).A, "untouched pixels stay transparent")
	assert.NotEqual(t, uint8(0), rgbaAt(t, canvas, 320, 36).A, "event indicator")

	require.NoError(t, r.Render(2.0))
	assert.Equal(t, uint8(0), rgbaAt(t, canvas, 124, 140).A, "previous frame is cleared")

	var buf bytes.Buffer
	require.NoError(t, canvas.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
}
