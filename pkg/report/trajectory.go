package report

import (
	"fmt"
	"io"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//ErrNoTrack is returned when there is nothing to plot
var ErrNoTrack = errors.New("no tracking records")

//TrajectoryPlot writes a PNG of the whole centroid path in video pixel coordinates (y axis pointing down, like the video),
//with the path's start and end marked. Axes span the video's resolution when meta has one.
func TrajectoryPlot(w io.Writer, frames []models.TrackFrame, meta models.VideoMetadata) error {
	records := overlay.NewTrackIndex(frames).Frames()
	if len(records) == 0 {
		return ErrNoTrack
	}

	style := overlay.DefaultStyle()
	summary := SummarizeTrack(records, meta.FPS)

	p := plot.New()
	p.Title.Text = "Surfer trajectory"
	p.X.Label.Text = fmt.Sprintf("x (px), %d records over %.1fs", summary.Records, summary.Seconds)
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	if meta.Width > 0 && meta.Height > 0 {
		p.X.Min, p.X.Max = 0, float64(meta.Width)
		p.Y.Min, p.Y.Max = 0, float64(meta.Height)
	}

	pts := make(plotter.XYs, 0, len(records))
	for _, r := range records {
		pts = append(pts, plotter.XY{X: r.Centroid[0], Y: r.Centroid[1]})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "TrajectoryPlot: line")
	}
	line.Color = style.TrajectoryColor
	line.Width = vg.Points(style.LineWidth)
	p.Add(line)
	p.Legend.Add("centroid path", line)

	ends, err := plotter.NewScatter(plotter.XYs{pts[0], pts[len(pts)-1]})
	if err != nil {
		return errors.Wrap(err, "TrajectoryPlot: scatter")
	}
	ends.GlyphStyle.Color = style.BBoxColor
	ends.GlyphStyle.Radius = vg.Points(style.CentroidRadius)
	ends.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(ends)
	p.Legend.Add("start / end", ends)

	wt, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "TrajectoryPlot: png writer")
	}

	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "TrajectoryPlot: write png")
}
