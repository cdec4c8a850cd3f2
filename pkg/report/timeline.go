package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

const timelineSymbolSize = 16

//TimelinePage renders an HTML page charting the job's events along the video's duration,
//one series per event type, colored like the overlay's event indicators.
//Without a usable duration the page is rendered with no markers.
func TimelinePage(w io.Writer, title string, events []models.Event, duration float64) error {
	tl := overlay.NewTimeline(events, duration, nil)

	subtitle := fmt.Sprintf("%d events, %.1fs", len(events), duration)
	xAxis := opts.XAxis{Min: 0, Name: "Time (s)", NameLocation: "middle", NameGap: 25}
	if tl.Enabled() {
		xAxis.Max = duration
	} else {
		subtitle = "Video duration unavailable"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "240px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false), Min: -1, Max: 1}),
	)

	//series keep the order in which event types first appear
	order := make([]models.EventType, 0)
	series := make(map[models.EventType][]opts.ScatterData)
	colors := make(map[models.EventType]string)
	for _, m := range tl.Markers() {
		if _, ok := series[m.Event.Type]; !ok {
			order = append(order, m.Event.Type)
			colors[m.Event.Type] = hexColor(m.Color)
		}
		series[m.Event.Type] = append(series[m.Event.Type], opts.ScatterData{
			Name:       m.Label,
			Value:      []interface{}{m.Position * duration, 0},
			SymbolSize: timelineSymbolSize,
		})
	}

	for _, t := range order {
		scatter.AddSeries(t.Label(), series[t],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: timelineSymbolSize}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors[t]}),
		)
	}

	return errors.Wrap(scatter.Render(w), "TimelinePage: render")
}

//hexColor returns "#rrggbb"
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
