package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
)

const (
	notAvailable = "N/A"
	noTips       = "No tips available"
)

//MetricRow is one line of the metrics panel
type MetricRow struct {
	Label string
	Value string
}

//FormatMetric returns value with 2 decimals and given suffix, "N/A" when value is missing
func FormatMetric(value *float64, suffix string) string {
	if value == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%s", *value, suffix)
}

//MetricsRows returns the metrics panel's rows, in display order
func MetricsRows(m models.Metrics) []MetricRow {
	return []MetricRow{
		{"Pop-up Time", FormatMetric(m.PopUpTime, "s")},
		{"Turn Count", FormatMetric(m.TurnCount, "")},
		{"Average Speed", FormatMetric(m.AverageSpeed, "")},
		{"Speed Retention", FormatMetric(m.SpeedRetention, "")},
		{"Smoothness", FormatMetric(m.Smoothness, "")},
	}
}

//WriteMetrics prints the metrics panel
func WriteMetrics(w io.Writer, m models.Metrics) error {
	if _, err := fmt.Fprintln(w, "Metrics"); err != nil {
		return err
	}

	for _, row := range MetricsRows(m) {
		if _, err := fmt.Fprintf(w, "  %-16s %s\n", row.Label, row.Value); err != nil {
			return err
		}
	}

	return nil
}

//SortTips returns a copy of tips ordered by impact, high first. Tips of the same impact keep their order.
func SortTips(tips []models.Tip) []models.Tip {
	sorted := append([]models.Tip(nil), tips...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Impact.Rank() > sorted[j].Impact.Rank()
	})
	return sorted
}

//FormatTip returns one tip of the tips panel:
//"[HIGH impact] 2.0s Pop up faster (confidence 80%)", the timestamp only when there is one
func FormatTip(tip models.Tip) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s impact]", strings.ToUpper(string(tip.Impact)))
	if tip.Timestamp != nil {
		fmt.Fprintf(&b, " %.1fs", *tip.Timestamp)
	}
	fmt.Fprintf(&b, " %s (confidence %.0f%%)", tip.Message, tip.Confidence*100)

	return b.String()
}

//WriteTips prints the tips panel
func WriteTips(w io.Writer, tips []models.Tip) error {
	if _, err := fmt.Fprintln(w, "Coaching Tips"); err != nil {
		return err
	}

	if len(tips) == 0 {
		_, err := fmt.Fprintf(w, "  %s\n", noTips)
		return err
	}

	for _, tip := range SortTips(tips) {
		if _, err := fmt.Fprintf(w, "  %s\n", FormatTip(tip)); err != nil {
			return err
		}
	}

	return nil
}

//ProgressPercent returns the job's progress as a rounded percentage, in [0,100]
func ProgressPercent(progress float64) int {
	if math.IsNaN(progress) || progress < 0 {
		return 0
	} else if progress > 1 {
		return 100
	}
	return int(math.Round(progress * 100))
}

//ProgressLine returns "Status: failed 40%", followed by the job's error when it has one.
//Printed once a job stopped, ProgressBar displays the running ones.
func ProgressLine(status models.JobStatus) string {
	state := status.Status
	if state == "" {
		state = models.JobPending
	}

	line := fmt.Sprintf("Status: %s %d%%", state, ProgressPercent(status.Progress))
	if status.Error != "" {
		line += " - " + status.Error
	}

	return line
}
