package report

import (
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/chenBenjamin97/surf-coach/pkg/models"
)

const progressTemplate = `{{ string . "prefix" }} {{ bar . }} {{ percent . "%.0f%%" }} {{ etime . "%s elapsed" }}`

//ProgressBar draws a job's progress (0-100%) on a terminal, prefixed by the job's state
type ProgressBar struct {
	bar *pb.ProgressBar
}

//NewProgressBar starts a progress bar refreshed on w until Finish is called
func NewProgressBar(w io.Writer) *ProgressBar {
	bar := pb.ProgressBarTemplate(progressTemplate).New(100)
	bar.SetWriter(w)
	bar.Set("prefix", string(models.JobPending))
	bar.Start()

	return &ProgressBar{bar: bar}
}

//Update moves the bar to the polled status
func (p *ProgressBar) Update(status models.JobStatus) {
	state := status.Status
	if state == "" {
		state = models.JobPending
	}

	p.bar.Set("prefix", string(state))
	p.bar.SetCurrent(int64(ProgressPercent(status.Progress)))
}

//Current returns the displayed percentage
func (p *ProgressBar) Current() int {
	return int(p.bar.Current())
}

//String renders the bar as it is currently displayed
func (p *ProgressBar) String() string {
	return p.bar.String()
}

//Finish draws the bar one last time and stops refreshing it
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
