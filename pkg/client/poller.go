package client

import (
	"context"
	"time"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/pkg/errors"
)

//DefaultMaxErrors is how many consecutive failed fetches stop polling
const DefaultMaxErrors = 5

const failedFallbackMessage = "Processing failed"

//FetchFunc returns the job's current status
type FetchFunc func(ctx context.Context) (models.JobStatus, error)

//Poller polls a job's status until the job completes or fails.
//States: pending -> processing -> completed | failed. Completed and failed are terminal, polling stops there.
type Poller struct {
	fetch FetchFunc
	state models.JobState

	Interval  time.Duration
	MaxErrors int

	//OnStatus receives every fetched status (progress display)
	OnStatus func(models.JobStatus)
	//OnCompleted is called once, when the job completes
	OnCompleted func()
	//OnFailed receives the job's error message, when the job fails
	OnFailed func(msg string)
	//OnError receives fetch errors, polling goes on until MaxErrors consecutive errors
	OnError func(err error)
}

//NewPoller returns a poller with 1 second interval and DefaultMaxErrors
func NewPoller(fetch FetchFunc) *Poller {
	return &Poller{
		fetch:     fetch,
		state:     models.JobPending,
		Interval:  utils.PollInterval * time.Millisecond,
		MaxErrors: DefaultMaxErrors,
	}
}

//State returns the last known job state, pending before the first fetch
func (p *Poller) State() models.JobState {
	return p.state
}

//Run fetches the status right away then every Interval, until:
//the job completes (returns its status, nil), the job fails (returns its status, nil),
//MaxErrors consecutive fetches fail (returns a *models.NetworkError) or ctx is done (returns ctx.Err()).
func (p *Poller) Run(ctx context.Context) (models.JobStatus, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = utils.PollInterval * time.Millisecond
	}
	maxErrors := p.MaxErrors
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last models.JobStatus
	consecutiveErrors := 0

	for {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		status, err := p.fetchStatus(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return last, ctx.Err()
			}

			consecutiveErrors++
			if p.OnError != nil {
				p.OnError(err)
			}
			if consecutiveErrors >= maxErrors {
				return last, &models.NetworkError{Op: "poll job status", Err: err}
			}
		} else {
			consecutiveErrors = 0
			last = status
			if p.transition(status) {
				return status, nil
			}
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) fetchStatus(ctx context.Context) (models.JobStatus, error) {
	status, err := p.fetch(ctx)
	if err != nil {
		return status, err
	}

	if !status.Status.Valid() {
		return status, errors.WithStack(&models.DataShapeError{Field: "status", Message: "unknown job state '" + string(status.Status) + "'"})
	}

	return status, nil
}

//transition moves the machine to the fetched state, returns true when a terminal state was reached
func (p *Poller) transition(status models.JobStatus) bool {
	p.state = status.Status

	if p.OnStatus != nil {
		p.OnStatus(status)
	}

	switch status.Status {
	case models.JobCompleted:
		if p.OnCompleted != nil {
			p.OnCompleted()
		}
		return true
	case models.JobFailed:
		msg := status.Error
		if msg == "" {
			msg = failedFallbackMessage
		}
		if p.OnFailed != nil {
			p.OnFailed(msg)
		}
		return true
	default:
		return false
	}
}
