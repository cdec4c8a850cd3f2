package models

//TrackFrame is one per-frame tracking record of the tracked subject.
//BBox is [x1, y1, x2, y2] and Centroid is [x, y], both in native video pixels.
type TrackFrame struct {
	Frame    int        `json:"frame"`
	BBox     [4]float64 `json:"bbox"`
	Centroid [2]float64 `json:"centroid"`
	TrackID  int        `json:"trackId"`
}

//EventType is the kind of an analysis event
type EventType string

const (
	EventPopUp EventType = "pop-up"
	EventTurn  EventType = "turn"
)

//Label returns the human readable name of the event type ("Pop-up", "Turn")
func (t EventType) Label() string {
	switch t {
	case EventPopUp:
		return "Pop-up"
	case EventTurn:
		return "Turn"
	default:
		return string(t)
	}
}

//Event is an analysis event detected upstream, Timestamp is in seconds
type Event struct {
	Type       EventType `json:"type"`
	Timestamp  float64   `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

//JobState is the lifecycle state of an analysis job
type JobState string

const (
	JobPending    JobState = "pending"
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

//Terminal returns true for states after which the job never changes again
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

//Valid returns true for one of the four known states
func (s JobState) Valid() bool {
	switch s {
	case JobPending, JobProcessing, JobCompleted, JobFailed:
		return true
	}
	return false
}

//JobStatus is the payload of the job status endpoint, Progress is in [0,1]
type JobStatus struct {
	Status   JobState `json:"status"`
	Progress float64  `json:"progress"`
	Error    string   `json:"error,omitempty"`
}

//Metrics are the computed ride metrics, every field is optional
type Metrics struct {
	PopUpTime      *float64 `json:"popUpTime,omitempty"`
	TurnCount      *float64 `json:"turnCount,omitempty"`
	AverageSpeed   *float64 `json:"averageSpeed,omitempty"`
	SpeedRetention *float64 `json:"speedRetention,omitempty"`
	Smoothness     *float64 `json:"smoothness,omitempty"`
}

//Impact ranks a coaching tip
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

//Rank orders impacts high > medium > low > unknown
func (i Impact) Rank() int {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	case ImpactLow:
		return 1
	default:
		return 0
	}
}

//Tip is a coaching tip, Timestamp is optional (seconds)
type Tip struct {
	ID         string   `json:"id"`
	Message    string   `json:"message"`
	Confidence float64  `json:"confidence"`
	Timestamp  *float64 `json:"timestamp,omitempty"`
	Impact     Impact   `json:"impact"`
}

//JobResults is the payload of the job results endpoint
type JobResults struct {
	Metrics Metrics `json:"metrics"`
	Events  []Event `json:"events"`
	Tips    []Tip   `json:"tips"`
}

//JobTracks is the payload of the job tracks endpoint
type JobTracks struct {
	Frames []TrackFrame `json:"frames"`
}

//UploadResponse is returned after a successful upload
type UploadResponse struct {
	JobID string `json:"jobId"`
}

//ErrorResponse carries a human readable error message
type ErrorResponse struct {
	Detail string `json:"detail"`
}

//VideoMetadata describes a decoded video, Duration is in seconds
type VideoMetadata struct {
	FPS        float64 `json:"fps"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameCount int     `json:"frameCount"`
	Duration   float64 `json:"duration"`
}

//Validate returns a DataShapeError when the metadata can not drive the overlay
func (m VideoMetadata) Validate() error {
	if !(m.FPS > 0) {
		return &DataShapeError{Field: "fps", Message: "frame rate must be positive"}
	}
	if m.Width <= 0 || m.Height <= 0 {
		return &DataShapeError{Field: "resolution", Message: "width and height must be positive"}
	}
	if !(m.Duration > 0) {
		return &DataShapeError{Field: "duration", Message: "duration must be positive"}
	}
	return nil
}
