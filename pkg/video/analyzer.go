package video

import (
	"log"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//Messages stored as a failed job's error, shown to the user
const (
	metadataFailedMessage = "Could not read video metadata. Please upload a valid MP4 or MOV file."
	analysisFailedMessage = "Video analysis failed. Please try again."
	noSurferMessage       = "Could not detect a surfer in this video. Please ensure the surfer is clearly visible."
	noResultsMessage      = "Analysis did not produce any results."
)

//JobStore is what the analysis pipeline needs from the jobs store
type JobStore interface {
	JobDir(id string) string
	JobFile(id, name string) string
	UpdateStatus(id string, status models.JobStatus) error
	SaveMetadata(id string, meta models.VideoMetadata) error
	Results(id string) (models.JobResults, error)
	Tracks(id string) (models.JobTracks, error)
}

//Analyzer runs the analysis pipeline of uploaded videos
type Analyzer struct {
	jobs          JobStore
	command       string
	args          []string
	exportOverlay bool
	window        int
	tolerance     int
}

//NewAnalyzer returns an analyzer configured from viper ('analyzer.*', 'video.export_overlay', 'overlay.*')
func NewAnalyzer(jobs JobStore) *Analyzer {
	return &Analyzer{
		jobs:          jobs,
		command:       viper.GetString("analyzer.command"),
		args:          viper.GetStringSlice("analyzer.args"),
		exportOverlay: viper.GetBool("video.export_overlay"),
		window:        viper.GetInt("overlay.trajectory_window"),
		tolerance:     viper.GetInt("overlay.proximity_tolerance"),
	}
}

//Run processes the job's input video: probes its metadata, runs the analyzer command, validates its outputs
//and exports the overlay video. The job's status follows every stage and ends completed or failed.
//Meant to run in its own goroutine, errors are stored in the job's status and logged.
func (a *Analyzer) Run(jobID string) {
	if err := a.run(jobID); err != nil {
		log.Printf("Analyzer.Run: Error processing job '%s', got '%v'", jobID, err)

		msg := analysisFailedMessage
		var analysisErr *AnalysisError
		if errors.As(err, &analysisErr) {
			msg = analysisErr.Message
		}
		a.setStatus(jobID, models.JobFailed, 0, msg)
	}
}

func (a *Analyzer) run(jobID string) error {
	a.setStatus(jobID, models.JobProcessing, progressStarted, "")

	inputPath := a.jobs.JobFile(jobID, utils.InputVideoName)
	meta, err := Probe(inputPath)
	if err != nil {
		return &AnalysisError{Message: metadataFailedMessage}
	}
	if err := a.jobs.SaveMetadata(jobID, meta); err != nil {
		return err
	}
	a.setStatus(jobID, models.JobProcessing, progressProbed, "")

	err = RunAnalyzer(a.command, a.args, inputPath, a.jobs.JobDir(jobID), func(p float64) {
		a.setStatus(jobID, models.JobProcessing, scale(p, progressProbed, progressAnalyzeEnd), "")
	})
	if err != nil {
		return err
	}

	results, err := a.jobs.Results(jobID)
	if err != nil {
		log.Printf("Analyzer.Run: Error loading results of job '%s', got '%v'", jobID, err)
		return &AnalysisError{Message: noResultsMessage}
	}

	tracks, err := a.jobs.Tracks(jobID)
	if err != nil || len(tracks.Frames) == 0 {
		return &AnalysisError{Message: noSurferMessage}
	}
	a.setStatus(jobID, models.JobProcessing, progressLoaded, "")

	if a.exportOverlay {
		cfg := overlay.Config{
			Tracks:    tracks.Frames,
			Events:    results.Events,
			Window:    a.window,
			Tolerance: a.tolerance,
		}
		onProgress := func(p float64) {
			a.setStatus(jobID, models.JobProcessing, scale(p, progressLoaded, progressExportEnd), "")
		}

		//the overlay video is optional, the job is still usable without it
		if err := ExportOverlay(inputPath, a.jobs.JobFile(jobID, utils.OverlayVideoName), cfg, meta, onProgress); err != nil {
			log.Printf("Analyzer.Run: Error exporting overlay of job '%s', got '%v'", jobID, err)
		}
	}

	a.setStatus(jobID, models.JobCompleted, progressCompleted, "")
	return nil
}

func (a *Analyzer) setStatus(jobID string, state models.JobState, progress float64, msg string) {
	if err := a.jobs.UpdateStatus(jobID, models.JobStatus{Status: state, Progress: progress, Error: msg}); err != nil {
		log.Printf("Analyzer.setStatus: Error, got '%v'", err)
	}
}
