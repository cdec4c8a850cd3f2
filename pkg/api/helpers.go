package api

import (
	"log"
	"net/http"

	"github.com/chenBenjamin97/surf-coach/pkg/client"
	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"github.com/chenBenjamin97/surf-coach/pkg/store"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//jobKey is the gin context key of the job loaded by requireJob
const jobKey = "job"

//requireJob loads the job of the ':id' route parameter, aborts with 404 when there is no such job
func requireJob(jobs JobStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		job, err := jobs.Job(ctx.Param("id"))
		if errors.Is(err, store.ErrJobNotFound) {
			abortDetail(ctx, http.StatusNotFound, utils.JobNotFoundMessage)
			return
		} else if err != nil {
			log.Printf("api/Job: Error, got '%v'", err)
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		ctx.Set(jobKey, job)
		ctx.Next()
	}
}

func abortDetail(ctx *gin.Context, code int, detail string) {
	ctx.AbortWithStatusJSON(code, models.ErrorResponse{Detail: detail})
}

//abortFileError maps a job file loading error: missing file => 404 "<what> not yet available...", bad file => 500
func abortFileError(ctx *gin.Context, what string, err error) {
	if errors.Is(err, store.ErrNotReady) {
		abortDetail(ctx, http.StatusNotFound, what+" "+utils.NotReadyMessage)
		return
	}

	log.Printf("api/%s: Error, got '%v'", what, err)
	var shapeErr *models.DataShapeError
	if errors.As(err, &shapeErr) {
		abortDetail(ctx, http.StatusInternalServerError, what+" file is invalid")
		return
	}
	ctx.AbortWithStatus(http.StatusInternalServerError)
}

//uploadLimits reads 'upload.max_mb' and 'upload.formats', missing values take the defaults
func uploadLimits() client.UploadLimits {
	limits := client.DefaultUploadLimits()
	if maxMB := viper.GetInt("upload.max_mb"); maxMB > 0 {
		limits.MaxMB = maxMB
	}
	if formats := viper.GetStringSlice("upload.formats"); len(formats) > 0 {
		limits.Formats = formats
	}
	return limits
}

//overlayConfig returns the renderer configuration of a job, the video's fps first then 'overlay.fps'
func overlayConfig(tracks []models.TrackFrame, events []models.Event, fps float64) overlay.Config {
	if !(fps > 0) {
		fps = viper.GetFloat64("overlay.fps")
	}

	return overlay.Config{
		Tracks:    tracks,
		Events:    events,
		FPS:       fps,
		Window:    viper.GetInt("overlay.trajectory_window"),
		Tolerance: viper.GetInt("overlay.proximity_tolerance"),
	}
}

//loadOverlayData loads everything the overlay of a job needs, responds and returns false on failure
func loadOverlayData(ctx *gin.Context, jobs JobStore, id string) (models.VideoMetadata, models.JobTracks, models.JobResults, bool) {
	meta, err := jobs.Metadata(id)
	if err != nil {
		abortFileError(ctx, "Metadata", err)
		return meta, models.JobTracks{}, models.JobResults{}, false
	}

	tracks, err := jobs.Tracks(id)
	if err != nil {
		abortFileError(ctx, "Tracks", err)
		return meta, tracks, models.JobResults{}, false
	}

	results, err := jobs.Results(id)
	if err != nil {
		abortFileError(ctx, "Results", err)
		return meta, tracks, results, false
	}

	return meta, tracks, results, true
}
