package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/chenBenjamin97/surf-coach/pkg/client"
	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"github.com/chenBenjamin97/surf-coach/pkg/report"
	"github.com/chenBenjamin97/surf-coach/pkg/store"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//multipartSlack is allowed on top of the upload limit for the multipart envelope
const multipartSlack = 1 << 20

//Processor analyzes a job's uploaded video, Run is called in its own goroutine
type Processor interface {
	Run(jobID string)
}

//JobStore is what the api needs from the jobs store
type JobStore interface {
	CreateJob(filename string) (string, error)
	DeleteJob(id string) error
	Job(id string) (store.Job, error)
	ListJobs() ([]store.Job, error)
	Results(id string) (models.JobResults, error)
	Tracks(id string) (models.JobTracks, error)
	Metadata(id string) (models.VideoMetadata, error)
	JobFile(id, name string) string
}

type jobItem struct {
	JobID     string          `json:"jobId"`
	Filename  string          `json:"filename"`
	Status    models.JobState `json:"status"`
	Progress  float64         `json:"progress"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func SetRouter(jobs JobStore, processor Processor) *gin.Engine {
	r := gin.Default()

	//serve html pages to client
	r.Static("/client", viper.GetString("frontend.static-files-path"))
	r.StaticFile("/", viper.GetString("frontend.static-files-path")+"index.html")

	apiRoutes := r.Group("/api")

	apiRoutes.POST("/videos", func(ctx *gin.Context) {
		limits := uploadLimits()
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, int64(limits.MaxMB)*utils.BytesPerMB+multipartSlack)

		fHeader, err := ctx.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortDetail(ctx, http.StatusBadRequest, fmt.Sprintf(utils.FileTooLargeMessage, limits.MaxMB))
				return
			}
			abortDetail(ctx, http.StatusBadRequest, utils.NoFileMessage)
			return
		}

		if err := client.ValidateUpload(fHeader.Filename, fHeader.Size, limits); err != nil {
			abortDetail(ctx, http.StatusBadRequest, err.Error())
			return
		}

		log.Printf("api/Upload: Recived new file: name - '%s', size - %v Bytes", fHeader.Filename, fHeader.Size)

		jobID, err := jobs.CreateJob(fHeader.Filename)
		if err != nil {
			log.Printf("api/Upload: Could not create job, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		srcFilePath := jobs.JobFile(jobID, utils.InputVideoName)
		if err := ctx.SaveUploadedFile(fHeader, srcFilePath); err != nil {
			log.Printf("api/Upload: Could not write '%s' file, got '%v'", srcFilePath, err)
			if err := jobs.DeleteJob(jobID); err != nil {
				log.Printf("api/Upload: Could not delete job '%s', got '%v'", jobID, err)
			}
			ctx.Status(http.StatusInternalServerError)
			return
		}

		go processor.Run(jobID)

		ctx.JSON(http.StatusOK, models.UploadResponse{JobID: jobID})
	})

	apiRoutes.GET("/jobs", func(ctx *gin.Context) {
		list, err := jobs.ListJobs()
		if err != nil {
			log.Printf("api/Jobs: Error, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		items := make([]jobItem, 0, len(list))
		for _, j := range list {
			items = append(items, jobItem{
				JobID:     j.ID,
				Filename:  j.Filename,
				Status:    j.Status.Status,
				Progress:  j.Status.Progress,
				Error:     j.Status.Error,
				CreatedAt: j.CreatedAt,
			})
		}
		ctx.JSON(http.StatusOK, items)
	})

	jobRoutes := apiRoutes.Group("/jobs/:id", requireJob(jobs))

	jobRoutes.GET("", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, ctx.MustGet(jobKey).(store.Job).Status)
	})

	jobRoutes.GET("/results", func(ctx *gin.Context) {
		results, err := jobs.Results(ctx.Param("id"))
		if err != nil {
			abortFileError(ctx, "Results", err)
			return
		}
		ctx.JSON(http.StatusOK, results)
	})

	jobRoutes.GET("/tracks", func(ctx *gin.Context) {
		tracks, err := jobs.Tracks(ctx.Param("id"))
		if err != nil {
			abortFileError(ctx, "Tracks", err)
			return
		}
		ctx.JSON(http.StatusOK, tracks)
	})

	jobRoutes.GET("/metadata", func(ctx *gin.Context) {
		meta, err := jobs.Metadata(ctx.Param("id"))
		if err != nil {
			abortFileError(ctx, "Metadata", err)
			return
		}
		ctx.JSON(http.StatusOK, meta)
	})

	jobRoutes.GET("/summary", func(ctx *gin.Context) {
		id := ctx.Param("id")
		tracks, err := jobs.Tracks(id)
		if err != nil {
			abortFileError(ctx, "Tracks", err)
			return
		}

		fps := viper.GetFloat64("overlay.fps")
		if meta, err := jobs.Metadata(id); err == nil {
			fps = meta.FPS
		}
		ctx.JSON(http.StatusOK, report.SummarizeTrack(tracks.Frames, fps))
	})

	jobRoutes.GET("/video", serveJobVideo(jobs, utils.InputVideoName, "Video not found"))
	jobRoutes.GET("/overlay", serveJobVideo(jobs, utils.OverlayVideoName, "Overlay not found"))

	jobRoutes.GET("/frame", func(ctx *gin.Context) {
		t, err := strconv.ParseFloat(ctx.Query("t"), 64)
		if err != nil {
			abortDetail(ctx, http.StatusBadRequest, "Invalid time, expected seconds in 't' query parameter")
			return
		}

		id := ctx.Param("id")
		meta, tracks, results, ok := loadOverlayData(ctx, jobs, id)
		if !ok {
			return
		}

		canvas := overlay.NewCanvas()
		renderer := overlay.New(overlayConfig(tracks.Frames, results.Events, meta.FPS), canvas)
		renderer.OnMetadata(meta.Width, meta.Height)
		if err := renderer.Render(t); err != nil {
			log.Printf("api/Frame: Error, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := canvas.EncodePNG(&buf); err != nil {
			log.Printf("api/Frame: Error, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Data(http.StatusOK, "image/png", buf.Bytes())
	})

	jobRoutes.GET("/timeline", func(ctx *gin.Context) {
		id := ctx.Param("id")
		results, err := jobs.Results(id)
		if err != nil {
			abortFileError(ctx, "Results", err)
			return
		}

		//without metadata the page is still served, with no markers
		var duration float64
		if meta, err := jobs.Metadata(id); err == nil {
			duration = meta.Duration
		}

		var buf bytes.Buffer
		title := "Ride timeline - " + ctx.MustGet(jobKey).(store.Job).Filename
		if err := report.TimelinePage(&buf, title, results.Events, duration); err != nil {
			log.Printf("api/Timeline: Error, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	})

	jobRoutes.GET("/trajectory", func(ctx *gin.Context) {
		id := ctx.Param("id")
		tracks, err := jobs.Tracks(id)
		if err != nil {
			abortFileError(ctx, "Tracks", err)
			return
		}

		//metadata only frames the plot, it is optional
		meta, _ := jobs.Metadata(id)

		var buf bytes.Buffer
		if err := report.TrajectoryPlot(&buf, tracks.Frames, meta); errors.Is(err, report.ErrNoTrack) {
			abortDetail(ctx, http.StatusNotFound, "No tracking data for this job")
			return
		} else if err != nil {
			log.Printf("api/Trajectory: Error, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Data(http.StatusOK, "image/png", buf.Bytes())
	})

	return r
}

func serveJobVideo(jobs JobStore, name, notFound string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		videoPath := jobs.JobFile(ctx.Param("id"), name)

		if _, err := os.Stat(videoPath); err != nil {
			if os.IsNotExist(err) {
				abortDetail(ctx, http.StatusNotFound, notFound)
				return
			} else {
				ctx.Status(http.StatusInternalServerError)
				return
			}
		}

		ctx.Header("Content-Type", "video/mp4")
		ctx.Header("Accept-Ranges", "bytes")
		http.ServeFile(ctx.Writer, ctx.Request, videoPath)
	}
}
