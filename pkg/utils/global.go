package utils

import (
	"strings"

	"github.com/spf13/viper"
)

//DefaultFPS is the frame rate used whenever a video's frame rate is missing or invalid
const DefaultFPS = 30.0

//TrajectoryWindow is the number of trailing frames drawn as the motion trail
const TrajectoryWindow = 30

//ProximityTolerance is the frame distance (exclusive) within which an event is highlighted
const ProximityTolerance = 5

//MaxUploadMB is the largest accepted upload
const MaxUploadMB = 500

//BytesPerMB is used to convert upload sizes, the same way the browser and the api do (1024*1024)
const BytesPerMB = 1024 * 1024

//PollInterval is the default job status polling interval, in milliseconds
const PollInterval = 1000

//AllowedFormats are the accepted upload extensions (lower case, without dot)
var AllowedFormats = []string{"mp4", "mov"}

//Job files layout inside a job directory
const (
	InputVideoName   = "input.mp4"
	OverlayVideoName = "overlay.mp4"
	ResultsFileName  = "results.json"
	TracksFileName   = "tracks.json"
	MetadataFileName = "metadata.json"
)

//Messages shown to the user, shared by the api and the client (format verbs filled by client.ValidateUpload)
const (
	UnsupportedFormatMessage = "Unsupported format. Please upload %s."
	FileTooLargeMessage      = "Video exceeds %dMB limit. Please compress or trim your video."
	NoFileMessage            = "No file provided"
	JobNotFoundMessage       = "Job not found"
	NotReadyMessage          = "not yet available. Job may still be processing."
)

//SetDefaults registers the default value of every configuration key.
//Values from config.yaml, environment (SURF_ prefix) or .env override them.
func SetDefaults() {
	viper.SetDefault("http.port", "8000")
	viper.SetDefault("directory.root", "./data")
	viper.SetDefault("directory.jobs", "./data/jobs")
	viper.SetDefault("database.path", "./data/jobs.db")
	viper.SetDefault("frontend.static-files-path", "./client/")
	viper.SetDefault("upload.max_mb", MaxUploadMB)
	viper.SetDefault("upload.formats", AllowedFormats)
	viper.SetDefault("overlay.fps", DefaultFPS)
	viper.SetDefault("overlay.trajectory_window", TrajectoryWindow)
	viper.SetDefault("overlay.proximity_tolerance", ProximityTolerance)
	viper.SetDefault("analyzer.args", []string{})
	viper.SetDefault("video.export_overlay", true)
	viper.SetDefault("poll.interval", PollInterval)

	viper.SetEnvPrefix("surf")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}
