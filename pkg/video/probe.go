package video

import (
	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

//Probe reads frame rate, resolution, frame count and duration of the video at given path.
//A video that can not drive the overlay (no frame rate, no frames...) returns a DataShapeError with the metadata read.
func Probe(path string) (models.VideoMetadata, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return models.VideoMetadata{}, errors.Wrapf(err, "Probe: could not open '%s'", path)
	}
	defer cap.Close()

	if !cap.IsOpened() {
		return models.VideoMetadata{}, errors.Errorf("Probe: could not open '%s'", path)
	}

	meta := models.VideoMetadata{
		FPS:        cap.Get(gocv.VideoCaptureFPS),
		Width:      int(cap.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(cap.Get(gocv.VideoCaptureFrameHeight)),
		FrameCount: int(cap.Get(gocv.VideoCaptureFrameCount)),
	}

	if meta.FPS > 0 {
		meta.Duration = float64(meta.FrameCount) / meta.FPS
	}

	return meta, meta.Validate()
}
