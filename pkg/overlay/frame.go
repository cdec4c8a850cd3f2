package overlay

import (
	"math"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
)

//NormalizeFPS returns fps when it is a usable frame rate, otherwise utils.DefaultFPS
func NormalizeFPS(fps float64) float64 {
	if !(fps > 0) || math.IsInf(fps, 1) {
		return utils.DefaultFPS
	}
	return fps
}

//NoFrame is returned by FrameIndex when the time has no representable frame (infinite or overflowing)
const NoFrame = -1

//FrameIndex converts playback time (seconds) into a frame index: floor(t * fps).
//Negative or NaN times map to frame 0 and an invalid fps is replaced by the default one.
func FrameIndex(t, fps float64) int {
	if !(t > 0) {
		return 0
	}
	idx := math.Floor(t * NormalizeFPS(fps))
	if idx >= math.MaxInt {
		return NoFrame
	}
	return int(idx)
}

//EventFrame is the frame index of an event's timestamp
func EventFrame(e models.Event, fps float64) int {
	return FrameIndex(e.Timestamp, fps)
}
