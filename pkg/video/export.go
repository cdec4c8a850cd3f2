package video

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

//ExportOverlay reads the video at srcPath and writes to dstPath ('.mp4') the same video with the overlay
//(bounding box, trajectory, centroid and nearby events) drawn on every frame. Frames go through the same
//overlay.Renderer the frame endpoint uses, driven by an overlay.Clock advanced once per decoded frame.
//The frames are first written as XVID ('.avi', next to dstPath) then converted by ffmpeg.
func ExportOverlay(srcPath, dstPath string, cfg overlay.Config, meta models.VideoMetadata, onProgress func(float64)) error {
	tmpVideoPath := strings.TrimSuffix(dstPath, filepath.Ext(dstPath)) + ".avi"
	defer os.Remove(tmpVideoPath) //remove '.avi' temp file at the end of this function

	if err := writeOverlayFrames(srcPath, tmpVideoPath, cfg, meta, onProgress); err != nil {
		return err
	}

	//Convert to from 'avi' to 'mp4'. example: ffmpeg -y -i overlay.avi overlay.mp4
	var stderr bytes.Buffer
	cmd := exec.Command("ffmpeg", "-y", "-i", tmpVideoPath, "-movflags", "+faststart", dstPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "ExportOverlay: ffmpeg failed: %s", strings.TrimSpace(lastLine(stderr.String())))
	}

	return nil
}

func writeOverlayFrames(srcPath, dstPath string, cfg overlay.Config, meta models.VideoMetadata, onProgress func(float64)) error {
	cap, err := gocv.VideoCaptureFile(srcPath)
	if err != nil {
		return errors.Wrapf(err, "ExportOverlay: could not open '%s'", srcPath)
	}
	defer cap.Close()

	fps := overlay.NormalizeFPS(meta.FPS)
	videoWriter, err := gocv.VideoWriterFile(dstPath, "XVID", fps, meta.Width, meta.Height, true)
	if err != nil {
		return errors.Wrapf(err, "ExportOverlay: could not create '%s'", dstPath)
	}
	defer videoWriter.Close()

	surface := NewMatSurface()
	defer surface.Close()

	clock := overlay.NewClock(meta.Duration)
	cfg.FPS = fps
	renderer := overlay.New(cfg, surface)
	renderer.Attach(clock)
	defer renderer.Close()
	clock.SetResolution(meta.Width, meta.Height)

	frameMat := gocv.NewMat()
	defer frameMat.Close()
	surface.SetBackdrop(&frameMat)

	progressStep := int(fps) //report progress about once per second of video
	if progressStep < 1 {
		progressStep = 1
	}

	for frameIndex := 0; ; frameIndex++ {
		if !cap.Read(&frameMat) || frameMat.Empty() { //finished to read all video's frames
			break
		}

		clock.SetTime(frameTime(frameIndex, fps))

		if err := videoWriter.Write(surface.Mat()); err != nil {
			return errors.Wrapf(err, "ExportOverlay: could not write frame %d", frameIndex)
		}

		if onProgress != nil && meta.FrameCount > 0 && frameIndex%progressStep == 0 {
			onProgress(float64(frameIndex+1) / float64(meta.FrameCount))
		}
	}

	return nil
}

//frameTime samples the middle of the frame's interval so overlay.FrameIndex maps back to this very frame
func frameTime(frameIndex int, fps float64) float64 {
	return (float64(frameIndex) + 0.5) / fps
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}
