package report

import (
	"math"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//TrackSummary describes how well and how far the subject was tracked
type TrackSummary struct {
	Records    int     `json:"records"`
	FirstFrame int     `json:"firstFrame"`
	LastFrame  int     `json:"lastFrame"`
	Seconds    float64 `json:"seconds"`    //time between first and last record
	Coverage   float64 `json:"coverage"`   //records / frames spanned, in (0,1]
	Gaps       int     `json:"gaps"`       //missing runs of frames between records
	PathLength float64 `json:"pathLength"` //centroid path, pixels
	MeanStep   float64 `json:"meanStep"`   //pixels per frame
	StdStep    float64 `json:"stdStep"`
	MaxStep    float64 `json:"maxStep"`
	MeanSpeed  float64 `json:"meanSpeed"` //pixels per second
}

//SummarizeTrack computes a TrackSummary of given records (any order, one record per frame is kept).
//The zero summary is returned when there are no records.
func SummarizeTrack(frames []models.TrackFrame, fps float64) TrackSummary {
	records := overlay.NewTrackIndex(frames).Frames()
	if len(records) == 0 {
		return TrackSummary{}
	}

	fps = overlay.NormalizeFPS(fps)
	first, last := records[0].Frame, records[len(records)-1].Frame
	s := TrackSummary{
		Records:    len(records),
		FirstFrame: first,
		LastFrame:  last,
		Seconds:    float64(last-first) / fps,
		Coverage:   float64(len(records)) / float64(last-first+1),
	}

	steps := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		dist := math.Hypot(cur.Centroid[0]-prev.Centroid[0], cur.Centroid[1]-prev.Centroid[1])
		gap := cur.Frame - prev.Frame
		if gap > 1 {
			s.Gaps++
		}
		steps = append(steps, dist/float64(gap))
		s.PathLength += dist
	}

	if len(steps) > 0 {
		s.MeanStep = stat.Mean(steps, nil)
		s.MeanSpeed = s.MeanStep * fps
		s.MaxStep = floats.Max(steps)
	}
	if len(steps) > 1 {
		s.StdStep = stat.StdDev(steps, nil)
	}

	return s
}
