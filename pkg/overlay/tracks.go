package overlay

import (
	"sort"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
)

//TrackIndex answers per-frame queries over a job's tracking records.
//It is built once when the records arrive and never modified afterwards.
type TrackIndex struct {
	frames  []models.TrackFrame //sorted by frame, one record per frame
	byFrame map[int]int         //frame => position in frames
}

//NewTrackIndex sorts a private copy of given records and indexes it by frame number.
//When two records share a frame number the first one (input order) is kept.
func NewTrackIndex(records []models.TrackFrame) *TrackIndex {
	idx := &TrackIndex{
		frames:  make([]models.TrackFrame, 0, len(records)),
		byFrame: make(map[int]int, len(records)),
	}

	sorted := make([]models.TrackFrame, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame < sorted[j].Frame
	})

	for _, rec := range sorted {
		if _, ok := idx.byFrame[rec.Frame]; ok {
			continue
		}
		idx.byFrame[rec.Frame] = len(idx.frames)
		idx.frames = append(idx.frames, rec)
	}

	return idx
}

//Len returns the number of indexed records
func (idx *TrackIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.frames)
}

//Frames returns a copy of the indexed records, ascending by frame
func (idx *TrackIndex) Frames() []models.TrackFrame {
	if idx.Len() == 0 {
		return nil
	}
	out := make([]models.TrackFrame, len(idx.frames))
	copy(out, idx.frames)
	return out
}

//Lookup returns the record of exactly given frame. No interpolation between neighbours.
func (idx *TrackIndex) Lookup(frame int) (models.TrackFrame, bool) {
	if idx == nil {
		return models.TrackFrame{}, false
	}
	pos, ok := idx.byFrame[frame]
	if !ok {
		return models.TrackFrame{}, false
	}
	return idx.frames[pos], true
}

//Trajectory returns the records with frame in (current-window, current], ascending.
//Nothing after current is ever returned.
func (idx *TrackIndex) Trajectory(current, window int) []models.TrackFrame {
	if idx.Len() == 0 || window <= 0 {
		return nil
	}

	lower := current - window
	start := sort.Search(len(idx.frames), func(i int) bool {
		return idx.frames[i].Frame > lower
	})
	end := sort.Search(len(idx.frames), func(i int) bool {
		return idx.frames[i].Frame > current
	})
	if start >= end {
		return nil
	}

	out := make([]models.TrackFrame, end-start)
	copy(out, idx.frames[start:end])
	return out
}
