package store

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/pkg/errors"
)

//ErrNotReady is returned when a job file was not produced (yet)
var ErrNotReady = errors.New(utils.NotReadyMessage)

//WriteJSON writes v as JSON to path through a temp file, readers never see a partial file
func WriteJSON(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshal '%s'", path)
	}

	tmp := path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "write '%s'", tmp)
	}

	return errors.Wrapf(os.Rename(tmp, path), "rename '%s'", tmp)
}

//ReadJSON decodes the JSON file at path into v, ErrNotReady if the file does not exist
func ReadJSON(path string, v interface{}) error {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return ErrNotReady
	} else if err != nil {
		return errors.Wrapf(err, "read '%s'", path)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &models.DataShapeError{Field: path, Message: err.Error()}
	}

	return nil
}

//Results loads the job's results.json
func (s *Store) Results(id string) (models.JobResults, error) {
	var res models.JobResults
	if !validID(id) {
		return res, ErrJobNotFound
	}

	err := ReadJSON(s.JobFile(id, utils.ResultsFileName), &res)
	if res.Events == nil {
		res.Events = []models.Event{}
	}
	if res.Tips == nil {
		res.Tips = []models.Tip{}
	}

	return res, err
}

//Tracks loads the job's tracks.json
func (s *Store) Tracks(id string) (models.JobTracks, error) {
	var tracks models.JobTracks
	if !validID(id) {
		return tracks, ErrJobNotFound
	}

	err := ReadJSON(s.JobFile(id, utils.TracksFileName), &tracks)
	if tracks.Frames == nil {
		tracks.Frames = []models.TrackFrame{}
	}

	return tracks, err
}

//Metadata loads the job's metadata.json and validates it
func (s *Store) Metadata(id string) (models.VideoMetadata, error) {
	var meta models.VideoMetadata
	if !validID(id) {
		return meta, ErrJobNotFound
	}

	if err := ReadJSON(s.JobFile(id, utils.MetadataFileName), &meta); err != nil {
		return meta, err
	}

	return meta, meta.Validate()
}

//SaveMetadata writes the job's metadata.json
func (s *Store) SaveMetadata(id string, meta models.VideoMetadata) error {
	return WriteJSON(s.JobFile(id, utils.MetadataFileName), meta)
}
