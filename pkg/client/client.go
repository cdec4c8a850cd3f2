package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/pkg/errors"
)

//Client talks to the jobs api
type Client struct {
	baseURL    string
	httpClient *http.Client
	Limits     UploadLimits
}

//New returns a client for the api served at baseURL ("http://localhost:8000").
//A nil httpClient uses a client with a 30 seconds timeout (uploads are not limited).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		Limits:     DefaultUploadLimits(),
	}
}

//Upload validates the video at given path then uploads it, returns the new job's id.
//Validation failures (*models.ValidationError) happen before any request is made.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	info, err := ValidateFile(path, c.Limits)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "Upload: could not open '%s'", path)
	}
	defer f.Close()

	//stream the multipart body, videos can be hundreds of MB
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/videos", pr)
	if err != nil {
		pr.Close()
		return "", errors.Wrap(err, "Upload: could not create request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	//uploads may take longer than the client's timeout
	uploadClient := *c.httpClient
	uploadClient.Timeout = 0

	var res models.UploadResponse
	if err := c.do(&uploadClient, req, "upload "+info.Name(), &res); err != nil {
		return "", err
	}

	return res.JobID, nil
}

//Status returns the job's status
func (c *Client) Status(ctx context.Context, jobID string) (models.JobStatus, error) {
	var status models.JobStatus
	err := c.getJSON(ctx, "/api/jobs/"+url.PathEscape(jobID), &status)
	return status, err
}

//Results returns the job's metrics, events and tips
func (c *Client) Results(ctx context.Context, jobID string) (models.JobResults, error) {
	var res models.JobResults
	err := c.getJSON(ctx, "/api/jobs/"+url.PathEscape(jobID)+"/results", &res)
	return res, err
}

//Tracks returns the job's per frame tracking records
func (c *Client) Tracks(ctx context.Context, jobID string) (models.JobTracks, error) {
	var tracks models.JobTracks
	err := c.getJSON(ctx, "/api/jobs/"+url.PathEscape(jobID)+"/tracks", &tracks)
	return tracks, err
}

//Metadata returns the job's video metadata
func (c *Client) Metadata(ctx context.Context, jobID string) (models.VideoMetadata, error) {
	var meta models.VideoMetadata
	err := c.getJSON(ctx, "/api/jobs/"+url.PathEscape(jobID)+"/metadata", &meta)
	return meta, err
}

//Frame returns the PNG of the overlay drawn at playback time t (seconds)
func (c *Client) Frame(ctx context.Context, jobID string, t float64) ([]byte, error) {
	path := "/api/jobs/" + url.PathEscape(jobID) + "/frame?t=" + strconv.FormatFloat(t, 'f', -1, 64)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Frame: could not create request")
	}

	var png []byte
	err = c.do(c.httpClient, req, "frame", func(body io.Reader) error {
		var readErr error
		png, readErr = ioutil.ReadAll(body)
		return readErr
	})

	return png, err
}

//Poller returns a status poller of given job
func (c *Client) Poller(jobID string) *Poller {
	return NewPoller(func(ctx context.Context) (models.JobStatus, error) {
		return c.Status(ctx, jobID)
	})
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "could not create request for '%s'", path)
	}

	return c.do(c.httpClient, req, "GET "+path, v)
}

//do sends req and decodes a successful response's body into out (a JSON target or a func(io.Reader) error).
//Transport failures and non 2xx responses are returned as *models.NetworkError.
func (c *Client) do(httpClient *http.Client, req *http.Request, op string, out interface{}) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.NetworkError{Op: op, StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	switch out := out.(type) {
	case nil:
		return nil
	case func(io.Reader) error:
		if err := out(resp.Body); err != nil {
			return &models.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: err}
		}
		return nil
	default:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &models.DataShapeError{Field: "response", Message: fmt.Sprintf("%s: %v", op, err)}
		}
		return nil
	}
}

//readDetail returns the 'detail' of an error payload, empty when there is none
func readDetail(body io.Reader) string {
	var payload models.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, 64*1024)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
