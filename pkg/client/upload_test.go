package client

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	limits := DefaultUploadLimits()

	tests := []struct {
		name     string
		filename string
		size     int64
		wantMsg  string
	}{
		{"mp4", "ride.mp4", 10, ""},
		{"upper case mov", "RIDE.MOV", 10, ""},
		{"exactly 500MB", "ride.mp4", 500 * utils.BytesPerMB, ""},
		{"avi", "clip.avi", 10, "Unsupported format. Please upload MP4 or MOV."},
		{"no extension", "clip", 10, "Unsupported format. Please upload MP4 or MOV."},
		{"600MB", "ride.mp4", 600 * utils.BytesPerMB, "Video exceeds 500MB limit. Please compress or trim your video."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.size, limits)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantMsg, validationErr.Message)
		})
	}
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "MP4", formatList([]string{"mp4"}))
	assert.Equal(t, "MP4 or MOV", formatList([]string{"mp4", "mov"}))
	assert.Equal(t, "MP4, MOV or MKV", formatList([]string{"mp4", "mov", "mkv"}))
}

func countingServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobId": "abc"}`))
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

func TestUploadRejectedBeforeNetwork(t *testing.T) {
	srv, hits := countingServer(t)
	c := New(srv.URL, nil)
	dir := t.TempDir()

	avi := filepath.Join(dir, "clip.avi")
	require.NoError(t, ioutil.WriteFile(avi, []byte("not a video"), 0644))

	big := filepath.Join(dir, "big.mp4")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(600*utils.BytesPerMB)) //sparse file, nothing is written to disk
	require.NoError(t, f.Close())

	for _, path := range []string{avi, big} {
		_, err := c.Upload(context.Background(), path)
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr, path)
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestUploadMissingFile(t *testing.T) {
	srv, hits := countingServer(t)
	c := New(srv.URL, nil)

	_, err := c.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}
