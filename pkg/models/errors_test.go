package models

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrSurfaceNotReadyWrapped(t *testing.T) {
	err := errors.Wrap(ErrSurfaceNotReady, "render at 1.5s")
	assert.ErrorIs(t, err, ErrSurfaceNotReady)
	assert.Equal(t, ErrSurfaceNotReady, errors.Cause(err))
}

func TestNetworkError(t *testing.T) {
	refused := errors.New("connection refused")

	tests := []struct {
		err  *NetworkError
		want string
	}{
		{&NetworkError{Op: "upload", StatusCode: http.StatusBadRequest, Detail: "Unsupported format. Please upload MP4 or MOV."}, "Unsupported format. Please upload MP4 or MOV."},
		{&NetworkError{Op: "upload", Err: refused}, "upload: connection refused"},
		{&NetworkError{Op: "get results", StatusCode: http.StatusBadGateway}, "get results: unexpected status 502"},
	}

	for _, tt := range tests {
		assert.EqualError(t, tt.err, tt.want)
	}

	var netErr *NetworkError
	wrapped := errors.Wrap(&NetworkError{Op: "upload", Err: refused}, "client")
	if assert.ErrorAs(t, wrapped, &netErr) {
		assert.Equal(t, "upload", netErr.Op)
	}
	assert.ErrorIs(t, wrapped, refused)
}

func TestDataShapeError(t *testing.T) {
	assert.EqualError(t, &DataShapeError{Field: "fps", Message: "must be positive"}, "invalid fps: must be positive")
}
