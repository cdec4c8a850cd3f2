package models

import (
	"fmt"

	"github.com/pkg/errors"
)

//ErrSurfaceNotReady is the render precondition failure: the drawing surface was not sized yet.
//Renderers treat it as a silent no-op.
var ErrSurfaceNotReady = errors.New("drawing surface not sized")

//ValidationError rejects an upload before any network call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

//NetworkError is a failed request or a non-success response
type NetworkError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

//DataShapeError is a missing or invalid value in fetched data (fps, duration...)
type DataShapeError struct {
	Field   string
	Message string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
