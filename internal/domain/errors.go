package domain

import (
	"errors"
	"fmt"
)

var (
	ErrKanjiNotFound   = errors.New("kanji not found in index")
	ErrStrokesNotFound = errors.New("kanji strokes not found")
)

// UpstreamError reports a failed fetch of an upstream resource, either at the
// transport level (StatusCode 0) or through a non-2xx response.
type UpstreamError struct {
	Resource   string
	StatusCode int
	Status     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP error: %s", e.Resource, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Resource, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// FormatError reports upstream data that could not be parsed or did not have
// the expected structure.
type FormatError struct {
	Resource string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Resource, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// EncodingError reports a stroke order document that could not be encoded for
// transport.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
