package core

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnsupportedType     = fmt.Errorf("%w: Unsupported file type", ErrBadRequest)
	ErrDecode              = errors.New("decode error")
	ErrNotFound            = errors.New("not found")
	ErrStorage             = errors.New("storage error")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrSummarizationFailed = errors.New("summarization failed")
	ErrTimeout             = errors.New("timeout")
)

// BadRequest builds an ErrBadRequest carrying a message meant for the client.
func BadRequest(msg string) error {
	return &RequestError{Msg: msg}
}

// RequestError is a client-facing validation failure.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func (e *RequestError) Unwrap() error { return ErrBadRequest }
