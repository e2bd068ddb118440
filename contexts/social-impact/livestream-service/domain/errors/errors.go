package errors

import "errors"

var (
	ErrStreamNotFound      = errors.New("livestream not found")
	ErrInvalidStreamInput  = errors.New("invalid livestream input")
	ErrNotStreamOwner      = errors.New("not authorized to end this stream")
	ErrStreamAlreadyExists = errors.New("stream id already exists")
)
