// Package apperr holds the sentinel errors shared by the encoder, decoder and commands.
package apperr

import "errors"

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrInvalidPitchName = errors.New("invalid pitch name")
	ErrMalformedNumeric = errors.New("malformed numeric field")
	ErrEmptyInput       = errors.New("empty token input")
	ErrInvalidHeader    = errors.New("invalid tempo or timebase")
)
