package tts

import "github.com/pkg/errors"

var (
	// ErrEmptyText is returned when attempting to synthesize blank text.
	ErrEmptyText = errors.New("text cannot be empty")
)
