package stt

import "github.com/pkg/errors"

var (
	// ErrEmptyAudio is returned when there is no audio to transcribe.
	ErrEmptyAudio = errors.New("audio data is empty")
)
