package stt

import (
	"context"
	"strings"

	"github.com/mrsingh-rishi/voice-companion/model"
)

// Reason tells how a successful recognition request ended.
type Reason int

const (
	// Recognized means the provider produced a transcription.
	Recognized Reason = iota
	// NoMatch means audio was heard but nothing could be confidently transcribed.
	NoMatch
)

// Recognition is what a provider returns when the request itself succeeded.
type Recognition struct {
	Reason Reason
	Text   string
}

// Recognizer captures one utterance and transcribes it with a remote service.
// A failed request is reported as an error; NoMatch is not an error.
type Recognizer interface {
	// Name returns the provider identifier (for logging).
	Name() string

	Recognize(ctx context.Context) (Recognition, error)
}

// UtteranceSource yields one captured utterance per call.
type UtteranceSource interface {
	Capture(ctx context.Context) (model.Utterance, error)
}

// FromText maps a provider transcription to a Recognition; blank text is a NoMatch.
func FromText(text string) Recognition {
	text = strings.TrimSpace(text)
	if text == "" {
		return Recognition{Reason: NoMatch}
	}
	return Recognition{Reason: Recognized, Text: text}
}
