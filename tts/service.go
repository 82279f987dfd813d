package tts

import "context"

// Reason tells how a synthesis request ended.
type Reason int

const (
	// Completed means the audio was fully played.
	Completed Reason = iota
	// Canceled means synthesis or playback stopped early; see Cancellation.
	Canceled
)

// CancellationReason explains a Canceled synthesis.
type CancellationReason int

const (
	CancelError CancellationReason = iota + 1
	CancelEndOfStream
	CancelByUser
)

func (r CancellationReason) String() string {
	switch r {
	case CancelError:
		return "Error"
	case CancelEndOfStream:
		return "EndOfStream"
	case CancelByUser:
		return "CancelledByUser"
	default:
		return "Unknown"
	}
}

// Cancellation carries the details of a canceled synthesis. ErrorCode and
// ErrorDetails are only set when Reason is CancelError.
type Cancellation struct {
	Reason       CancellationReason
	ErrorCode    string
	ErrorDetails string
}

// Synthesis is the outcome of a request that reached the provider.
type Synthesis struct {
	Reason       Reason
	Cancellation *Cancellation
}

// Synthesizer speaks text on the default output device with a fixed voice.
// Errors are failures that prevented a request (device, network); provider
// side failures are reported as a Canceled Synthesis.
type Synthesizer interface {
	// Name returns the provider identifier (for logging).
	Name() string

	Synthesize(ctx context.Context, text string) (Synthesis, error)
}

// AudioSink plays PCM16 mono audio and blocks until done.
type AudioSink interface {
	Play(ctx context.Context, pcm []byte) error
}

// CanceledBy builds a canceled outcome.
func CanceledBy(reason CancellationReason, code, details string) Synthesis {
	return Synthesis{
		Reason:       Canceled,
		Cancellation: &Cancellation{Reason: reason, ErrorCode: code, ErrorDetails: details},
	}
}
