package model

// Utterance is raw 16-bit mono PCM captured for one listen-and-stop cycle.
type Utterance []byte

// Outcome tells how a recognition attempt ended.
type Outcome int

const (
	// Recognized means the service returned a transcription.
	Recognized Outcome = iota
	// NoMatch means the service heard audio but had no confident transcription.
	NoMatch
	// ServiceError means the request to the service failed.
	ServiceError
)

func (o Outcome) String() string {
	switch o {
	case Recognized:
		return "recognized"
	case NoMatch:
		return "no_match"
	case ServiceError:
		return "service_error"
	default:
		return "unknown"
	}
}

// Transcript is the result of one recognition attempt. Only a Recognized
// transcript carries Text; a ServiceError carries the failure Detail.
type Transcript struct {
	Outcome Outcome
	Text    string
	Detail  string
}

// NewRecognized wraps a successful transcription.
func NewRecognized(text string) Transcript {
	return Transcript{Outcome: Recognized, Text: text}
}

// NewNoMatch is the "no confident result" transcript.
func NewNoMatch() Transcript {
	return Transcript{Outcome: NoMatch}
}

// NewServiceError is the "request failed" transcript.
func NewServiceError(detail string) Transcript {
	return Transcript{Outcome: ServiceError, Detail: detail}
}

// OK reports whether the transcript holds recognized text.
func (t Transcript) OK() bool {
	return t.Outcome == Recognized
}

// ReplyText is the text produced for one turn, spoken back to the user.
type ReplyText string
