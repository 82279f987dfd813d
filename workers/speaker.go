package workers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/tts"
)

// Speaker voices a reply. Every call ends in exactly one log entry.
type Speaker struct {
	synthesizer tts.Synthesizer
	log         *logrus.Entry
}

func NewSpeaker(synthesizer tts.Synthesizer, log *logrus.Entry) (*Speaker, error) {
	if synthesizer == nil {
		return nil, fmt.Errorf("synthesizer is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Speaker{
		synthesizer: synthesizer,
		log:         log.WithField("tts", synthesizer.Name()),
	}, nil
}

func (s *Speaker) Speak(ctx context.Context, text string) {
	result, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		s.log.WithError(err).Error("Error during speech synthesis")
		return
	}

	switch result.Reason {
	case tts.Completed:
		s.log.Info("Speech synthesized successfully.")
	case tts.Canceled:
		entry := s.log
		if c := result.Cancellation; c != nil {
			entry = entry.WithField("reason", c.Reason.String())
			if c.Reason == tts.CancelError {
				entry = entry.WithFields(logrus.Fields{
					"error_code":    c.ErrorCode,
					"error_details": c.ErrorDetails,
				})
			}
		}
		entry.Warn("Speech synthesis canceled")
	default:
		s.log.WithField("reason", int(result.Reason)).Warn("Unexpected speech synthesis result")
	}
}
