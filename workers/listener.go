package workers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/model"
	"github.com/mrsingh-rishi/voice-companion/stt"
)

// Listener turns one spoken utterance into a Transcript.
type Listener struct {
	recognizer stt.Recognizer
	log        *logrus.Entry
}

func NewListener(recognizer stt.Recognizer, log *logrus.Entry) (*Listener, error) {
	if recognizer == nil {
		return nil, fmt.Errorf("recognizer is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Listener{
		recognizer: recognizer,
		log:        log.WithField("stt", recognizer.Name()),
	}, nil
}

// Capture listens until the recognizer reports an outcome. It never
// retries and never fails; provider errors come back as a ServiceError.
func (l *Listener) Capture(ctx context.Context) model.Transcript {
	l.log.Info("Say something...")

	recognition, err := l.recognizer.Recognize(ctx)
	if err != nil && ctx.Err() != nil {
		l.log.WithError(err).Debug("Listening interrupted")
		return model.NewServiceError(err.Error())
	}
	if err != nil {
		l.log.WithError(err).Error("Could not request results from the speech recognition service")
		return model.NewServiceError(err.Error())
	}

	if recognition.Reason == stt.NoMatch {
		l.log.Warn("Could not understand audio")
		return model.NewNoMatch()
	}

	l.log.Infof("You said: %s", recognition.Text)
	return model.NewRecognized(recognition.Text)
}
