package azure

import (
	"context"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/config"
	"github.com/mrsingh-rishi/voice-companion/stt"
)

// Recognizer listens on the default microphone until the SDK detects the end
// of speech, then returns the recognized text.
type Recognizer struct {
	creds config.SpeechConfig
	log   *logrus.Entry
}

func NewRecognizer(creds config.SpeechConfig, log *logrus.Entry) (*Recognizer, error) {
	if creds.Key == "" || creds.Region == "" {
		return nil, errors.New("azure speech requires a subscription key and region")
	}
	return &Recognizer{creds: creds, log: log.WithField("service", "azure-stt")}, nil
}

func (r *Recognizer) Name() string {
	return "azure"
}

func (r *Recognizer) Recognize(ctx context.Context) (stt.Recognition, error) {
	conf, err := newSpeechConfig(r.creds)
	if err != nil {
		return stt.Recognition{}, err
	}
	defer conf.Close()

	if err := conf.SetSpeechRecognitionLanguage(r.creds.Language); err != nil {
		return stt.Recognition{}, errors.Wrap(err, "failed to set recognition language")
	}

	audioConfig, err := audio.NewAudioConfigFromDefaultMicrophoneInput()
	if err != nil {
		return stt.Recognition{}, errors.Wrap(err, "failed to open default microphone")
	}
	defer audioConfig.Close()

	recognizer, err := speech.NewSpeechRecognizerFromConfig(conf, audioConfig)
	if err != nil {
		return stt.Recognition{}, errors.Wrap(err, "failed to create speech recognizer")
	}
	defer recognizer.Close()

	var outcome speech.SpeechRecognitionOutcome
	select {
	case outcome = <-recognizer.RecognizeOnceAsync():
	case <-ctx.Done():
		return stt.Recognition{}, ctx.Err()
	}
	defer outcome.Close()

	if outcome.Error != nil {
		return stt.Recognition{}, errors.Wrap(outcome.Error, "recognition outcome error")
	}

	result := outcome.Result
	switch result.Reason {
	case common.RecognizedSpeech:
		return stt.FromText(result.Text), nil
	case common.NoMatch:
		return stt.Recognition{Reason: stt.NoMatch}, nil
	case common.Canceled:
		cancellation, err := speech.NewCancellationDetailsFromSpeechRecognitionResult(result)
		if err != nil {
			return stt.Recognition{}, errors.Wrap(err, "recognition canceled")
		}
		return stt.Recognition{}, errors.Errorf("recognition canceled: reason=%d, code=%d, details=%s",
			int(cancellation.Reason), int(cancellation.ErrorCode), cancellation.ErrorDetails)
	default:
		return stt.Recognition{}, errors.Errorf("unexpected recognition result: %s", result.Reason.String())
	}
}
