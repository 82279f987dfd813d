package azure

import (
	"context"
	"strconv"
	"strings"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/config"
	"github.com/mrsingh-rishi/voice-companion/tts"
)

// Synthesizer speaks text on the default speaker with a fixed neural voice.
type Synthesizer struct {
	creds config.SpeechConfig
	log   *logrus.Entry
}

func NewSynthesizer(creds config.SpeechConfig, log *logrus.Entry) (*Synthesizer, error) {
	if creds.Key == "" || creds.Region == "" {
		return nil, errors.New("azure speech requires a subscription key and region")
	}
	return &Synthesizer{creds: creds, log: log.WithField("service", "azure-tts")}, nil
}

func (s *Synthesizer) Name() string {
	return "azure"
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) (tts.Synthesis, error) {
	if strings.TrimSpace(text) == "" {
		return tts.Synthesis{}, tts.ErrEmptyText
	}

	conf, err := newSpeechConfig(s.creds)
	if err != nil {
		return tts.Synthesis{}, err
	}
	defer conf.Close()

	if err := conf.SetSpeechSynthesisVoiceName(s.creds.Voice); err != nil {
		return tts.Synthesis{}, errors.Wrap(err, "failed to set synthesis voice")
	}

	audioConfig, err := audio.NewAudioConfigFromDefaultSpeakerOutput()
	if err != nil {
		return tts.Synthesis{}, errors.Wrap(err, "failed to open default speaker")
	}
	defer audioConfig.Close()

	synthesizer, err := speech.NewSpeechSynthesizerFromConfig(conf, audioConfig)
	if err != nil {
		return tts.Synthesis{}, errors.Wrap(err, "failed to create speech synthesizer")
	}
	defer synthesizer.Close()

	var outcome speech.SpeechSynthesisOutcome
	select {
	case outcome = <-synthesizer.SpeakTextAsync(text):
	case <-ctx.Done():
		return tts.CanceledBy(tts.CancelByUser, "", ""), nil
	}
	defer outcome.Close()

	if outcome.Error != nil {
		return tts.Synthesis{}, errors.Wrap(outcome.Error, "synthesis outcome error")
	}

	switch outcome.Result.Reason {
	case common.SynthesizingAudioCompleted:
		return tts.Synthesis{Reason: tts.Completed}, nil
	case common.Canceled:
		details, err := speech.NewCancellationDetailsFromSpeechSynthesisResult(outcome.Result)
		if err != nil {
			return tts.Synthesis{}, errors.Wrap(err, "read cancellation details")
		}
		return cancellation(details), nil
	default:
		return tts.Synthesis{}, errors.Errorf("unexpected synthesis result: %s", outcome.Result.Reason.String())
	}
}

func cancellation(details *speech.CancellationDetails) tts.Synthesis {
	switch details.Reason {
	case common.Error:
		return tts.CanceledBy(tts.CancelError, strconv.Itoa(int(details.ErrorCode)), details.ErrorDetails)
	case common.EndOfStream:
		return tts.CanceledBy(tts.CancelEndOfStream, "", "")
	default:
		return tts.CanceledBy(tts.CancelByUser, "", "")
	}
}
