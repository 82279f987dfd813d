// Package azure wraps the Azure Cognitive Services Speech SDK. Recognition
// uses the default microphone and synthesis the default speaker; both create
// and release their SDK objects inside every call.
package azure

import (
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/voice-companion/config"
)

func newSpeechConfig(creds config.SpeechConfig) (*speech.SpeechConfig, error) {
	if creds.Key == "" || creds.Region == "" {
		return nil, errors.New("azure speech requires a subscription key and region")
	}
	conf, err := speech.NewSpeechConfigFromSubscription(creds.Key, creds.Region)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create azure speech config")
	}
	return conf, nil
}
