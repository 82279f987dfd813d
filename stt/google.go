package stt

import (
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/mrsingh-rishi/voice-companion/audio"
)

// GoogleClient transcribes captured utterances with Google Cloud Speech-to-Text.
// It relies on Application Default Credentials unless a credentials file is given.
type GoogleClient struct {
	speechClient *speech.Client
	language     string
	source       UtteranceSource
	log          *logrus.Entry
}

func NewGoogleClient(ctx context.Context, credentialsFile, language string, source UtteranceSource, log *logrus.Entry) (*GoogleClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	speechClient, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create speech client")
	}
	return &GoogleClient{
		speechClient: speechClient,
		language:     language,
		source:       source,
		log:          log,
	}, nil
}

func (g *GoogleClient) Name() string {
	return "google"
}

// Close cleans up the speech client connection.
func (g *GoogleClient) Close() error {
	return g.speechClient.Close()
}

func (g *GoogleClient) Recognize(ctx context.Context) (Recognition, error) {
	utterance, err := g.source.Capture(ctx)
	if err != nil {
		return Recognition{}, errors.Wrap(err, "capture utterance")
	}
	if len(utterance) == 0 {
		return Recognition{Reason: NoMatch}, nil
	}

	resp, err := g.speechClient.Recognize(ctx, recognizeRequest(g.language, utterance))
	if err != nil {
		return Recognition{}, errors.Wrap(err, "google recognize")
	}
	return recognitionFromResponse(resp), nil
}

func recognizeRequest(language string, pcm []byte) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   audio.SampleRate,
			AudioChannelCount: audio.Channels,
			LanguageCode:      language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: pcm},
		},
	}
}

// recognitionFromResponse joins the top alternative of every result.
func recognitionFromResponse(resp *speechpb.RecognizeResponse) Recognition {
	var parts []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := strings.TrimSpace(alts[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}
	return FromText(strings.Join(parts, " "))
}
