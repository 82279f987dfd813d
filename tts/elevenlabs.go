package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io"
	// ElevenLabsSampleRate matches the requested pcm_16000 output format.
	ElevenLabsSampleRate = 16000
)

// ElevenLabsClient synthesizes speech with ElevenLabs and plays it through an AudioSink.
type ElevenLabsClient struct {
	APIKey     string
	VoiceId    string
	ModelId    string
	BaseURL    string
	HTTPClient *http.Client
	Output     AudioSink
	log        *logrus.Entry
}

func NewElevenLabsClient(apiKey, voiceId, modelId string, output AudioSink, log *logrus.Entry) (*ElevenLabsClient, error) {
	if apiKey == "" {
		return nil, errors.New("elevenlabs api key is required")
	}
	if output == nil {
		return nil, errors.New("audio output is required")
	}
	return &ElevenLabsClient{
		APIKey:     apiKey,
		VoiceId:    voiceId,
		ModelId:    modelId,
		BaseURL:    elevenLabsBaseURL,
		HTTPClient: http.DefaultClient,
		Output:     output,
		log:        log,
	}, nil
}

func (client *ElevenLabsClient) Name() string {
	return "elevenlabs"
}

// Synthesize requests the streaming with-timestamps endpoint, decodes every
// base64 PCM chunk and plays the result once the stream ends.
func (client *ElevenLabsClient) Synthesize(ctx context.Context, text string) (Synthesis, error) {
	if strings.TrimSpace(text) == "" {
		return Synthesis{}, ErrEmptyText
	}

	pcm, outcome, err := client.generateSpeech(ctx, text)
	switch {
	case err != nil && ctx.Err() != nil:
		return CanceledBy(CancelByUser, "", ""), nil
	case err != nil:
		return Synthesis{}, err
	case outcome != nil:
		return *outcome, nil
	}

	if err := client.Output.Play(ctx, pcm); err != nil {
		if ctx.Err() != nil {
			return CanceledBy(CancelByUser, "", ""), nil
		}
		return Synthesis{}, errors.Wrap(err, "play audio")
	}
	return Synthesis{Reason: Completed}, nil
}

func (client *ElevenLabsClient) generateSpeech(ctx context.Context, text string) ([]byte, *Synthesis, error) {
	base, err := url.Parse(fmt.Sprintf("%s/v1/text-to-speech/%s/stream/with-timestamps", client.BaseURL, client.VoiceId))
	if err != nil {
		return nil, nil, errors.Wrap(err, "build url")
	}
	q := base.Query()
	q.Set("output_format", "pcm_"+strconv.Itoa(ElevenLabsSampleRate))
	base.RawQuery = q.Encode()

	payload := map[string]interface{}{
		"text":     text,
		"model_id": client.ModelId,
		"voice_settings": map[string]float64{
			"stability":        0.75,
			"similarity_boost": 0.7,
		},
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base.String(), bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("xi-api-key", client.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(err, "HTTP request error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		outcome := CanceledBy(CancelError, strconv.Itoa(resp.StatusCode), strings.TrimSpace(string(detail)))
		return nil, &outcome, nil
	}

	var pcm []byte
	dec := json.NewDecoder(resp.Body)
	for {
		var chunk struct {
			AudioBase64 string `json:"audio_base64"`
		}
		if err := dec.Decode(&chunk); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, errors.Wrap(err, "failed to decode JSON chunk")
		}
		if chunk.AudioBase64 == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(chunk.AudioBase64)
		if err != nil {
			return nil, nil, errors.Wrap(err, "decode audio chunk")
		}
		pcm = append(pcm, data...)
	}

	client.log.WithField("bytes", len(pcm)).Debug("elevenlabs audio received")
	return pcm, nil, nil
}
