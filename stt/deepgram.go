package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gws "github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/audio"
)

const (
	deepgramEndpoint = "wss://api.deepgram.com/v1/listen"
	deepgramChunk    = 3200 // 100ms of 16kHz PCM16
)

// DeepgramClient transcribes captured utterances over Deepgram's live websocket API.
type DeepgramClient struct {
	APIKey   string
	Endpoint string
	Model    string
	Language string
	Source   UtteranceSource
	Dialer   *gws.Dialer
	log      *logrus.Entry
}

type transcriptionMessage struct {
	Type    string `json:"type"`
	IsFinal bool   `json:"is_final"`
	Channel struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"channel"`
}

func NewDeepgramClient(apiKey, model, language string, source UtteranceSource, log *logrus.Entry) *DeepgramClient {
	return &DeepgramClient{
		APIKey:   apiKey,
		Endpoint: deepgramEndpoint,
		Model:    model,
		Language: language,
		Source:   source,
		Dialer:   gws.DefaultDialer,
		log:      log,
	}
}

func (dg *DeepgramClient) Name() string {
	return "deepgram"
}

// Recognize captures one utterance and transcribes it. Silence yields NoMatch
// without contacting Deepgram.
func (dg *DeepgramClient) Recognize(ctx context.Context) (Recognition, error) {
	utterance, err := dg.Source.Capture(ctx)
	if err != nil {
		return Recognition{}, errors.Wrap(err, "capture utterance")
	}
	if len(utterance) == 0 {
		return Recognition{Reason: NoMatch}, nil
	}

	text, err := dg.Transcribe(ctx, utterance)
	if err != nil {
		return Recognition{}, err
	}
	return FromText(text), nil
}

func (dg *DeepgramClient) listenURL() (string, error) {
	base, err := url.Parse(dg.Endpoint)
	if err != nil {
		return "", errors.Wrap(err, "parse deepgram endpoint")
	}
	q := base.Query()
	q.Set("model", dg.Model)
	q.Set("language", dg.Language)
	q.Set("encoding", "linear16")
	q.Set("sample_rate", fmt.Sprint(audio.SampleRate))
	q.Set("channels", fmt.Sprint(audio.Channels))
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// Transcribe streams PCM16 audio to Deepgram, closes the stream and joins
// every final transcript segment.
func (dg *DeepgramClient) Transcribe(ctx context.Context, pcm []byte) (string, error) {
	if len(pcm) == 0 {
		return "", ErrEmptyAudio
	}

	endpoint, err := dg.listenURL()
	if err != nil {
		return "", err
	}
	header := http.Header{
		"Authorization": {fmt.Sprintf("Token %s", dg.APIKey)},
	}
	conn, resp, err := dg.Dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return "", errors.Wrapf(err, "deepgram dial: %s", resp.Status)
		}
		return "", errors.Wrap(err, "deepgram dial")
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for rest := pcm; len(rest) > 0; {
		n := min(len(rest), deepgramChunk)
		if err := conn.WriteMessage(gws.BinaryMessage, rest[:n]); err != nil {
			return "", errors.Wrap(err, "deepgram write")
		}
		rest = rest[n:]
	}
	if err := conn.WriteMessage(gws.TextMessage, []byte(`{"type":"CloseStream"}`)); err != nil {
		return "", errors.Wrap(err, "deepgram close stream")
	}

	var segments []string
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if gws.IsCloseError(err, gws.CloseNormalClosure) {
				break
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", errors.Wrap(err, "deepgram read")
		}

		var msg transcriptionMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			dg.log.WithError(err).Debug("skipping unparseable deepgram message")
			continue
		}
		if msg.Type == "Metadata" {
			break
		}
		if !msg.IsFinal || len(msg.Channel.Alternatives) == 0 {
			continue
		}
		if text := strings.TrimSpace(msg.Channel.Alternatives[0].Transcript); text != "" {
			dg.log.WithField("confidence", msg.Channel.Alternatives[0].Confidence).Debugf("final segment: %s", text)
			segments = append(segments, text)
		}
	}

	return strings.Join(segments, " "), nil
}
