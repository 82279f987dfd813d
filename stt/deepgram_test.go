package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	gws "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsingh-rishi/voice-companion/model"
)

type fixedSource struct {
	utterance model.Utterance
	err       error
	calls     int
}

func (s *fixedSource) Capture(context.Context) (model.Utterance, error) {
	s.calls++
	return s.utterance, s.err
}

func newDeepgramServer(t *testing.T, replies []string, received *atomic.Int64) *httptest.Server {
	t.Helper()
	upgrader := gws.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token dg-key", r.Header.Get("Authorization"))
		assert.Equal(t, "linear16", r.URL.Query().Get("encoding"))
		assert.Equal(t, "16000", r.URL.Query().Get("sample_rate"))
		assert.Equal(t, "nova-2", r.URL.Query().Get("model"))

		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		for {
			kind, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if kind == gws.BinaryMessage {
				received.Add(int64(len(msg)))
				continue
			}
			if strings.Contains(string(msg), "CloseStream") {
				break
			}
		}
		for _, reply := range replies {
			assert.NoError(t, conn.WriteMessage(gws.TextMessage, []byte(reply)))
		}
		_ = conn.WriteMessage(gws.CloseMessage, gws.FormatCloseMessage(gws.CloseNormalClosure, ""))
	}))
}

func newTestDeepgram(srv *httptest.Server, source UtteranceSource) *DeepgramClient {
	dg := NewDeepgramClient("dg-key", "nova-2", "en-US", source, logrus.NewEntry(logrus.New()))
	dg.Endpoint = "ws" + strings.TrimPrefix(srv.URL, "http")
	return dg
}

func TestDeepgramJoinsFinalSegments(t *testing.T) {
	var received atomic.Int64
	srv := newDeepgramServer(t, []string{
		`{"type":"Results","is_final":false,"channel":{"alternatives":[{"transcript":"hel","confidence":0.4}]}}`,
		`{"type":"Results","is_final":true,"channel":{"alternatives":[{"transcript":"hello","confidence":0.98}]}}`,
		`not json`,
		`{"type":"Results","is_final":true,"channel":{"alternatives":[{"transcript":" do you like sharks? ","confidence":0.91}]}}`,
		`{"type":"Metadata"}`,
	}, &received)
	defer srv.Close()

	source := &fixedSource{utterance: make(model.Utterance, 7000)}
	rec, err := newTestDeepgram(srv, source).Recognize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Recognized, rec.Reason)
	assert.Equal(t, "hello do you like sharks?", rec.Text)
	assert.EqualValues(t, 7000, received.Load())
}

func TestDeepgramNoFinalTranscriptIsNoMatch(t *testing.T) {
	var received atomic.Int64
	srv := newDeepgramServer(t, []string{
		`{"type":"Results","is_final":true,"channel":{"alternatives":[{"transcript":"","confidence":0}]}}`,
	}, &received)
	defer srv.Close()

	rec, err := newTestDeepgram(srv, &fixedSource{utterance: make(model.Utterance, 320)}).Recognize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoMatch, rec.Reason)
}

func TestDeepgramSilenceSkipsRequest(t *testing.T) {
	dg := NewDeepgramClient("dg-key", "nova-2", "en-US", &fixedSource{}, logrus.NewEntry(logrus.New()))
	dg.Endpoint = "ws://127.0.0.1:1/unreachable"

	rec, err := dg.Recognize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoMatch, rec.Reason)
}

func TestDeepgramDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestDeepgram(srv, &fixedSource{utterance: make(model.Utterance, 320)}).Recognize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestDeepgramTranscribeEmptyAudio(t *testing.T) {
	dg := NewDeepgramClient("dg-key", "nova-2", "en-US", nil, logrus.NewEntry(logrus.New()))
	_, err := dg.Transcribe(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}
