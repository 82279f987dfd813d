package stt

import (
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
)

func TestRecognitionFromResponse(t *testing.T) {
	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "hello ", Confidence: 0.9}, {Transcript: "yellow"}}},
			{},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "dinosaur"}}},
		},
	}
	rec := recognitionFromResponse(resp)
	assert.Equal(t, Recognized, rec.Reason)
	assert.Equal(t, "hello dinosaur", rec.Text)

	assert.Equal(t, NoMatch, recognitionFromResponse(&speechpb.RecognizeResponse{}).Reason)
}

func TestRecognizeRequest(t *testing.T) {
	req := recognizeRequest("es-MX", []byte{1, 2, 3, 4})
	assert.Equal(t, speechpb.RecognitionConfig_LINEAR16, req.GetConfig().GetEncoding())
	assert.Equal(t, int32(16000), req.GetConfig().GetSampleRateHertz())
	assert.Equal(t, "es-MX", req.GetConfig().GetLanguageCode())
	assert.Equal(t, []byte{1, 2, 3, 4}, req.GetAudio().GetContent())
}

func TestFromText(t *testing.T) {
	assert.Equal(t, Recognition{Reason: NoMatch}, FromText("  "))
	assert.Equal(t, Recognition{Reason: Recognized, Text: "hola"}, FromText(" hola\n"))
}
