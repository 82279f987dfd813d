package input

import (
	"context"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/audio"
	"github.com/mrsingh-rishi/voice-companion/model"
)

// Microphone captures one utterance at a time from the default input device.
// The device is opened and closed inside every Capture call.
type Microphone struct {
	params audio.EndpointParams
	log    *logrus.Entry
}

func NewMicrophone(params audio.EndpointParams, log *logrus.Entry) *Microphone {
	return &Microphone{params: params, log: log}
}

// Capture blocks until the endpointer closes an utterance, the listen
// timeout passes without speech, or ctx is canceled. PortAudio must already
// be initialized.
func (m *Microphone) Capture(ctx context.Context) (model.Utterance, error) {
	in := make([]int16, audio.FrameSamples)
	stream, err := portaudio.OpenDefaultStream(audio.Channels, 0, audio.SampleRate, len(in), in)
	if err != nil {
		return nil, errors.Wrap(err, "open input stream")
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, errors.Wrap(err, "start input stream")
	}
	defer stream.Stop()

	ep := audio.NewEndpointer(m.params)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stream.Read(); err != nil {
			// overflow drops a frame but the stream stays usable
			if errors.Is(err, portaudio.InputOverflowed) {
				m.log.Debug("input overflowed")
				continue
			}
			return nil, errors.Wrap(err, "read input stream")
		}
		if ep.Push(in) {
			break
		}
	}

	utterance := ep.Utterance()
	m.log.WithField("bytes", len(utterance)).Debug("utterance captured")
	return model.Utterance(utterance), nil
}
