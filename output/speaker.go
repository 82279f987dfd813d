package output

import (
	"context"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/voice-companion/audio"
)

const playbackFrames = 1280 // 80ms at 16kHz

// Speaker plays PCM16 mono audio on the default output device.
type Speaker struct {
	sampleRate int
	log        *logrus.Entry
}

func NewSpeaker(sampleRate int, log *logrus.Entry) *Speaker {
	return &Speaker{sampleRate: sampleRate, log: log}
}

// Play writes pcm to the device and returns once it has been queued for
// output. The device is opened per call. A canceled ctx stops playback
// between buffers and returns ctx.Err().
func (s *Speaker) Play(ctx context.Context, pcm []byte) error {
	if len(pcm) == 0 {
		return nil
	}

	out := make([]int16, playbackFrames)
	stream, err := portaudio.OpenDefaultStream(0, audio.Channels, float64(s.sampleRate), len(out), out)
	if err != nil {
		return errors.Wrap(err, "open output stream")
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return errors.Wrap(err, "start output stream")
	}
	defer stream.Stop()

	for len(pcm) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := audio.BytesToInt16(out, pcm)
		for i := n; i < len(out); i++ {
			out[i] = 0
		}
		if err := stream.Write(); err != nil {
			if errors.Is(err, portaudio.OutputUnderflowed) {
				s.log.Debug("output underflowed")
			} else {
				return errors.Wrap(err, "write output stream")
			}
		}
		pcm = pcm[min(len(pcm), n*2):]
		if n == 0 {
			break
		}
	}
	return nil
}
