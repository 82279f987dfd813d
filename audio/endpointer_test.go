package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(amplitude int16) []int16 {
	f := make([]int16, FrameSamples)
	for i := range f {
		if i%2 == 0 {
			f[i] = amplitude
		} else {
			f[i] = -amplitude
		}
	}
	return f
}

func testParams() EndpointParams {
	return EndpointParams{
		EnergyThreshold: 500,
		FrameDuration:   10 * time.Millisecond,
		Silence:         30 * time.Millisecond,
		MinSpeech:       20 * time.Millisecond,
		MaxUtterance:    time.Second,
		ListenTimeout:   100 * time.Millisecond,
		Preroll:         50 * time.Millisecond,
	}
}

func push(t *testing.T, ep *Endpointer, amplitude int16, n int) bool {
	t.Helper()
	var done bool
	for i := 0; i < n; i++ {
		done = ep.Push(frame(amplitude))
	}
	return done
}

func TestEndpointerSpeechThenSilence(t *testing.T) {
	ep := NewEndpointer(testParams())

	assert.False(t, push(t, ep, 10, 3))
	assert.False(t, push(t, ep, 2000, 4))
	assert.True(t, ep.Started())
	assert.False(t, push(t, ep, 10, 2))
	assert.True(t, push(t, ep, 10, 1))

	// 3 quiet pre-roll + 4 speech + 3 trailing silence
	assert.Len(t, ep.Utterance(), 10*FrameSamples*2)
}

func TestEndpointerListenTimeout(t *testing.T) {
	ep := NewEndpointer(testParams())

	assert.False(t, push(t, ep, 0, 9))
	assert.True(t, push(t, ep, 0, 1))
	assert.False(t, ep.Started())
	assert.Nil(t, ep.Utterance())
}

func TestEndpointerIgnoresClicks(t *testing.T) {
	ep := NewEndpointer(testParams())

	push(t, ep, 3000, 1)
	push(t, ep, 0, 1)
	push(t, ep, 3000, 1)
	assert.False(t, ep.Started())
}

func TestEndpointerMaxUtterance(t *testing.T) {
	params := testParams()
	params.MaxUtterance = 50 * time.Millisecond
	ep := NewEndpointer(params)

	assert.False(t, push(t, ep, 2000, 4))
	assert.True(t, push(t, ep, 2000, 1))
	assert.True(t, ep.Push(frame(2000)), "frames after completion are ignored")
	assert.Len(t, ep.Utterance(), 5*FrameSamples*2)
}

func TestEndpointerMaxUtteranceCountsFromOnset(t *testing.T) {
	params := DefaultEndpointParams()
	ep := NewEndpointer(params)

	// 9.5s of quiet, just under the listen timeout
	require.False(t, push(t, ep, 0, 950))

	loud := 0
	for !ep.Push(frame(2000)) {
		loud++
		require.Less(t, loud, 3000, "utterance never closed")
	}

	maxFrames := int(params.MaxUtterance / params.FrameDuration)
	assert.Len(t, ep.Utterance(), maxFrames*FrameSamples*2)
}

func TestEndpointerReset(t *testing.T) {
	ep := NewEndpointer(testParams())
	push(t, ep, 2000, 3)
	push(t, ep, 0, 3)
	require.NotEmpty(t, ep.Utterance())

	ep.Reset()
	assert.False(t, ep.Started())
	assert.Nil(t, ep.Utterance())
	assert.False(t, ep.Push(frame(0)))
}

func TestPCMRoundTrip(t *testing.T) {
	in := []int16{0, 1, -1, 32767, -32768, 258}
	b := Int16ToBytes(in)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0xff, 0xff}, b[:6])

	out := make([]int16, len(in))
	assert.Equal(t, len(in), BytesToInt16(out, append(b, 0x7f)))
	assert.Equal(t, in, out)
	assert.Equal(t, int64(2000), MeanAmplitude(frame(2000)))
	assert.Zero(t, MeanAmplitude(nil))
}
