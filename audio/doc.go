// Package audio holds the device-independent part of utterance capture:
// PCM16 conversions and an energy-based endpointer that decides when one
// spoken utterance has started and finished.
//
// The endpointer is fed fixed-size frames, typically 10ms at 16kHz:
//
//	ep := audio.NewEndpointer(audio.DefaultEndpointParams())
//	for {
//	    frame := readFrame()
//	    if ep.Push(frame) {
//	        break
//	    }
//	}
//	utterance := ep.Utterance()
package audio
