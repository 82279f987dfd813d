package audio

// Int16ToBytes converts samples to little-endian PCM16 bytes.
func Int16ToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}

// BytesToInt16 decodes little-endian PCM16 into dst and returns the number
// of samples written. A trailing odd byte is ignored.
func BytesToInt16(dst []int16, src []byte) int {
	n := len(src) / 2
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = int16(uint16(src[i*2]) | uint16(src[i*2+1])<<8)
	}
	return n
}

// MeanAmplitude is the average absolute sample value of a frame.
func MeanAmplitude(samples []int16) int64 {
	if len(samples) == 0 {
		return 0
	}
	var sum int64
	for _, s := range samples {
		if s < 0 {
			sum -= int64(s)
		} else {
			sum += int64(s)
		}
	}
	return sum / int64(len(samples))
}
