package audio

import (
	"math"
	"sync"
)

// sampleBuffer is the producer/consumer hand-off: the capture context appends
// decoded samples, the session loop drains them with a copy-and-clear.
type sampleBuffer struct {
	mu      sync.Mutex
	samples []float32
	level   float64
}

func (b *sampleBuffer) append(chunk []float32) {
	if len(chunk) == 0 {
		return
	}
	b.mu.Lock()
	b.samples = append(b.samples, chunk...)
	b.level = rms(chunk)
	b.mu.Unlock()
}

func (b *sampleBuffer) drain() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.samples) == 0 {
		return nil
	}
	out := b.samples
	b.samples = nil
	return out
}

func (b *sampleBuffer) clear() {
	b.mu.Lock()
	b.samples = nil
	b.level = 0
	b.mu.Unlock()
}

func (b *sampleBuffer) currentLevel() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}

func rms(chunk []float32) float64 {
	var sum float64
	for _, v := range chunk {
		sum += float64(v) * float64(v)
	}
	level := math.Sqrt(sum / float64(len(chunk)))
	return math.Min(1, level)
}

// pcm16ToFloat32 converts little-endian signed 16-bit samples to float32 in
// [-1, 1]. Stereo input is downmixed to mono by averaging sample pairs.
func pcm16ToFloat32(raw []byte, channels int) []float32 {
	sampleCount := len(raw) / 2
	if channels == 2 {
		sampleCount /= 2
	}
	out := make([]float32, 0, sampleCount)
	if channels == 2 {
		for i := 0; i+3 < len(raw); i += 4 {
			left := int16(uint16(raw[i]) | uint16(raw[i+1])<<8)
			right := int16(uint16(raw[i+2]) | uint16(raw[i+3])<<8)
			out = append(out, (float32(left)+float32(right))/(2*32768))
		}
		return out
	}
	for i := 0; i+1 < len(raw); i += 2 {
		s := int16(uint16(raw[i]) | uint16(raw[i+1])<<8)
		out = append(out, float32(s)/32768)
	}
	return out
}
