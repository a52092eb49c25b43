//go:build opus

package audio

import (
	"sync"

	"github.com/hraban/opus"

	"github.com/foxseedlab/koetype/internal/audio"
)

const opusFrameSamples = 5760 // 120ms at 48kHz, the largest legal opus frame

// OpusSource adapts a pre-encoded opus packet feed (a remote microphone over
// the network, typically) into a drainable sample source. Packets pushed
// while the source is stopped are discarded.
type OpusSource struct {
	sampleRate int
	buf        sampleBuffer

	mu      sync.Mutex
	decoder *opus.Decoder
	running bool
}

func NewOpusSource(sampleRate int) *OpusSource {
	return &OpusSource{sampleRate: sampleRate}
}

func (s *OpusSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	dec, err := opus.NewDecoder(s.sampleRate, 1)
	if err != nil {
		return err
	}
	s.decoder = dec
	s.running = true
	s.buf.clear()
	return nil
}

func (s *OpusSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.decoder = nil
	return nil
}

// WritePacket decodes one opus packet into the drain buffer. Called from the
// network receive context.
func (s *OpusSource) WritePacket(packet []byte) {
	if len(packet) == 0 {
		return
	}
	s.mu.Lock()
	dec := s.decoder
	running := s.running
	s.mu.Unlock()
	if !running || dec == nil {
		return
	}

	pcm := make([]float32, opusFrameSamples)
	n, err := dec.DecodeFloat32(packet, pcm)
	if err != nil || n == 0 {
		return
	}
	s.buf.append(pcm[:n])
}

func (s *OpusSource) Drain() []float32 {
	return s.buf.drain()
}

func (s *OpusSource) Level() float64 {
	return s.buf.currentLevel()
}

var _ audio.Source = (*OpusSource)(nil)
