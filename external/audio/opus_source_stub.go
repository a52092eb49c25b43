//go:build !opus

package audio

// Builds without the opus tag drop the cgo dependency; the opus source
// accepts packets and produces nothing.
type OpusSource struct{}

func NewOpusSource(_ int) *OpusSource { return &OpusSource{} }

func (s *OpusSource) Start() error { return nil }

func (s *OpusSource) Stop() error { return nil }

func (s *OpusSource) WritePacket(_ []byte) {}

func (s *OpusSource) Drain() []float32 { return nil }

func (s *OpusSource) Level() float64 { return 0 }
