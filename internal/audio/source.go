package audio

// Source is a live audio capture collaborator. The producer side fills an
// internal buffer from its own capture context; the session consumer loop
// drains it.
type Source interface {
	Start() error
	Stop() error
	// Drain returns all buffered mono samples and clears the buffer. It never
	// blocks; an empty slice means nothing arrived since the last drain. The
	// returned slice is owned by the caller.
	Drain() []float32
	// Level reports the most recent RMS level in [0, 1], for observability.
	Level() float64
}
