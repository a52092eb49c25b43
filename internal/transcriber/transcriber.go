package transcriber

import "context"

// Transcriber converts one finalized audio segment to text. The context hint
// is a short tail of already-emitted text used to bias decoding of the new
// segment; implementations must never use it to rewrite past output.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32, sampleRate int, contextHint string) (string, error)
}
