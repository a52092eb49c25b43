package audio

import (
	"io"
	"math"
	"testing"
)

// chunkedReader returns its data in fixed-size reads to simulate a pipe
// splitting the stream at arbitrary byte boundaries.
type chunkedReader struct {
	data []byte
	size int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.size
	if n > len(r.data) {
		n = len(r.data)
	}
	n = copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestReadLoop_MisalignedReadsKeepSampleAlignment(t *testing.T) {
	// Three s16le samples (0x1000, 0x2000, 0x3000) delivered in 3-byte reads,
	// so every read boundary lands mid-sample.
	data := []byte{0x00, 0x10, 0x00, 0x20, 0x00, 0x30}
	c := &ExecCapture{command: []string{"arecord"}, channels: 1}
	c.readLoop(&chunkedReader{data: data, size: 3})

	got := c.buf.drain()
	want := []float32{0x1000 / 32768.0, 0x2000 / 32768.0, 0x3000 / 32768.0}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("sample %d: expected %g, got %g", i, want[i], got[i])
		}
	}
}

func TestReadLoop_MisalignedStereoFrames(t *testing.T) {
	// Two stereo frames (left == right) in 5-byte reads; a frame must never
	// be decoded from a split pair.
	data := []byte{
		0x00, 0x10, 0x00, 0x10,
		0x00, 0x20, 0x00, 0x20,
	}
	c := &ExecCapture{command: []string{"arecord"}, channels: 2}
	c.readLoop(&chunkedReader{data: data, size: 5})

	got := c.buf.drain()
	want := []float32{0x1000 / 32768.0, 0x2000 / 32768.0}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("sample %d: expected %g, got %g", i, want[i], got[i])
		}
	}
}
