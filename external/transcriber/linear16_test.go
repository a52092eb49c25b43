package transcriber

import "testing"

func TestFloat32ToLinear16(t *testing.T) {
	raw := float32ToLinear16([]float32{0, 1, -1, 0.5})
	if len(raw) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(raw))
	}
	read := func(i int) int16 {
		return int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
	}
	if read(0) != 0 {
		t.Fatalf("expected silence, got %d", read(0))
	}
	if read(1) != 32767 {
		t.Fatalf("expected full scale, got %d", read(1))
	}
	if read(2) != -32767 {
		t.Fatalf("expected negative full scale, got %d", read(2))
	}
	if got := read(3); got < 16000 || got > 16500 {
		t.Fatalf("expected ~half scale, got %d", got)
	}
}

func TestFloat32ToLinear16_ClampsOutOfRange(t *testing.T) {
	raw := float32ToLinear16([]float32{1.5, -1.5})
	read := func(i int) int16 {
		return int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
	}
	if read(0) != 32767 || read(1) != -32767 {
		t.Fatalf("expected clamped samples, got %d %d", read(0), read(1))
	}
}
