package segmenter

import "testing"

const testSampleRate = 16000

// chunk returns 100ms of samples at the given amplitude.
func chunk(amplitude float32) []float32 {
	samples := make([]float32, testSampleRate/10)
	for i := range samples {
		samples[i] = amplitude
	}
	return samples
}

func TestPush_FinalizesAfterSpeechThenSilence(t *testing.T) {
	s := New(testSampleRate, 0.01, 1.2, 0.6)

	// 1.3s of speech above the threshold: duration satisfied, no silence yet.
	for i := 0; i < 13; i++ {
		if seg, final := s.Push(chunk(0.5)); final {
			t.Fatalf("finalized during speech at chunk %d (%d samples)", i, len(seg))
		}
	}

	// 0.7s below threshold: must finalize exactly once, when the trailing
	// silence crosses 0.6s, not before.
	finalized := 0
	var segment []float32
	for i := 0; i < 7; i++ {
		seg, final := s.Push(chunk(0.001))
		if final {
			finalized++
			segment = seg
			if i < 5 {
				t.Fatalf("finalized too early, after %d silence chunks", i+1)
			}
		}
	}
	if finalized != 1 {
		t.Fatalf("expected exactly one finalize, got %d", finalized)
	}
	// 1.3s speech + 0.6s silence were buffered when the finalize fired.
	wantSamples := 19 * testSampleRate / 10
	if len(segment) != wantSamples {
		t.Fatalf("expected %d samples, got %d", wantSamples, len(segment))
	}
}

func TestPush_ShortPauseDoesNotFinalize(t *testing.T) {
	s := New(testSampleRate, 0.01, 1.2, 0.6)
	for i := 0; i < 13; i++ {
		s.Push(chunk(0.5))
	}
	// 0.3s pause, then speech resumes: silence counter must reset.
	for i := 0; i < 3; i++ {
		if _, final := s.Push(chunk(0.001)); final {
			t.Fatal("finalized on a short mid-utterance pause")
		}
	}
	if _, final := s.Push(chunk(0.5)); final {
		t.Fatal("finalized immediately after speech resumed")
	}
	// Silence must now accumulate from zero again.
	for i := 0; i < 5; i++ {
		if _, final := s.Push(chunk(0.001)); final {
			t.Fatalf("finalized after only %d silence chunks since reset", i+1)
		}
	}
	if _, final := s.Push(chunk(0.001)); !final {
		t.Fatal("expected finalize once trailing silence reached the threshold")
	}
}

func TestPush_SilenceAloneDoesNotFinalizeBeforeMinSegment(t *testing.T) {
	s := New(testSampleRate, 0.01, 1.2, 0.6)
	// 0.9s of silence: silence threshold met but segment too short.
	for i := 0; i < 9; i++ {
		if _, final := s.Push(chunk(0.001)); final {
			t.Fatalf("finalized before min segment duration at chunk %d", i)
		}
	}
}

func TestPush_CountersResetAfterFinalize(t *testing.T) {
	s := New(testSampleRate, 0.01, 1.2, 0.6)
	for i := 0; i < 13; i++ {
		s.Push(chunk(0.5))
	}
	for i := 0; i < 6; i++ {
		s.Push(chunk(0.001))
	}
	if s.PendingSec() != 0 {
		t.Fatalf("expected empty accumulator after finalize, pending %gs", s.PendingSec())
	}
	// Chunks arriving after a finalize start a fresh candidate segment.
	if _, final := s.Push(chunk(0.001)); final {
		t.Fatal("fresh segment must not inherit previous silence")
	}
}

func TestFlush_ReturnsRemainderBelowMinSegment(t *testing.T) {
	s := New(testSampleRate, 0.01, 1.2, 0.6)
	s.Push(chunk(0.5))
	s.Push(chunk(0.5))

	segment := s.Flush()
	if len(segment) != 2*testSampleRate/10 {
		t.Fatalf("expected 0.2s remainder, got %d samples", len(segment))
	}
	if s.Flush() != nil {
		t.Fatal("second flush should return nothing")
	}
}

func TestPush_EmptyChunkIgnored(t *testing.T) {
	s := New(testSampleRate, 0.01, 1.2, 0.6)
	if seg, final := s.Push(nil); final || seg != nil {
		t.Fatal("empty chunk must be a no-op")
	}
	if s.PendingSec() != 0 {
		t.Fatal("empty chunk must not advance duration")
	}
}
