// Package segmenter accumulates drained audio chunks into candidate segments
// and decides when a segment is quiet enough at its tail to be transcribed.
package segmenter

import "math"

// Segmenter is owned exclusively by the session consumer loop; it is not safe
// for concurrent use.
type Segmenter struct {
	sampleRate      int
	energyThreshold float64
	minSegmentSec   float64
	minSilenceSec   float64

	chunks     [][]float32
	segmentSec float64
	silenceSec float64
}

func New(sampleRate int, energyThreshold, minSegmentSec, minSilenceSec float64) *Segmenter {
	return &Segmenter{
		sampleRate:      sampleRate,
		energyThreshold: energyThreshold,
		minSegmentSec:   minSegmentSec,
		minSilenceSec:   minSilenceSec,
	}
}

// Push appends one drained chunk to the candidate segment and reports whether
// the segment finalized. A segment finalizes only when it is at least
// minSegmentSec long AND its trailing silence reached minSilenceSec, so a
// short mid-word pause never cuts an utterance.
func (s *Segmenter) Push(chunk []float32) ([]float32, bool) {
	if len(chunk) == 0 {
		return nil, false
	}
	s.chunks = append(s.chunks, chunk)
	dur := float64(len(chunk)) / float64(s.sampleRate)
	s.segmentSec += dur

	if meanAbs(chunk) < s.energyThreshold {
		s.silenceSec += dur
	} else {
		s.silenceSec = 0
	}

	if s.segmentSec >= s.minSegmentSec && s.silenceSec >= s.minSilenceSec {
		return s.take(), true
	}
	return nil, false
}

// Flush finalizes whatever is buffered, regardless of duration. Used on stop
// so a short final utterance is not dropped.
func (s *Segmenter) Flush() []float32 {
	if len(s.chunks) == 0 {
		return nil
	}
	return s.take()
}

// PendingSec reports the buffered segment duration, for pipeline stats.
func (s *Segmenter) PendingSec() float64 {
	return s.segmentSec
}

func (s *Segmenter) take() []float32 {
	total := 0
	for _, c := range s.chunks {
		total += len(c)
	}
	segment := make([]float32, 0, total)
	for _, c := range s.chunks {
		segment = append(segment, c...)
	}
	s.chunks = nil
	s.segmentSec = 0
	s.silenceSec = 0
	return segment
}

func meanAbs(chunk []float32) float64 {
	var sum float64
	for _, v := range chunk {
		sum += math.Abs(float64(v))
	}
	return sum / float64(len(chunk))
}
