package webhook

import (
	"context"
	"time"
)

// SessionSummary is posted to the configured webhook when a session ends.
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
	SegmentCount int       `json:"segment_count"`
	Transcript   string    `json:"transcript"`
}

type Sender interface {
	SendSummary(ctx context.Context, summary SessionSummary) error
}
