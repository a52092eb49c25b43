package repository

import (
	"context"
	"time"
)

type CreateSessionInput struct {
	SessionID string
	StartedAt time.Time
}

type CompleteSessionInput struct {
	SessionID    string
	EndedAt      time.Time
	SegmentCount int
}

type InsertSegmentInput struct {
	SessionID    string
	Content      string
	SegmentIndex int
	SpokenAt     time.Time
}

// Archive persists the dictation history. All writes are best-effort from the
// session's point of view: a failed archive write never blocks emission.
type Archive interface {
	CreateSession(ctx context.Context, input CreateSessionInput) error
	CompleteSession(ctx context.Context, input CompleteSessionInput) error
	InsertSegment(ctx context.Context, input InsertSegmentInput) error
}
