package repository

import "time"

type SessionStatus string

const (
	SessionStatusRunning   SessionStatus = "running"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is one dictation session in the history archive.
type Session struct {
	ID           string
	StartedAt    time.Time
	EndedAt      *time.Time
	Status       SessionStatus
	SegmentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Segment is one emitted text delta within a session.
type Segment struct {
	ID           string
	SessionID    string
	Content      string
	SegmentIndex int
	SpokenAt     time.Time
	CreatedAt    time.Time
}
