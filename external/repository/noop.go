package repository

import (
	"context"

	"github.com/foxseedlab/koetype/internal/repository"
)

// NoopArchive is used when no database is configured. Sessions still run,
// they just leave no history behind.
type NoopArchive struct{}

func NewNoopArchive() repository.Archive {
	return &NoopArchive{}
}

func (a *NoopArchive) CreateSession(_ context.Context, _ repository.CreateSessionInput) error {
	return nil
}

func (a *NoopArchive) CompleteSession(_ context.Context, _ repository.CompleteSessionInput) error {
	return nil
}

func (a *NoopArchive) InsertSegment(_ context.Context, _ repository.InsertSegmentInput) error {
	return nil
}
