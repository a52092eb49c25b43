package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foxseedlab/koetype/internal/repository"
)

type PostgresArchive struct {
	pool *pgxpool.Pool
}

func NewPostgresArchive(pool *pgxpool.Pool) repository.Archive {
	return &PostgresArchive{pool: pool}
}

func (a *PostgresArchive) CreateSession(ctx context.Context, input repository.CreateSessionInput) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO sessions (id, started_at, status)
		 VALUES ($1, $2, 'running')`,
		input.SessionID, input.StartedAt)
	return err
}

func (a *PostgresArchive) CompleteSession(ctx context.Context, input repository.CompleteSessionInput) error {
	_, err := a.pool.Exec(ctx,
		`UPDATE sessions SET status = 'completed', ended_at = $2, segment_count = $3 WHERE id = $1`,
		input.SessionID, input.EndedAt, input.SegmentCount)
	return err
}

func (a *PostgresArchive) InsertSegment(ctx context.Context, input repository.InsertSegmentInput) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO dictation_segments (session_id, content, segment_index, spoken_at)
		 VALUES ($1, $2, $3, $4)`,
		input.SessionID, input.Content, input.SegmentIndex, input.SpokenAt)
	return err
}
