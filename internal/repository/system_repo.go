package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBStatus is what the dev health probe reports.
type DBStatus struct {
	Now          time.Time `json:"now"`
	Database     string    `json:"db"`
	Version      string    `json:"version"`
	PublicTables int       `json:"public_tables"`
}

// SystemRepository backs the dev-only database probes.
type SystemRepository interface {
	Status(ctx context.Context) (*DBStatus, error)
	Now(ctx context.Context) (time.Time, error)
}

type systemRepo struct {
	db *pgxpool.Pool
}

func NewSystemRepo(db *pgxpool.Pool) SystemRepository {
	return &systemRepo{db: db}
}

func (r *systemRepo) Status(ctx context.Context) (*DBStatus, error) {
	var s DBStatus
	err := r.db.QueryRow(ctx, `
		SELECT now(),
			current_database(),
			version(),
			(SELECT count(1) FROM pg_tables WHERE schemaname = 'public')
	`).Scan(&s.Now, &s.Database, &s.Version, &s.PublicTables)
	if err != nil {
		return nil, fmt.Errorf("failed to query db status: %w", err)
	}
	return &s, nil
}

func (r *systemRepo) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.QueryRow(ctx, `SELECT now()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("failed to query db time: %w", err)
	}
	return now, nil
}
