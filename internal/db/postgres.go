package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rawblock/esopforge/internal/benchwatch"
	"github.com/rawblock/esopforge/internal/jobs"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx.
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL for ESOP Forge")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema loads and executes the schema.sql file.
func (s *PostgresStore) InitSchema() error {
	schemaBytes, err := os.ReadFile("internal/db/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}

	_, err = s.pool.Exec(context.Background(), string(schemaBytes))
	if err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}

	log.Println("ESOP Forge schema initialized")
	return nil
}

// SaveJob persists a job's metadata and its per-output cube-count results.
func (s *PostgresStore) SaveJob(ctx context.Context, job *jobs.Job) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertJobSQL := `
		INSERT INTO jobs (id, engine, n_inputs, n_outputs, exorcism, status, error, submitted_at, updated_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, error = EXCLUDED.error,
		    updated_at = EXCLUDED.updated_at, duration_ms = EXCLUDED.duration_ms;
	`
	_, err = tx.Exec(ctx, insertJobSQL,
		job.ID, string(job.Engine), job.NInputs, job.NOutputs, job.Exorcism,
		string(job.Status), job.Error, job.SubmittedAt, job.UpdatedAt, job.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %v", err)
	}

	if len(job.Results) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM job_results WHERE job_id = $1`, job.ID); err != nil {
			return fmt.Errorf("failed to clear prior job_results: %v", err)
		}
		insertResultSQL := `
			INSERT INTO job_results (job_id, output_index, cubes_before, cubes_after)
			VALUES ($1, $2, $3, $4);
		`
		for i, r := range job.Results {
			if _, err := tx.Exec(ctx, insertResultSQL, job.ID, i, r.CubesBefore, r.CubesAfter); err != nil {
				return fmt.Errorf("failed to insert job_results: %v", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// JobSummary is the page-list projection of a persisted job row.
type JobSummary struct {
	ID          string    `json:"id"`
	Engine      string    `json:"engine"`
	Status      string    `json:"status"`
	NInputs     int       `json:"nInputs"`
	NOutputs    int       `json:"nOutputs"`
	SubmittedAt time.Time `json:"submittedAt"`
	DurationMs  int64     `json:"durationMs"`
}

// ListJobs returns a page of job summaries ordered by most recently submitted.
func (s *PostgresStore) ListJobs(ctx context.Context, page, limit int) ([]JobSummary, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var totalCount int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, engine, status, n_inputs, n_outputs, submitted_at, COALESCE(duration_ms, 0)
		FROM jobs
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []JobSummary
	for rows.Next() {
		var j JobSummary
		if err := rows.Scan(&j.ID, &j.Engine, &j.Status, &j.NInputs, &j.NOutputs, &j.SubmittedAt, &j.DurationMs); err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if out == nil {
		out = []JobSummary{}
	}
	return out, totalCount, nil
}

// SaveBaseline persists a benchmark baseline for later regression checks.
func (s *PostgresStore) SaveBaseline(ctx context.Context, b benchwatch.Baseline) error {
	sql := `
		INSERT INTO regression_baselines (name, cube_counts, recorded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET cube_counts = EXCLUDED.cube_counts, recorded_at = EXCLUDED.recorded_at;
	`
	_, err := s.pool.Exec(ctx, sql, b.Name, b.CubeCounts, b.RecordedAt)
	return err
}

// LoadBaselines reloads all persisted baselines, e.g. to repopulate a
// benchwatch.Watchlist on process restart.
func (s *PostgresStore) LoadBaselines(ctx context.Context) ([]benchwatch.Baseline, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, cube_counts, recorded_at FROM regression_baselines`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []benchwatch.Baseline
	for rows.Next() {
		var b benchwatch.Baseline
		if err := rows.Scan(&b.Name, &b.CubeCounts, &b.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// GetPool exposes the connection pool for other subsystems.
func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}
