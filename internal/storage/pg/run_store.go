package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const runColumns = `id, job_name, n_rows, n_cols, row_offset, train_excluded, cutoffs, precision_at, recall_at, created_at`

type RunStore struct {
	*HealthChecker
	db *pgxpool.Pool
}

func NewRunStore(pool *ConnectionPool) *RunStore {
	return &RunStore{HealthChecker: NewHealthChecker(pool), db: pool.GetConn()}
}

func (s *RunStore) Save(ctx context.Context, run storage.Run) (uuid.UUID, error) {
	storage.Prepare(&run)

	cmd := `
        INSERT INTO eval_runs (` + runColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(
		ctx,
		cmd,
		run.ID,
		run.JobName,
		run.Rows,
		run.Cols,
		run.Offset,
		run.TrainExcluded,
		run.Cutoffs,
		run.Precision,
		run.Recall,
		run.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	slog.Debug("Saved run", "id", id, "job", run.JobName)
	return id, nil
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*storage.Run, error) {
	row := s.db.QueryRow(ctx, `SELECT `+runColumns+` FROM eval_runs WHERE id = $1`, id)

	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

func (s *RunStore) List(ctx context.Context, limit int) ([]storage.Run, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+runColumns+` FROM eval_runs ORDER BY created_at DESC, id DESC LIMIT $1`,
		storage.NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []storage.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (*storage.Run, error) {
	var run storage.Run
	err := row.Scan(
		&run.ID,
		&run.JobName,
		&run.Rows,
		&run.Cols,
		&run.Offset,
		&run.TrainExcluded,
		&run.Cutoffs,
		&run.Precision,
		&run.Recall,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
