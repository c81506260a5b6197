package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/skyraid/skyraid/internal/data"
)

// LevelResult is one finished level of a run.
type LevelResult struct {
	Level      string
	Outcome    string // "completed", "lost" or "aborted"
	Score      int
	Kills      int
	Coins      int
	Ticks      uint64
	Seed       int64
	Digest     []byte
	FinishedAt time.Time
}

type ResultRepo struct {
	db *DB
}

func NewResultRepo(db *DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Save writes the results of a run in a single transaction.
func (r *ResultRepo) Save(ctx context.Context, results ...LevelResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("results begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, res := range results {
		if _, err := tx.Exec(ctx,
			`INSERT INTO level_results (level, outcome, score, kills, coins, ticks, seed, digest, finished_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			res.Level, res.Outcome, res.Score, res.Kills, res.Coins, int64(res.Ticks), res.Seed, res.Digest, res.FinishedAt,
		); err != nil {
			return fmt.Errorf("results insert %s: %w", res.Level, err)
		}
	}

	return tx.Commit(ctx)
}

// TopScore returns the rank-th best completed result for a level (1 = best).
// Ranks outside the stored results report data.ErrIndexOutOfBounds.
func (r *ResultRepo) TopScore(ctx context.Context, level string, rank int) (*LevelResult, error) {
	if rank < 1 {
		return nil, fmt.Errorf("rank %d: %w", rank, data.ErrIndexOutOfBounds)
	}
	res := &LevelResult{}
	var ticks int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT level, outcome, score, kills, coins, ticks, seed, digest, finished_at
		 FROM level_results
		 WHERE level = $1 AND outcome = 'completed'
		 ORDER BY score DESC, finished_at
		 OFFSET $2 LIMIT 1`, level, rank-1,
	).Scan(
		&res.Level, &res.Outcome, &res.Score, &res.Kills, &res.Coins,
		&ticks, &res.Seed, &res.Digest, &res.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("rank %d for %s: %w", rank, level, data.ErrIndexOutOfBounds)
	}
	if err != nil {
		return nil, err
	}
	res.Ticks = uint64(ticks)
	return res, nil
}

// Runs returns how many results are stored for a level.
func (r *ResultRepo) Runs(ctx context.Context, level string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM level_results WHERE level = $1`, level,
	).Scan(&n)
	return n, err
}
