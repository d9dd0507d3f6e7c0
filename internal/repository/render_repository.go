package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/godilite/wheel-of-life/internal/repository/models"
)

const (
	defaultListLimit = 20
	// timeLayout is fixed width so that created_at sorts chronologically as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

const schema = `
	CREATE TABLE IF NOT EXISTS renders (
		id TEXT PRIMARY KEY,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		categories INTEGER NOT NULL,
		questions INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS render_scores (
		render_id TEXT NOT NULL REFERENCES renders(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		question_key TEXT NOT NULL,
		score REAL NOT NULL,
		PRIMARY KEY (render_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_renders_created_at ON renders(created_at);
`

type RenderRepository struct {
	db *sql.DB
}

func NewRenderRepository(db *sql.DB) *RenderRepository {
	return &RenderRepository{db: db}
}

// EnsureSchema creates the history tables when they do not exist yet.
func (r *RenderRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Save stores a render and its scores in a single transaction.
func (r *RenderRepository) Save(ctx context.Context, rec models.RenderRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO renders (id, input_path, output_path, categories, questions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.InputPath, rec.OutputPath, rec.Categories, rec.Questions,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert render %s: %w", rec.ID, err)
	}

	for _, s := range rec.Scores {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO render_scores (render_id, position, category, question_key, score)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ID, s.Position, s.Category, s.Key, s.Score,
		)
		if err != nil {
			return fmt.Errorf("insert score %s/%s: %w", s.Category, s.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns the most recent renders, newest first. Scores are not loaded.
func (r *RenderRepository) List(ctx context.Context, limit int) ([]models.RenderRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	const query = `
		SELECT id, input_path, output_path, categories, questions, created_at
		FROM renders
		ORDER BY created_at DESC, id
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query renders: %w", err)
	}
	defer rows.Close()

	var out []models.RenderRecord
	for rows.Next() {
		var (
			rec     models.RenderRecord
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.InputPath, &rec.OutputPath, &rec.Categories, &rec.Questions, &created); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		rec.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("render %s: bad created_at %q: %w", rec.ID, created, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate renders: %w", err)
	}
	return out, nil
}

// Scores returns the scores of one render in slice order.
func (r *RenderRepository) Scores(ctx context.Context, renderID string) ([]models.ScoreRow, error) {
	const query = `
		SELECT category, question_key, score, position
		FROM render_scores
		WHERE render_id = ?
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, renderID)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []models.ScoreRow
	for rows.Next() {
		var s models.ScoreRow
		if err := rows.Scan(&s.Category, &s.Key, &s.Score, &s.Position); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CategoryAverages computes the mean score per category of one render, in
// wheel order.
func (r *RenderRepository) CategoryAverages(ctx context.Context, renderID string) ([]models.CategoryAverage, error) {
	const query = `
		SELECT category, AVG(score), COUNT(*)
		FROM render_scores
		WHERE render_id = ?
		GROUP BY category
		ORDER BY MIN(position)
	`
	rows, err := r.db.QueryContext(ctx, query, renderID)
	if err != nil {
		return nil, fmt.Errorf("query averages: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryAverage
	for rows.Next() {
		var (
			a   models.CategoryAverage
			avg sql.NullFloat64
		)
		if err := rows.Scan(&a.Category, &avg, &a.Count); err != nil {
			return nil, fmt.Errorf("scan average: %w", err)
		}
		if avg.Valid {
			a.Average = avg.Float64
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
