package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/zjrosen/quill/internal/log"
)

// PositionRepository stores the last cursor position per file. Paths are
// made absolute so the same file opened from different directories shares
// one entry.
type PositionRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db, now: time.Now}
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Get returns the stored position for path. The bool is false when none is stored.
func (r *PositionRepository) Get(ctx context.Context, path string) (Position, bool, error) {
	var m positionModel
	err := r.db.QueryRowContext(ctx,
		`SELECT path, row, col, row_offset, updated_at FROM file_positions WHERE path = ?`,
		canonical(path),
	).Scan(&m.Path, &m.Row, &m.Col, &m.RowOffset, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("failed to get position: %w", err)
	}
	return m.toDomain(), true, nil
}

// Save inserts or replaces the position for p.Path, stamping UpdatedAt.
func (r *PositionRepository) Save(ctx context.Context, p Position) error {
	p.Path = canonical(p.Path)
	p.UpdatedAt = r.now()
	m := toPositionModel(p)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO file_positions (path, row, col, row_offset, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			row = excluded.row,
			col = excluded.col,
			row_offset = excluded.row_offset,
			updated_at = excluded.updated_at`,
		m.Path, m.Row, m.Col, m.RowOffset, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	log.Debug(log.CatDB, "position saved", "path", p.Path, "row", p.Row, "col", p.Col)
	return nil
}

// Delete forgets the position for path.
func (r *PositionRepository) Delete(ctx context.Context, path string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM file_positions WHERE path = ?`, canonical(path)); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// Prune keeps only the keep most recently updated entries and returns how
// many were removed.
func (r *PositionRepository) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM file_positions WHERE path NOT IN (
			SELECT path FROM file_positions ORDER BY updated_at DESC, path LIMIT ?
		)`, max(keep, 0))
	if err != nil {
		return 0, fmt.Errorf("failed to prune positions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned positions: %w", err)
	}
	return n, nil
}
