package reference

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// Querier is the slice of pgxpool.Pool the store needs. Tests satisfy it
// with pgxmock.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store loads the reference table from the gl_reference table in Postgres,
// for sites that migrated the workbook into the bookkeeping database.
type Store struct {
	db     Querier
	logger *slog.Logger
}

// NewStore creates a Postgres-backed source.
func NewStore(db Querier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Load selects every classification row. Ordering by item code keeps the
// duplicate-wins behavior deterministic across runs.
func (s *Store) Load(ctx context.Context) (*Table, error) {
	const query = `
		SELECT item_code, gl_code, gl_description
		FROM gl_reference
		ORDER BY item_code`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying gl_reference: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ItemCode, &e.GLCode, &e.GLDescription); err != nil {
			return nil, fmt.Errorf("scanning gl_reference row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gl_reference rows: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptySource
	}

	table := NewTable(entries)
	s.logger.Debug("reference table loaded",
		slog.String("source", "postgres"),
		slog.Int("entries", table.Len()))
	return table, nil
}
