package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/taskboard-dev/taskboard/shared/logger"
)

// timestamps are stored as UTC wall clock without zone
const utcNow = "(now() AT TIME ZONE 'utc')"

var createTables = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT ` + utcNow + `
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#ffffff',
		seq BIGINT GENERATED ALWAYS AS IDENTITY
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		card_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT false,
		priority TEXT NOT NULL DEFAULT 'low' CHECK (priority IN ('low', 'medium', 'high')),
		created_time TIMESTAMP NOT NULL DEFAULT ` + utcNow + `,
		seq BIGINT GENERATED ALWAYS AS IDENTITY
	)`,
}

type column struct {
	table      string
	name       string
	definition string
}

// columns added to tables that predate them
var expectedColumns = []column{
	{"boards", "created_at", "TIMESTAMP NOT NULL DEFAULT " + utcNow},
	{"cards", "color", "TEXT NOT NULL DEFAULT '#ffffff'"},
	{"cards", "seq", "BIGINT GENERATED ALWAYS AS IDENTITY"},
	{"items", "completed", "BOOLEAN NOT NULL DEFAULT false"},
	{"items", "priority", "TEXT NOT NULL DEFAULT 'low'"},
	{"items", "created_time", "TIMESTAMP NOT NULL DEFAULT " + utcNow},
	{"items", "seq", "BIGINT GENERATED ALWAYS AS IDENTITY"},
}

var createIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_cards_board ON cards(board_id, seq)",
	"CREATE INDEX IF NOT EXISTS idx_items_card ON items(card_id, seq)",
}

// EnsureSchema converges the database to the tables, columns and indexes the
// service expects. A failing step is logged and skipped, the remaining steps
// still run. The joined step errors are returned for reporting.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	var errs []error
	step := func(name string, err error) {
		if err != nil {
			logger.Log.Error("schema step failed", "step", name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	for _, query := range createTables {
		_, err := s.db.ExecContext(ctx, query)
		step("create table", err)
	}

	for _, col := range expectedColumns {
		added, err := s.ensureColumn(ctx, col)
		step(fmt.Sprintf("column %s.%s", col.table, col.name), err)
		if added {
			logger.Log.Info("added missing column", "table", col.table, "column", col.name)
		}
	}

	for _, query := range createIndexes {
		_, err := s.db.ExecContext(ctx, query)
		step("create index", err)
	}

	return errors.Join(errs...)
}

func (s *Storage) ensureColumn(ctx context.Context, col column) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
		)`, col.table, col.name).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
		pq.QuoteIdentifier(col.table), pq.QuoteIdentifier(col.name), col.definition)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureDefaultBoard inserts a board with the given title unless at least one
// already exists. Existing duplicates are left alone.
func (s *Storage) EnsureDefaultBoard(ctx context.Context, title string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM boards WHERE title = $1)", title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up default board: %w", err)
	}
	if exists {
		logger.Log.Info("default board already exists", "title", title)
		return false, nil
	}

	if _, err := s.db.ExecContext(ctx, "INSERT INTO boards (id, title) VALUES ($1, $2)", uuid.NewString(), title); err != nil {
		return false, fmt.Errorf("failed to create default board: %w", err)
	}
	logger.Log.Info("default board created", "title", title)
	return true, nil
}
