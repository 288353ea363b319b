package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskboard-dev/taskboard/shared/config"
	internal_errors "github.com/taskboard-dev/taskboard/shared/errors"
	"github.com/taskboard-dev/taskboard/shared/logger"
	sharedpg "github.com/taskboard-dev/taskboard/shared/storage/pg"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.ConnectionConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db: db, cfg: cfg}, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping reports whether the pool can reach the database.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// notFoundOr translates sql.ErrNoRows into a 404 and wraps everything else.
func notFoundOr(err error, notFound string, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return internal_errors.NotFound(notFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
