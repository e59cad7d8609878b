package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"inventory/internal/infra/persistence/migrations"
	"inventory/internal/util"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	started := time.Now()
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	if logger != nil {
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			logger.Warn("Failed to read schema version", slog.Any("error", err))

			return nil
		}
		logger.Info("Database schema is up to date",
			slog.Int64("version", version),
			slog.String("elapsed", util.FormatDuration(time.Since(started))),
		)
	}

	return nil
}
