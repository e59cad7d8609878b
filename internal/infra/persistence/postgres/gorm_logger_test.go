package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}))
}

func sqlFn() (string, int64) {
	return `INSERT INTO "users" ("username") VALUES ('alice')`, 0
}

func TestQueryLogger_UsesRequestScopedLogger(t *testing.T) {
	var fallbackBuf, requestBuf bytes.Buffer
	l := newQueryLogger(newBufferLogger(&fallbackBuf, slog.LevelDebug), &config.Config{})

	reqLogger := newBufferLogger(&requestBuf, slog.LevelDebug).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Trace(ctx, time.Now(), sqlFn, errors.New("connection reset"))

	assert.Empty(t, fallbackBuf.String())
	assert.Contains(t, requestBuf.String(), "request_id=req-42")
	assert.Contains(t, requestBuf.String(), "level=ERROR")
	assert.Contains(t, requestBuf.String(), "connection reset")
}

func TestQueryLogger_FallsBackWithoutRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(newBufferLogger(&buf, slog.LevelDebug), &config.Config{})

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("connection reset"))

	assert.Contains(t, buf.String(), "Query failed")
}

func TestQueryLogger_ConstraintRejectionsAreNotErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unique violation", &pgconn.PgError{Code: sqlStateUniqueViolation, ConstraintName: "users_email_key"}},
		{"check violation", &pgconn.PgError{Code: sqlStateCheckViolation, ConstraintName: "products_price_check"}},
		{"numeric out of range", &pgconn.PgError{Code: sqlStateNumericRange}},
		{"duplicated key", gorm.ErrDuplicatedKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newQueryLogger(newBufferLogger(&buf, slog.LevelDebug), &config.Config{})

			l.Trace(context.Background(), time.Now(), sqlFn, tt.err)

			assert.NotContains(t, buf.String(), "level=ERROR")
			assert.Contains(t, buf.String(), "level=DEBUG")
			assert.Contains(t, buf.String(), "Query rejected by constraint")
		})
	}
}

func TestQueryLogger_SkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(newBufferLogger(&buf, slog.LevelDebug), &config.Config{})

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestQueryLogger_SlowQueryAndSilentMode(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(newBufferLogger(&buf, slog.LevelDebug), &config.Config{})

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	assert.Contains(t, buf.String(), "Slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sqlFn, errors.New("ignored"))
	assert.Empty(t, buf.String())
}
