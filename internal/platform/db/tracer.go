package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type traceKey struct{}

type traceStart struct {
	sql     string
	args    int
	started time.Time
}

// queryTracer logs failed statements. Argument values are never logged.
type queryTracer struct {
	logger zerolog.Logger
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{
		sql:     data.SQL,
		args:    len(data.Args),
		started: time.Now(),
	})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, _ := ctx.Value(traceKey{}).(traceStart)
	elapsed := time.Since(start.started)

	if data.Err != nil {
		t.logger.Error().
			Err(data.Err).
			Str("sql", compactSQL(start.sql)).
			Int("args", start.args).
			Dur("latency", elapsed).
			Msg("query failed")
		return
	}

	t.logger.Debug().
		Str("sql", compactSQL(start.sql)).
		Int("args", start.args).
		Dur("latency", elapsed).
		Msg("query")
}

// compactSQL collapses whitespace so multi-line statements fit on one log line.
func compactSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
