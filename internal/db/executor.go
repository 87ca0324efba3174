package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

// Execer is the subset of *pgxpool.Pool used to run a script.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Execer = (*pgxpool.Pool)(nil)

// ApplyResult reports a finished script run.
type ApplyResult struct {
	Duration time.Duration
	Bytes    int
}

// ApplyScript runs script as a single simple-protocol request, so it may
// contain many statements, DO blocks and SET commands. Errors raised by the
// server wrap schemactl.ErrExecutionFailed.
func ApplyScript(ctx context.Context, conn Execer, script string) (ApplyResult, error) {
	started := time.Now()
	if _, err := conn.Exec(ctx, script); err != nil {
		return ApplyResult{}, wrapExecutionError(err, script)
	}
	return ApplyResult{Duration: time.Since(started), Bytes: len(script)}, nil
}

func wrapExecutionError(err error, script string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", schemactl.ErrExecutionFailed, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (SQLSTATE %s)", pgErr.Message, pgErr.Code)
	if pgErr.Detail != "" {
		fmt.Fprintf(&b, "\nDetail: %s", pgErr.Detail)
	}
	if pgErr.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s", pgErr.Hint)
	}
	if pgErr.Position > 0 {
		line, preview := locate(script, int(pgErr.Position))
		fmt.Fprintf(&b, "\nAt line %d: %s", line, preview)
	}
	return fmt.Errorf("%w: %s", schemactl.ErrExecutionFailed, b.String())
}

// locate converts a 1-based character position into a line number and a
// preview of the SQL starting at that line.
func locate(script string, position int) (int, string) {
	runes := []rune(script)
	if position > len(runes) {
		position = len(runes)
	}
	if position < 1 {
		position = 1
	}
	line, lineStart := 1, 0
	for i, r := range runes[:max(position-1, 0)] {
		if r == '\n' {
			line++
			lineStart = i + 1
		}
	}

	rest := runes[lineStart:]
	if len(rest) > schemactl.MaxErrorPreviewLength {
		return line, string(rest[:schemactl.MaxErrorPreviewLength]) + "..."
	}
	return line, string(rest)
}
