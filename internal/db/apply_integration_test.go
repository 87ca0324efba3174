//go:build integration

package db_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonfie-erp/schemactl/internal/compose"
	"github.com/bonfie-erp/schemactl/internal/db"
	"github.com/bonfie-erp/schemactl/internal/testinfra"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

const testSchema = `CREATE TABLE public.roles (
  id integer PRIMARY KEY,
  role_code text NOT NULL,
  role_name text NOT NULL,
  permissions jsonb NOT NULL DEFAULT '{}',
  description text,
  is_active boolean NOT NULL DEFAULT true,
  updated_at timestamptz NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE public.classrooms (
  classroom_id text PRIMARY KEY,
  classroom_name text NOT NULL,
  capacity integer NOT NULL,
  is_active boolean NOT NULL DEFAULT true
);

CREATE TABLE public.tutoring_center_settings (
  setting_key text PRIMARY KEY,
  setting_value jsonb NOT NULL,
  description text,
  updated_at timestamptz NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE public.students (
  student_id uuid PRIMARY KEY DEFAULT extensions.uuid_generate_v4(),
  full_name text NOT NULL
);`

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *recordingLogger) Verbose(string, ...any) {}
func (l *recordingLogger) Warn(string, ...any)    {}
func (l *recordingLogger) Error(string, ...any)   {}

func (l *recordingLogger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.infos...)
}

func connect(t *testing.T, logger schemactl.Logger) *pgxpool.Pool {
	t.Helper()
	connStr := testinfra.RequireDatabase(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewConnector(connStr, logger).Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func resetDatabase(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
DROP SCHEMA IF EXISTS public CASCADE;
DROP SCHEMA IF EXISTS extensions CASCADE;
CREATE SCHEMA public;
CREATE SCHEMA extensions;`)
	require.NoError(t, err)
}

func TestApplyScript_ComposedDocument(t *testing.T) {
	pool := connect(t, &recordingLogger{})
	resetDatabase(t, pool)

	doc, err := compose.Render(testSchema, "", compose.Options{})
	require.NoError(t, err)

	result, err := db.ApplyScript(context.Background(), pool, doc.Text)
	require.NoError(t, err)
	assert.Equal(t, len(doc.Text), result.Bytes)

	var roles, classrooms, settings int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT count(*) FROM public.roles").Scan(&roles))
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT count(*) FROM public.classrooms").Scan(&classrooms))
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT count(*) FROM public.tutoring_center_settings").Scan(&settings))
	assert.Equal(t, 3, roles)
	assert.Equal(t, 4, classrooms)
	assert.Equal(t, 5, settings)

	// The schema has no IF NOT EXISTS guards, so a second run fails.
	_, err = db.ApplyScript(context.Background(), pool, doc.Text)
	assert.ErrorIs(t, err, schemactl.ErrExecutionFailed)
	assert.Contains(t, err.Error(), "42P07")
}

func TestApplyScript_ForwardsNotices(t *testing.T) {
	logger := &recordingLogger{}
	pool := connect(t, logger)

	_, err := db.ApplyScript(context.Background(), pool, `DO $$
BEGIN
  RAISE NOTICE 'Email: %', 'admin@example.com';
END $$;`)
	require.NoError(t, err)
	assert.Contains(t, logger.lines(), "Email: admin@example.com")
}

func TestApplyScript_SyntaxError(t *testing.T) {
	pool := connect(t, &recordingLogger{})

	_, err := db.ApplyScript(context.Background(), pool, "SELECT 1;\nSELEC 2;\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, schemactl.ErrExecutionFailed)
	assert.Contains(t, err.Error(), "42601")
	assert.Contains(t, err.Error(), "At line 2")
}
