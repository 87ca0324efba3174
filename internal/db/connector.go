// Package db connects to PostgreSQL and runs composed schema scripts.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bonfie-erp/schemactl/internal/retry"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

// Pool configuration. A schema script runs on one connection; the pool only
// exists for its connect-and-ping lifecycle.
const (
	DefaultMaxConns       = 2
	DefaultConnectTimeout = 10 * time.Second
)

// Target describes where a connection string points, without credentials.
type Target struct {
	Host     string
	Port     uint16
	User     string
	Database string
}

func (t Target) String() string {
	return fmt.Sprintf("%s@%s:%d/%s", t.User, t.Host, t.Port, t.Database)
}

// ParseTarget extracts the connection target from a PostgreSQL URI or
// keyword/value connection string.
func ParseTarget(connStr string) (Target, error) {
	if strings.TrimSpace(connStr) == "" {
		return Target{}, fmt.Errorf("connection string is empty: %w", schemactl.ErrInvalidConfig)
	}
	cfg, err := pgconn.ParseConfig(connStr)
	if err != nil {
		return Target{}, fmt.Errorf("invalid connection string: %v: %w", err, schemactl.ErrInvalidConfig)
	}
	return Target{Host: cfg.Host, Port: cfg.Port, User: cfg.User, Database: cfg.Database}, nil
}

// Connector opens a pool with automatic retry on transient failures.
// Server NOTICE messages are forwarded to the logger.
type Connector struct {
	connStr  string
	logger   schemactl.Logger
	executor *retry.Executor
}

// NewConnector creates a Connector using the default retry policy:
// DefaultRetryMaxAttempts retries with exponential backoff.
func NewConnector(connStr string, logger schemactl.Logger) *Connector {
	strategy := retry.NewExponentialBackoff(schemactl.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(schemactl.DefaultRetryInitialDelay),
		retry.WithMaxDelay(schemactl.DefaultRetryMaxDelay),
	)
	executor := retry.NewExecutor(retry.NewPostgreSQLClassifier(), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("Connection attempt %d failed (%v); retrying in %s", attempt+1, err, delay.Round(time.Millisecond))
		})
	return &Connector{connStr: connStr, logger: logger, executor: executor}
}

// Connect establishes a connection pool and verifies it with a ping.
func (c *Connector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(c.connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %v: %w", err, schemactl.ErrInvalidConfig)
	}
	poolConfig.MaxConns = DefaultMaxConns
	if poolConfig.ConnConfig.ConnectTimeout == 0 {
		poolConfig.ConnConfig.ConnectTimeout = DefaultConnectTimeout
	}
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		c.logger.Info("%s", notice.Message)
	}

	target := Target{
		Host:     poolConfig.ConnConfig.Host,
		Port:     poolConfig.ConnConfig.Port,
		User:     poolConfig.ConnConfig.User,
		Database: poolConfig.ConnConfig.Database,
	}
	c.logger.Verbose("Connecting to %s", target)

	var pool *pgxpool.Pool
	err = c.executor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, target)
	}
	return pool, nil
}

// wrapConnectionError adds actionable guidance to raw pgx connection errors.
func wrapConnectionError(err error, target Target) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", target.Host, target.Port)

	var hint string
	switch {
	case strings.Contains(errStr, "connection refused"):
		hint = fmt.Sprintf("PostgreSQL is not accepting connections on %s (check: pg_isready -h %s -p %d)", addr, target.Host, target.Port)
	case strings.Contains(errStr, "no such host"):
		hint = fmt.Sprintf("cannot resolve host %q", target.Host)
	case strings.Contains(errStr, "password authentication failed"):
		hint = fmt.Sprintf("password authentication failed for user %q (check $PGPASSWORD or ~/.pgpass)", target.User)
	case strings.Contains(errStr, "does not exist"):
		hint = fmt.Sprintf("database %q does not exist (create it with: createdb %s)", target.Database, target.Database)
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		hint = fmt.Sprintf("connection to %s timed out", addr)
	default:
		hint = fmt.Sprintf("failed to connect to %s", target)
	}
	return fmt.Errorf("%s: %w\n\nOriginal error: %v", hint, schemactl.ErrConnectionFailed, err)
}
