// Package retry re-runs an operation with exponential backoff while its
// error is classified as transient.
//
// The apply command uses it to ride out a PostgreSQL server that is still
// starting up (connection refused, "the database system is starting up")
// without retrying errors that will never go away, like a bad password.
//
//	executor := retry.NewExecutor(retry.NewPostgreSQLClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
package retry

import "time"

// Classifier decides whether an error is worth another attempt.
type Classifier interface {
	IsTransient(err error) bool
}

// Strategy calculates the delay before each retry.
type Strategy interface {
	// NextDelay returns the wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the number of retries after the first try.
	// Zero disables retries.
	MaxAttempts() int
}
