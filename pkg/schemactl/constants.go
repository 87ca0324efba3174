package schemactl

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or missing path
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied apply approval
	ExitExecutionFailed = 13 // SQL execution failed
	ExitInputMissing    = 14 // An input SQL file was not found
	ExitContentChanged  = 15 // Normalization changed SQL content
	ExitInvalidEncoding = 16 // An input SQL file is not valid UTF-8
)

const (
	// DefaultApplyTimeout bounds a whole apply run, including connection retries.
	DefaultApplyTimeout = 5 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxErrorPreviewLength is the maximum number of characters of SQL
	// shown around a failing statement.
	MaxErrorPreviewLength = 200

	// DateLayout is the layout of the generation date embedded in composed documents.
	DateLayout = "2006-01-02"
)
