package schemactl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

func TestExitCodeForError_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown flag", errors.New("unknown flag: --foo"), schemactl.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), schemactl.ExitUsageError},
		{"unknown command", errors.New(`unknown command "frob" for "schemactl"`), schemactl.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), schemactl.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <script>"), schemactl.ExitUsageError},
		{"required flag", errors.New(`required flag(s) "input" not set`), schemactl.ExitUsageError},
		{"invalid argument", errors.New(`invalid argument "abc" for "--timeout"`), schemactl.ExitUsageError},
		{"usage sentinel", fmt.Errorf("missing file: %w", schemactl.ErrUsage), schemactl.ExitUsageError},
		{"general error", errors.New("something went wrong"), schemactl.ExitGeneralError},
		{"nil error", nil, schemactl.ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schemactl.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_WrappedSentinels(t *testing.T) {
	tests := []struct {
		sentinel error
		want     int
	}{
		{schemactl.ErrInvalidConfig, schemactl.ExitConfigError},
		{schemactl.ErrInputNotFound, schemactl.ExitInputMissing},
		{schemactl.ErrInvalidEncoding, schemactl.ExitInvalidEncoding},
		{schemactl.ErrContentChanged, schemactl.ExitContentChanged},
		{schemactl.ErrApprovalDenied, schemactl.ExitApprovalDenied},
		{schemactl.ErrExecutionFailed, schemactl.ExitExecutionFailed},
		{schemactl.ErrConnectionFailed, schemactl.ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("compose: %w", tt.sentinel)
			if got := schemactl.ExitCodeForError(wrapped); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", wrapped, got, tt.want)
			}
		})
	}
}
