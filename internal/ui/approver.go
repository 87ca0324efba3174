package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

// InteractiveApprover asks the operator to type the database name before a
// composed schema is executed.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an approver reading from stdin and
// prompting on stderr.
func NewInteractiveApprover() *InteractiveApprover {
	return &InteractiveApprover{input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts the user to type the database name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s\n", Warning(fmt.Sprintf("You are about to run a complete schema script against '%s'", dbName)))
	fmt.Fprintln(a.output, "It creates tables, functions and seed rows and cannot be rolled back.")
	fmt.Fprintf(a.output, "\nTo confirm, type the database name '%s' and press Enter: ", dbName)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		line, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == dbName {
			fmt.Fprintln(a.output, Success("Confirmed. Applying schema..."))
			return true, nil
		}
		fmt.Fprintln(a.output, Failure(fmt.Sprintf("Input '%s' does not match database name '%s'. Operation cancelled.", input, dbName)))
		return false, nil
	}
}

// AutoApprover approves without asking. It backs the --yes flag.
type AutoApprover struct {
	output io.Writer
}

// NewAutoApprover creates an approver that reports on stderr.
func NewAutoApprover() *AutoApprover {
	return &AutoApprover{output: os.Stderr}
}

// RequestApproval approves unless ctx is already done.
func (a *AutoApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(a.output, Muted(fmt.Sprintf("Applying to '%s' without confirmation (--yes)", dbName)))
	return true, nil
}

// SelectApprover picks the approver for an apply run. Without --yes a
// confirmation prompt is required, so a non-interactive session is refused.
func SelectApprover(yes bool, mode Mode) (schemactl.Approver, error) {
	if yes {
		return NewAutoApprover(), nil
	}
	if mode != ModeInteractive {
		return nil, fmt.Errorf("confirmation required but no terminal is attached; rerun with --yes: %w", schemactl.ErrApprovalDenied)
	}
	return NewInteractiveApprover(), nil
}

var (
	_ schemactl.Approver = (*InteractiveApprover)(nil)
	_ schemactl.Approver = (*AutoApprover)(nil)
)
