package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/bonfie-erp/schemactl/internal/cli"
	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and converts panics into ExitPanic.
func run(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "panic: %v\n%s\n", r, debug.Stack())
			code = schemactl.ExitPanic
		}
	}()

	if os.Getenv("SCHEMACTL_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	return cli.Run(args, stdout, stderr)
}
