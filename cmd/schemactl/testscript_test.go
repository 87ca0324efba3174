package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"schemactl": func() { os.Exit(run(os.Args[1:], os.Stdout, os.Stderr)) },
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			env.Setenv("SCHEMACTL_NON_INTERACTIVE", "1")
			env.Setenv("SCHEMACTL_ADMIN_PASSWORD", "")
			env.Setenv("SCHEMACTL_DATABASE_URL", "")
			env.Setenv("DATABASE_URL", "")
			return nil
		},
	})
}
