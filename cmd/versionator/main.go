// Command versionator sets and releases versions across a multi-module Maven
// project, rewriting every pom (and MODULE.bazel pin) that refers to them.
package main

import (
	"fmt"
	"io"
	"os"
)

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var executeFunc = execute

func main() {
	runMain(os.Args, os.Stdin, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the CLI command with the provided args and streams.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI, exiting on fatal errors.
func runMain(args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) {
	if err := executeFunc(args, stdin, stdout, stderr); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)
	}
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	s := Version
	if Commit != "" && Commit != "unknown" {
		s += " (commit " + Commit + ")"
	}
	if BuildDate != "" && BuildDate != "unknown" {
		s += " built " + BuildDate
	}
	return s
}
