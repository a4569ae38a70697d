// Package onerror terminates the process on fatal translation errors. The
// first error aborts the run; the output of the input that failed is not
// written.
package onerror

import (
	"fmt"
	"os"
)

// Log reports a fatal error and exits non-zero. A nil error is a no-op.
func Log(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "fatal:", err)
	os.Exit(1)
}

// Logf names the input being translated in the report.
func Logf(input string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "fatal: %s: %s\n", input, err)
	os.Exit(1)
}
