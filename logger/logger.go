// Package logger prints optional progress output for the translators.
// It stays silent unless toggled on by the command-line drivers.
package logger

import (
	"fmt"
	"os"
)

var verbose = false

func Toggle(flag bool) {
	verbose = flag
}

func Printf(format string, values ...any) {
	if !verbose {
		return
	}

	fmt.Fprintf(os.Stderr, format, values...)
}

func Println(values ...any) {
	if !verbose {
		return
	}

	fmt.Fprintln(os.Stderr, values...)
}
