// Package writer names and saves translator output files.
package writer

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputPath swaps the extension of an input path, e.g. Prog.asm -> Prog.hack.
func OutputPath(input, newExt string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + newExt
}

// DirOutputPath names the aggregate output for a directory input,
// e.g. FibonacciElement/ -> FibonacciElement/FibonacciElement.asm.
func DirOutputPath(dir, newExt string) string {
	dir = strings.TrimSuffix(dir, "/")
	return filepath.Join(dir, filepath.Base(dir)+newExt)
}

// Basename returns the file name without directory and extension. It is the
// translation-unit name used for static symbols and error messages.
func Basename(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Save writes the fully translated content at once, so a failed run leaves
// no partial output behind.
func Save(path string, content []byte) error {
	return os.WriteFile(path, content, 0666)
}
