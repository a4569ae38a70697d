// Package analyzer drives the compilation of one Jack source file.
package analyzer

import (
	"fmt"
	"io"

	"github.com/hlmerscher/hack-toolchain-go/engine"
	"github.com/hlmerscher/hack-toolchain-go/logger"
	"github.com/hlmerscher/hack-toolchain-go/tokenizer"
	"github.com/hlmerscher/hack-toolchain-go/vm"
)

// Compile translates one Jack class from src into VM code on out. The name
// identifies the translation unit in error messages.
func Compile(name string, src io.Reader, out io.Writer) error {
	logger.Printf("compiling %s\n", name)

	tk := tokenizer.New(src)
	if _, err := tk.Advance(); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%s: empty source file", name)
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	compiler := engine.New(tk, vm.NewWriter(out))
	if err := compiler.CompileClass(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}
