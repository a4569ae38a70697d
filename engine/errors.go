package engine

import (
	"fmt"

	"github.com/hlmerscher/hack-toolchain-go/tokenizer"
)

func (c *Compiler) unexpected(want string, got tokenizer.Token) error {
	if got == tokenizer.EmptyToken {
		return fmt.Errorf("line %d: expected %s, got end of input", c.tk.LineNr, want)
	}
	return fmt.Errorf("line %d: expected %s, got %q", c.tk.LineNr, want, got.Raw)
}

func (c *Compiler) notAVariable(name string) error {
	return fmt.Errorf("line %d: %q is not a variable", c.tk.LineNr, name)
}
