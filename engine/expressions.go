package engine

import (
	"io"
	"strconv"

	"github.com/hlmerscher/hack-toolchain-go/symtable"
	"github.com/hlmerscher/hack-toolchain-go/tokenizer"
	"github.com/hlmerscher/hack-toolchain-go/vm"
)

// compileExpression compiles `term (op term)*`, strictly left to right, and
// leaves exactly one value on the stack.
func (c *Compiler) compileExpression() error {
	if err := c.compileTerm(); err != nil {
		return err
	}

	for {
		op := c.tk.Current
		if op.Type != tokenizer.SYMBOL || binaryOps[op.Raw] == "" && osCalls[op.Raw] == "" {
			return nil
		}
		if _, err := c.process(is(op.Raw)); err != nil {
			return err
		}
		if err := c.compileTerm(); err != nil {
			return err
		}

		if routine, ok := osCalls[op.Raw]; ok {
			if err := c.vmw.WriteCall(routine, 2); err != nil {
				return err
			}
			continue
		}
		if err := c.vmw.WriteArithmetic(binaryOps[op.Raw]); err != nil {
			return err
		}
	}
}

func (c *Compiler) compileTerm() error {
	token := c.tk.Current

	switch token.Type {
	case tokenizer.INT_CONST:
		value, _ := strconv.Atoi(token.Raw)
		if _, err := c.process(is(token.Raw)); err != nil {
			return err
		}
		return c.vmw.WritePush(vm.Constant, value)

	case tokenizer.STRING_CONST:
		return c.compileStringConst()

	case tokenizer.KEYWORD:
		return c.compileKeywordConst()

	case tokenizer.IDENTIFIER:
		return c.compileIdentifierTerm()

	case tokenizer.SYMBOL:
		switch token.Raw {
		case "(":
			if _, err := c.process(is("(")); err != nil {
				return err
			}
			if err := c.compileExpression(); err != nil {
				return err
			}
			_, err := c.process(is(")"))
			return err

		case "-", "~":
			if _, err := c.process(is(token.Raw)); err != nil {
				return err
			}
			if err := c.compileTerm(); err != nil {
				return err
			}
			if token.Is("-") {
				return c.vmw.WriteArithmetic("neg")
			}
			return c.vmw.WriteArithmetic("not")
		}
	}

	return c.unexpected("a term", token)
}

// compileStringConst builds the string at runtime, one appendChar per
// character.
func (c *Compiler) compileStringConst() error {
	token := c.tk.Current
	if _, err := c.tk.Advance(); err != nil && err != io.EOF {
		return err
	}

	if err := c.vmw.WritePush(vm.Constant, len(token.Raw)); err != nil {
		return err
	}
	if err := c.vmw.WriteCall("String.new", 1); err != nil {
		return err
	}
	for i := 0; i < len(token.Raw); i++ {
		if err := c.vmw.WritePush(vm.Constant, int(token.Raw[i])); err != nil {
			return err
		}
		if err := c.vmw.WriteCall("String.appendChar", 2); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileKeywordConst() error {
	token, err := c.process(oneOf("true", "false", "null", "this"))
	if err != nil {
		return err
	}

	switch token.Raw {
	case "true":
		if err := c.vmw.WritePush(vm.Constant, 1); err != nil {
			return err
		}
		return c.vmw.WriteArithmetic("neg")
	case "false", "null":
		return c.vmw.WritePush(vm.Constant, 0)
	}
	return c.vmw.WritePush(vm.Pointer, 0)
}

// compileIdentifierTerm disambiguates a variable reference, an array access,
// and a subroutine call by the token after the identifier.
func (c *Compiler) compileIdentifierTerm() error {
	nameToken, err := c.process(isIdentifier())
	if err != nil {
		return err
	}

	switch {
	case c.tk.Current.Is("["):
		return c.compileArrayAccess(nameToken.Raw)

	case c.tk.Current.Is("("), c.tk.Current.Is("."):
		return c.compileSubroutineCall(nameToken.Raw)
	}

	kind := c.table.KindOf(nameToken.Raw)
	if kind == symtable.None {
		return c.notAVariable(nameToken.Raw)
	}
	return c.vmw.WritePush(symtable.Segment(kind), c.table.IndexOf(nameToken.Raw))
}

// compileArrayAccess compiles a[e]: base plus offset into THAT, then the
// element value.
func (c *Compiler) compileArrayAccess(name string) error {
	kind := c.table.KindOf(name)
	if kind == symtable.None {
		return c.notAVariable(name)
	}

	if err := c.vmw.WritePush(symtable.Segment(kind), c.table.IndexOf(name)); err != nil {
		return err
	}
	if _, err := c.process(is("[")); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if _, err := c.process(is("]")); err != nil {
		return err
	}

	if err := c.vmw.WriteArithmetic("add"); err != nil {
		return err
	}
	if err := c.vmw.WritePop(vm.Pointer, 1); err != nil {
		return err
	}
	return c.vmw.WritePush(vm.That, 0)
}

// compileSubroutineCall is entered with the lookahead at "(" or ".", after
// the leading identifier has been consumed. Three shapes:
//
//	name(args)       method call on the current object
//	recv.name(args)  method call on a variable, dispatched by its type
//	Class.name(args) function or constructor call
func (c *Compiler) compileSubroutineCall(name string) error {
	callee := c.className + "." + name
	thisArgs := 0

	if c.tk.Current.Is(".") {
		if _, err := c.process(is(".")); err != nil {
			return err
		}
		subToken, err := c.process(isIdentifier())
		if err != nil {
			return err
		}

		if kind := c.table.KindOf(name); kind != symtable.None {
			callee = c.table.TypeOf(name) + "." + subToken.Raw
			thisArgs = 1
			if err := c.vmw.WritePush(symtable.Segment(kind), c.table.IndexOf(name)); err != nil {
				return err
			}
		} else {
			callee = name + "." + subToken.Raw
		}
	} else {
		thisArgs = 1
		if err := c.vmw.WritePush(vm.Pointer, 0); err != nil {
			return err
		}
	}

	if _, err := c.process(is("(")); err != nil {
		return err
	}
	nArgs, err := c.compileExpressionList()
	if err != nil {
		return err
	}
	if _, err := c.process(is(")")); err != nil {
		return err
	}

	return c.vmw.WriteCall(callee, nArgs+thisArgs)
}

func (c *Compiler) compileExpressionList() (int, error) {
	if c.tk.Current.Is(")") {
		return 0, nil
	}

	nArgs := 0
	for {
		if err := c.compileExpression(); err != nil {
			return 0, err
		}
		nArgs++

		if !c.tk.Current.Is(",") {
			return nArgs, nil
		}
		if _, err := c.process(is(",")); err != nil {
			return 0, err
		}
	}
}
