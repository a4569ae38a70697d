// Package engine compiles a Jack class into VM code with a recursive-descent
// parse over a one-token lookahead.
package engine

import (
	"strconv"

	"github.com/hlmerscher/hack-toolchain-go/logger"
	"github.com/hlmerscher/hack-toolchain-go/symtable"
	"github.com/hlmerscher/hack-toolchain-go/tokenizer"
	"github.com/hlmerscher/hack-toolchain-go/vm"
)

// binaryOps maps Jack operators to VM arithmetic commands. Multiplication
// and division go through the OS instead.
var binaryOps = map[string]string{
	"+": "add",
	"-": "sub",
	"&": "and",
	"|": "or",
	"<": "lt",
	">": "gt",
	"=": "eq",
}

var osCalls = map[string]string{
	"*": "Math.multiply",
	"/": "Math.divide",
}

type Compiler struct {
	tk         *tokenizer.Tokenizer
	vmw        *vm.Writer
	table      *symtable.Table
	className  string
	labelCount int
}

func New(tk *tokenizer.Tokenizer, vmw *vm.Writer) *Compiler {
	return &Compiler{
		tk:    tk,
		vmw:   vmw,
		table: symtable.New(),
	}
}

// CompileClass compiles `class Name { classVarDec* subroutineDec* }`, the
// whole translation unit.
func (c *Compiler) CompileClass() error {
	if _, err := c.process(is("class")); err != nil {
		return err
	}
	nameToken, err := c.process(isIdentifier())
	if err != nil {
		return err
	}
	c.className = nameToken.Raw

	if _, err := c.process(is("{")); err != nil {
		return err
	}

	for c.tk.Current.Is("static") || c.tk.Current.Is("field") {
		if err := c.compileClassVarDec(); err != nil {
			return err
		}
	}

	for c.tk.Current.Is("constructor") || c.tk.Current.Is("function") || c.tk.Current.Is("method") {
		if err := c.compileSubroutine(); err != nil {
			return err
		}
	}

	_, err = c.process(is("}"))
	return err
}

func (c *Compiler) compileClassVarDec() error {
	kindToken, err := c.process(oneOf("static", "field"))
	if err != nil {
		return err
	}

	kind := symtable.Static
	if kindToken.Is("field") {
		kind = symtable.Field
	}

	return c.compileVarNames(kind)
}

// compileVarNames handles `type name (, name)* ;` for both class variable
// and local variable declarations.
func (c *Compiler) compileVarNames(kind symtable.Kind) error {
	typeToken, err := c.process(isType())
	if err != nil {
		return err
	}

	for {
		nameToken, err := c.process(isIdentifier())
		if err != nil {
			return err
		}
		c.table.Define(nameToken.Raw, typeToken.Raw, kind)

		if !c.tk.Current.Is(",") {
			break
		}
		if _, err := c.process(is(",")); err != nil {
			return err
		}
	}

	_, err = c.process(is(";"))
	return err
}

func (c *Compiler) compileSubroutine() error {
	c.table.StartSubroutine()

	kindToken, err := c.process(oneOf("constructor", "function", "method"))
	if err != nil {
		return err
	}
	if _, err := c.process(is("void"), isType()); err != nil {
		return err
	}
	nameToken, err := c.process(isIdentifier())
	if err != nil {
		return err
	}
	logger.Printf("compiling %s %s.%s\n", kindToken.Raw, c.className, nameToken.Raw)

	if _, err := c.process(is("(")); err != nil {
		return err
	}
	if kindToken.Is("method") {
		c.table.Define("this", c.className, symtable.Arg)
	}
	if err := c.compileParameterList(); err != nil {
		return err
	}
	if _, err := c.process(is(")")); err != nil {
		return err
	}

	return c.compileSubroutineBody(kindToken.Raw, nameToken.Raw)
}

func (c *Compiler) compileParameterList() error {
	if c.tk.Current.Is(")") {
		return nil
	}

	for {
		typeToken, err := c.process(isType())
		if err != nil {
			return err
		}
		nameToken, err := c.process(isIdentifier())
		if err != nil {
			return err
		}
		c.table.Define(nameToken.Raw, typeToken.Raw, symtable.Arg)

		if !c.tk.Current.Is(",") {
			return nil
		}
		if _, err := c.process(is(",")); err != nil {
			return err
		}
	}
}

func (c *Compiler) compileSubroutineBody(kind, name string) error {
	if _, err := c.process(is("{")); err != nil {
		return err
	}

	for c.tk.Current.Is("var") {
		if _, err := c.process(is("var")); err != nil {
			return err
		}
		if err := c.compileVarNames(symtable.Var); err != nil {
			return err
		}
	}

	if err := c.vmw.WriteFunction(c.className+"."+name, c.table.Count(symtable.Var)); err != nil {
		return err
	}
	if err := c.writePrologue(kind); err != nil {
		return err
	}

	if err := c.compileStatements(); err != nil {
		return err
	}

	_, err := c.process(is("}"))
	return err
}

// writePrologue anchors `this`: a constructor allocates the object, a method
// receives it as the implicit first argument.
func (c *Compiler) writePrologue(kind string) error {
	switch kind {
	case "constructor":
		if err := c.vmw.WritePush(vm.Constant, c.table.Count(symtable.Field)); err != nil {
			return err
		}
		if err := c.vmw.WriteCall("Memory.alloc", 1); err != nil {
			return err
		}
		return c.vmw.WritePop(vm.Pointer, 0)

	case "method":
		if err := c.vmw.WritePush(vm.Argument, 0); err != nil {
			return err
		}
		return c.vmw.WritePop(vm.Pointer, 0)
	}
	return nil
}

func (c *Compiler) compileStatements() error {
	for {
		switch {
		case c.tk.Current.Is("let"):
			if err := c.compileLet(); err != nil {
				return err
			}
		case c.tk.Current.Is("if"):
			if err := c.compileIf(); err != nil {
				return err
			}
		case c.tk.Current.Is("while"):
			if err := c.compileWhile(); err != nil {
				return err
			}
		case c.tk.Current.Is("do"):
			if err := c.compileDo(); err != nil {
				return err
			}
		case c.tk.Current.Is("return"):
			if err := c.compileReturn(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (c *Compiler) compileLet() error {
	if _, err := c.process(is("let")); err != nil {
		return err
	}
	nameToken, err := c.process(isIdentifier())
	if err != nil {
		return err
	}

	kind := c.table.KindOf(nameToken.Raw)
	if kind == symtable.None {
		return c.notAVariable(nameToken.Raw)
	}
	segment := symtable.Segment(kind)
	index := c.table.IndexOf(nameToken.Raw)

	if !c.tk.Current.Is("[") {
		if _, err := c.process(is("=")); err != nil {
			return err
		}
		if err := c.compileExpression(); err != nil {
			return err
		}
		if _, err := c.process(is(";")); err != nil {
			return err
		}
		return c.vmw.WritePop(segment, index)
	}

	// let v[i] = e: the right-hand side is evaluated before the destination
	// pointer is committed to THAT, so nested array assignments stay correct.
	if _, err := c.process(is("[")); err != nil {
		return err
	}
	if err := c.vmw.WritePush(segment, index); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.vmw.WriteArithmetic("add"); err != nil {
		return err
	}
	if _, err := c.process(is("]")); err != nil {
		return err
	}
	if _, err := c.process(is("=")); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if _, err := c.process(is(";")); err != nil {
		return err
	}

	if err := c.vmw.WritePop(vm.Temp, 0); err != nil {
		return err
	}
	if err := c.vmw.WritePop(vm.Pointer, 1); err != nil {
		return err
	}
	if err := c.vmw.WritePush(vm.Temp, 0); err != nil {
		return err
	}
	return c.vmw.WritePop(vm.That, 0)
}

func (c *Compiler) compileIf() error {
	c.labelCount++
	k := strconv.Itoa(c.labelCount)
	falseLabel, endLabel := "IF_FALSE_"+k, "IF_END_"+k

	if _, err := c.process(is("if")); err != nil {
		return err
	}
	if err := c.compileCondition(falseLabel); err != nil {
		return err
	}
	if err := c.compileBlock(); err != nil {
		return err
	}
	if err := c.vmw.WriteGoto(endLabel); err != nil {
		return err
	}
	if err := c.vmw.WriteLabel(falseLabel); err != nil {
		return err
	}

	if c.tk.Current.Is("else") {
		if _, err := c.process(is("else")); err != nil {
			return err
		}
		if err := c.compileBlock(); err != nil {
			return err
		}
	}

	return c.vmw.WriteLabel(endLabel)
}

func (c *Compiler) compileWhile() error {
	c.labelCount++
	k := strconv.Itoa(c.labelCount)
	startLabel, endLabel := "WHILE_START_"+k, "WHILE_END_"+k

	if _, err := c.process(is("while")); err != nil {
		return err
	}
	if err := c.vmw.WriteLabel(startLabel); err != nil {
		return err
	}
	if err := c.compileCondition(endLabel); err != nil {
		return err
	}
	if err := c.compileBlock(); err != nil {
		return err
	}
	if err := c.vmw.WriteGoto(startLabel); err != nil {
		return err
	}
	return c.vmw.WriteLabel(endLabel)
}

// compileCondition compiles `( expression )` and jumps to skipLabel when the
// negated condition holds.
func (c *Compiler) compileCondition(skipLabel string) error {
	if _, err := c.process(is("(")); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if _, err := c.process(is(")")); err != nil {
		return err
	}
	if err := c.vmw.WriteArithmetic("not"); err != nil {
		return err
	}
	return c.vmw.WriteIf(skipLabel)
}

func (c *Compiler) compileBlock() error {
	if _, err := c.process(is("{")); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	_, err := c.process(is("}"))
	return err
}

func (c *Compiler) compileDo() error {
	if _, err := c.process(is("do")); err != nil {
		return err
	}
	nameToken, err := c.process(isIdentifier())
	if err != nil {
		return err
	}
	if err := c.compileSubroutineCall(nameToken.Raw); err != nil {
		return err
	}
	if _, err := c.process(is(";")); err != nil {
		return err
	}

	// discard the void result
	return c.vmw.WritePop(vm.Temp, 0)
}

func (c *Compiler) compileReturn() error {
	if _, err := c.process(is("return")); err != nil {
		return err
	}

	if c.tk.Current.Is(";") {
		if err := c.vmw.WritePush(vm.Constant, 0); err != nil {
			return err
		}
	} else if err := c.compileExpression(); err != nil {
		return err
	}

	if _, err := c.process(is(";")); err != nil {
		return err
	}
	return c.vmw.WriteReturn()
}
