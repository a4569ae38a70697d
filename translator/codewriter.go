// Package translator expands stack VM commands into Hack assembly and
// implements the calling convention.
package translator

import (
	"fmt"
	"io"
	"strconv"
)

var segmentBases = map[string]string{
	"local":    "LCL",
	"argument": "ARG",
	"this":     "THIS",
	"that":     "THAT",
}

// CodeWriter emits assembly for a stream of VM commands. The label counter
// lives for the whole output file so generated labels stay unique across
// every translation unit aggregated into it.
type CodeWriter struct {
	out      io.Writer
	fileName string
	count    int
}

func NewCodeWriter(out io.Writer) *CodeWriter {
	return &CodeWriter{out: out}
}

// SetFileName swaps in the static-segment prefix of the translation unit
// about to be emitted.
func (cw *CodeWriter) SetFileName(name string) {
	cw.fileName = name
}

// WriteBootstrap emits SP := 256 followed by a call to Sys.init.
func (cw *CodeWriter) WriteBootstrap() error {
	if err := cw.print("@256\nD=A\n@SP\nM=D"); err != nil {
		return err
	}
	return cw.writeCall("Sys.init", 0)
}

// Translate dispatches every parsed command to its emitter.
func (cw *CodeWriter) Translate(commands []Command) error {
	for _, c := range commands {
		var err error

		switch c.Type {
		case Arithmetic:
			err = cw.writeArithmetic(c.Op)
		case Push:
			err = cw.writePush(c.Arg1, c.Arg2)
		case Pop:
			err = cw.writePop(c.Arg1, c.Arg2)
		case Label:
			err = cw.writeLabel(c.Arg1)
		case Goto:
			err = cw.writeGoto(c.Arg1)
		case IfGoto:
			err = cw.writeIfGoto(c.Arg1)
		case Function:
			err = cw.writeFunction(c.Arg1, c.Arg2)
		case Return:
			err = cw.writeReturn()
		case Call:
			err = cw.writeCall(c.Arg1, c.Arg2)
		}

		if err != nil {
			return fmt.Errorf("line %d: %w", c.Line, err)
		}
	}
	return nil
}

func (cw *CodeWriter) print(a string) error {
	_, err := fmt.Fprintln(cw.out, a)
	return err
}

// pushTail stores D on top of the stack and advances SP.
const pushTail = "@SP\nAM=M+1\nA=A-1\nM=D"

// popHead retracts SP and loads the old top of the stack into D.
const popHead = "@SP\nAM=M-1\nD=M"

func (cw *CodeWriter) writeArithmetic(op string) error {
	binary := func(comp string) string {
		return "// " + op + "\n" + popHead + "\nA=A-1\nM=" + comp
	}
	unary := func(comp string) string {
		return "// " + op + "\n@SP\nA=M-1\nM=" + comp
	}

	switch op {
	case "add":
		return cw.print(binary("D+M"))
	case "sub":
		return cw.print(binary("M-D"))
	case "and":
		return cw.print(binary("D&M"))
	case "or":
		return cw.print(binary("D|M"))
	case "neg":
		return cw.print(unary("-M"))
	case "not":
		return cw.print(unary("!M"))
	case "eq":
		return cw.writeComparison(op, "JNE")
	case "gt":
		return cw.writeComparison(op, "JLE")
	case "lt":
		return cw.writeComparison(op, "JGE")
	}
	return fmt.Errorf("unknown arithmetic command %q", op)
}

// writeComparison computes (second from top) - (top), primes the result cell
// to false, and jumps past the true-overwrite on the negated comparison.
// The negated jump avoids a second label.
func (cw *CodeWriter) writeComparison(op, jump string) error {
	cw.count++
	label := "AR_" + strconv.Itoa(cw.count)

	return cw.print("// " + op + "\n" +
		popHead + "\n" +
		"A=A-1\n" +
		"D=M-D\n" +
		"M=0\n" +
		"@" + label + "\n" +
		"D;" + jump + "\n" +
		"@SP\n" +
		"A=M-1\n" +
		"M=-1\n" +
		"(" + label + ")")
}

func (cw *CodeWriter) writePush(segment string, index int) error {
	header := "// push " + segment + " " + strconv.Itoa(index) + "\n"

	switch segment {
	case "constant":
		return cw.print(header + "@" + strconv.Itoa(index) + "\nD=A\n" + pushTail)
	case "static":
		return cw.print(header + "@" + cw.staticSymbol(index) + "\nD=M\n" + pushTail)
	case "pointer":
		return cw.print(header + "@R" + strconv.Itoa(3+index) + "\nD=M\n" + pushTail)
	case "temp":
		return cw.print(header + "@R" + strconv.Itoa(5+index) + "\nD=M\n" + pushTail)
	case "local", "argument", "this", "that":
		return cw.print(header +
			"@" + strconv.Itoa(index) + "\nD=A\n" +
			"@" + segmentBases[segment] + "\nA=D+M\nD=M\n" +
			pushTail)
	}
	return fmt.Errorf("unknown segment %q", segment)
}

func (cw *CodeWriter) writePop(segment string, index int) error {
	header := "// pop " + segment + " " + strconv.Itoa(index) + "\n"

	switch segment {
	case "static":
		return cw.print(header + popHead + "\n@" + cw.staticSymbol(index) + "\nM=D")
	case "pointer":
		return cw.print(header + popHead + "\n@R" + strconv.Itoa(3+index) + "\nM=D")
	case "temp":
		return cw.print(header + popHead + "\n@R" + strconv.Itoa(5+index) + "\nM=D")
	case "local", "argument", "this", "that":
		// The target address is staged in R13 so the stack pop can be
		// issued in sequence.
		return cw.print(header +
			"@" + strconv.Itoa(index) + "\nD=A\n" +
			"@" + segmentBases[segment] + "\nD=D+M\n" +
			"@R13\nM=D\n" +
			popHead + "\n" +
			"@R13\nA=M\nM=D")
	}
	return fmt.Errorf("unknown segment %q", segment)
}

func (cw *CodeWriter) staticSymbol(index int) string {
	return cw.fileName + "." + strconv.Itoa(index)
}

func (cw *CodeWriter) writeLabel(label string) error {
	return cw.print("(" + label + ")")
}

func (cw *CodeWriter) writeGoto(label string) error {
	return cw.print("// goto " + label + "\n@" + label + "\n0;JMP")
}

func (cw *CodeWriter) writeIfGoto(label string) error {
	return cw.print("// if-goto " + label + "\n" + popHead + "\n@" + label + "\nD;JNE")
}

func (cw *CodeWriter) writeFunction(name string, nLocals int) error {
	if err := cw.writeLabel(name); err != nil {
		return err
	}
	for i := 0; i < nLocals; i++ {
		if err := cw.writePush("constant", 0); err != nil {
			return err
		}
	}
	return nil
}

// writeCall saves the caller frame, repositions ARG and LCL, and jumps to
// the callee. The return address is a fresh RETURN_ADDRESS_k label emitted
// right after the jump.
func (cw *CodeWriter) writeCall(name string, nArgs int) error {
	cw.count++
	returnAddress := "RETURN_ADDRESS_" + strconv.Itoa(cw.count)

	if err := cw.print("@" + returnAddress + "\nD=A\n" + pushTail); err != nil {
		return err
	}
	for _, register := range []string{"LCL", "ARG", "THIS", "THAT"} {
		if err := cw.print("@" + register + "\nD=M\n" + pushTail); err != nil {
			return err
		}
	}
	if err := cw.setAddress("ARG", "SP", -5-nArgs); err != nil {
		return err
	}
	if err := cw.setAddress("LCL", "SP", 0); err != nil {
		return err
	}
	if err := cw.writeGoto(name); err != nil {
		return err
	}
	return cw.writeLabel(returnAddress)
}

// writeReturn restores the caller frame. The frame pointer is stashed in
// R15 and the return address in R14 before the result overwrites *ARG.
func (cw *CodeWriter) writeReturn() error {
	if err := cw.setAddress("R15", "LCL", 0); err != nil {
		return err
	}
	if err := cw.setData("R14", "R15", -5); err != nil {
		return err
	}
	if err := cw.writePop("argument", 0); err != nil {
		return err
	}
	if err := cw.setAddress("SP", "ARG", 1); err != nil {
		return err
	}
	if err := cw.setData("THAT", "R15", -1); err != nil {
		return err
	}
	if err := cw.setData("THIS", "R15", -2); err != nil {
		return err
	}
	if err := cw.setData("ARG", "R15", -3); err != nil {
		return err
	}
	if err := cw.setData("LCL", "R15", -4); err != nil {
		return err
	}
	return cw.print("@R14\nA=M\n0;JMP")
}

// setAddress stores address + offset into dest.
func (cw *CodeWriter) setAddress(dest, address string, offset int) error {
	comp := "D=M-D"
	if offset > 0 {
		comp = "D=D+M"
	}
	if offset < 0 {
		offset = -offset
	}

	return cw.print("@" + strconv.Itoa(offset) + "\nD=A\n" +
		"@" + address + "\n" + comp + "\n" +
		"@" + dest + "\nM=D")
}

// setData stores *(address + offset) into dest.
func (cw *CodeWriter) setData(dest, address string, offset int) error {
	comp := "A=M-D"
	if offset > 0 {
		comp = "A=D+M"
	}
	if offset < 0 {
		offset = -offset
	}

	return cw.print("@" + strconv.Itoa(offset) + "\nD=A\n" +
		"@" + address + "\n" + comp + "\nD=M\n" +
		"@" + dest + "\nM=D")
}
