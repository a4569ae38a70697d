// Package assembler translates symbolic Hack assembly into binary machine
// code, one 16-character line per instruction.
package assembler

import (
	"fmt"
	"io"

	"github.com/hlmerscher/hack-toolchain-go/logger"
)

const maxAddress = 32767

// Assemble runs both passes over the input and writes the binary program.
// Pass 1 binds labels to instruction addresses; pass 2 encodes.
func Assemble(input io.Reader, out io.Writer) error {
	commands, err := Parse(input)
	if err != nil {
		return err
	}

	symbols := NewSymbolTable()
	if err := collectLabels(commands, symbols); err != nil {
		return err
	}

	return emit(commands, symbols, out)
}

func collectLabels(commands []Command, symbols *SymbolTable) error {
	address := 0
	for _, cmd := range commands {
		if cmd.Kind == LabelDecl {
			if err := symbols.AddLabel(cmd.Symbol, address); err != nil {
				return fmt.Errorf("line %d: %w", cmd.Line, err)
			}
			continue
		}
		address++
	}
	return nil
}

func emit(commands []Command, symbols *SymbolTable, out io.Writer) error {
	for _, cmd := range commands {
		var instruction string

		switch cmd.Kind {
		case LabelDecl:
			continue

		case AInstruction:
			value, err := resolveA(cmd, symbols)
			if err != nil {
				return err
			}
			instruction = encodeA(value)

		case CInstruction:
			encoded, err := encodeC(cmd)
			if err != nil {
				return err
			}
			instruction = encoded
		}

		if _, err := fmt.Fprintln(out, instruction); err != nil {
			return err
		}
	}

	logger.Printf("assembled %d commands\n", len(commands))
	return nil
}

func resolveA(cmd Command, symbols *SymbolTable) (int, error) {
	if isNumeric(cmd.Symbol) {
		value := 0
		for _, c := range cmd.Symbol {
			value = value*10 + int(c-'0')
			if value > maxAddress {
				return 0, fmt.Errorf("line %d: value %s out of range", cmd.Line, cmd.Symbol)
			}
		}
		return value, nil
	}
	return symbols.Resolve(cmd.Symbol), nil
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
