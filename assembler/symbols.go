package assembler

import "fmt"

const firstDataAddress = 16

// SymbolTable maps identifiers to 15-bit addresses. Labels are bound during
// pass 1; names still unresolved in pass 2 are allocated sequential data
// addresses starting at 16.
type SymbolTable struct {
	entries  map[string]int
	nextData int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		entries: map[string]int{
			"SP":     0,
			"LCL":    1,
			"ARG":    2,
			"THIS":   3,
			"THAT":   4,
			"R0":     0,
			"R1":     1,
			"R2":     2,
			"R3":     3,
			"R4":     4,
			"R5":     5,
			"R6":     6,
			"R7":     7,
			"R8":     8,
			"R9":     9,
			"R10":    10,
			"R11":    11,
			"R12":    12,
			"R13":    13,
			"R14":    14,
			"R15":    15,
			"SCREEN": 16384,
			"KBD":    24576,
		},
		nextData: firstDataAddress,
	}
}

// AddLabel binds a label to its instruction address. Redefinition is fatal.
func (st *SymbolTable) AddLabel(name string, address int) error {
	if _, ok := st.entries[name]; ok {
		return fmt.Errorf("duplicate label %q", name)
	}
	st.entries[name] = address
	return nil
}

// Resolve returns the address of a name, allocating a fresh data address on
// first use of an unbound symbol.
func (st *SymbolTable) Resolve(name string) int {
	if address, ok := st.entries[name]; ok {
		return address
	}
	address := st.nextData
	st.entries[name] = address
	st.nextData++
	return address
}
