// Package symtable tracks Jack identifiers across the class and subroutine
// scopes.
package symtable

import "github.com/hlmerscher/hack-toolchain-go/vm"

type Kind int

const (
	Static Kind = iota
	Field
	Arg
	Var
	None
)

type entry struct {
	typeName string
	kind     Kind
	index    int
}

// Table resolves names subroutine-scope first, then class scope. Indices
// count per kind within the owning scope.
type Table struct {
	class      map[string]entry
	subroutine map[string]entry
	counts     map[Kind]int
}

func New() *Table {
	return &Table{
		class:      map[string]entry{},
		subroutine: map[string]entry{},
		counts:     map[Kind]int{},
	}
}

// StartSubroutine clears the subroutine scope and resets its counters.
func (t *Table) StartSubroutine() {
	t.subroutine = map[string]entry{}
	t.counts[Arg] = 0
	t.counts[Var] = 0
}

func (t *Table) Define(name, typeName string, kind Kind) {
	e := entry{typeName: typeName, kind: kind, index: t.counts[kind]}
	t.counts[kind]++

	if kind == Static || kind == Field {
		t.class[name] = e
		return
	}
	t.subroutine[name] = e
}

func (t *Table) Count(kind Kind) int {
	return t.counts[kind]
}

func (t *Table) KindOf(name string) Kind {
	if e, ok := t.lookup(name); ok {
		return e.kind
	}
	return None
}

func (t *Table) TypeOf(name string) string {
	if e, ok := t.lookup(name); ok {
		return e.typeName
	}
	return ""
}

func (t *Table) IndexOf(name string) int {
	if e, ok := t.lookup(name); ok {
		return e.index
	}
	return -1
}

func (t *Table) lookup(name string) (entry, bool) {
	if e, ok := t.subroutine[name]; ok {
		return e, true
	}
	e, ok := t.class[name]
	return e, ok
}

// Segment maps a storage kind to the VM segment holding it.
func Segment(kind Kind) vm.Segment {
	switch kind {
	case Static:
		return vm.Static
	case Field:
		return vm.This
	case Arg:
		return vm.Argument
	case Var:
		return vm.Local
	}
	return ""
}
