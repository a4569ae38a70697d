package symtable

import (
	"testing"

	"github.com/hlmerscher/hack-toolchain-go/vm"

	"github.com/stretchr/testify/require"
)

func TestDefineAssignsPerKindIndices(t *testing.T) {
	table := New()

	table.Define("a", "int", Static)
	table.Define("b", "int", Static)
	table.Define("x", "int", Field)
	table.Define("size", "int", Arg)
	table.Define("i", "int", Var)
	table.Define("j", "int", Var)

	require.Equal(t, 0, table.IndexOf("a"))
	require.Equal(t, 1, table.IndexOf("b"))
	require.Equal(t, 0, table.IndexOf("x"))
	require.Equal(t, 0, table.IndexOf("size"))
	require.Equal(t, 0, table.IndexOf("i"))
	require.Equal(t, 1, table.IndexOf("j"))

	require.Equal(t, 2, table.Count(Static))
	require.Equal(t, 1, table.Count(Field))
	require.Equal(t, 1, table.Count(Arg))
	require.Equal(t, 2, table.Count(Var))
}

func TestSubroutineScopeShadowsClassScope(t *testing.T) {
	table := New()

	table.Define("x", "int", Field)
	table.Define("x", "Point", Arg)

	require.Equal(t, Arg, table.KindOf("x"))
	require.Equal(t, "Point", table.TypeOf("x"))
	require.Equal(t, 0, table.IndexOf("x"))
}

func TestStartSubroutineResetsOnlySubroutineScope(t *testing.T) {
	table := New()

	table.Define("count", "int", Static)
	table.Define("size", "int", Arg)
	table.Define("i", "int", Var)

	table.StartSubroutine()

	require.Equal(t, None, table.KindOf("size"))
	require.Equal(t, None, table.KindOf("i"))
	require.Equal(t, 0, table.Count(Arg))
	require.Equal(t, 0, table.Count(Var))

	require.Equal(t, Static, table.KindOf("count"))
	require.Equal(t, 1, table.Count(Static))

	table.Define("n", "int", Arg)
	require.Equal(t, 0, table.IndexOf("n"))
}

func TestUnknownName(t *testing.T) {
	table := New()

	require.Equal(t, None, table.KindOf("ghost"))
	require.Equal(t, "", table.TypeOf("ghost"))
	require.Equal(t, -1, table.IndexOf("ghost"))
}

func TestKindSegments(t *testing.T) {
	require.Equal(t, vm.Static, Segment(Static))
	require.Equal(t, vm.This, Segment(Field))
	require.Equal(t, vm.Argument, Segment(Arg))
	require.Equal(t, vm.Local, Segment(Var))
}
