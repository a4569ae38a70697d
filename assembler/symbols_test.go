package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredefinedSymbols(t *testing.T) {
	st := NewSymbolTable()

	require.Equal(t, 0, st.Resolve("SP"))
	require.Equal(t, 1, st.Resolve("LCL"))
	require.Equal(t, 2, st.Resolve("ARG"))
	require.Equal(t, 3, st.Resolve("THIS"))
	require.Equal(t, 4, st.Resolve("THAT"))
	require.Equal(t, 5, st.Resolve("R5"))
	require.Equal(t, 15, st.Resolve("R15"))
	require.Equal(t, 16384, st.Resolve("SCREEN"))
	require.Equal(t, 24576, st.Resolve("KBD"))
}

func TestResolveAllocatesDataAddresses(t *testing.T) {
	st := NewSymbolTable()

	require.Equal(t, 16, st.Resolve("x"))
	require.Equal(t, 17, st.Resolve("y"))
	require.Equal(t, 16, st.Resolve("x")) // stable on repeat lookup
}

func TestAddLabel(t *testing.T) {
	st := NewSymbolTable()

	require.NoError(t, st.AddLabel("LOOP", 7))
	require.Equal(t, 7, st.Resolve("LOOP"))

	err := st.AddLabel("LOOP", 9)
	require.ErrorContains(t, err, "duplicate label")
}
