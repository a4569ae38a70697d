package translator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommands(t *testing.T) {
	src := `
// stack test
push constant 7
pop local 2   // stash it
add
label MAIN_LOOP
goto MAIN_LOOP
if-goto END
function Foo.bar 2
call Foo.bar 1
return
`
	commands, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	require.Equal(t, []Command{
		{Type: Push, Arg1: "constant", Arg2: 7, Line: 3},
		{Type: Pop, Arg1: "local", Arg2: 2, Line: 4},
		{Type: Arithmetic, Op: "add", Line: 5},
		{Type: Label, Arg1: "MAIN_LOOP", Line: 6},
		{Type: Goto, Arg1: "MAIN_LOOP", Line: 7},
		{Type: IfGoto, Arg1: "END", Line: 8},
		{Type: Function, Arg1: "Foo.bar", Arg2: 2, Line: 9},
		{Type: Call, Arg1: "Foo.bar", Arg2: 1, Line: 10},
		{Type: Return, Line: 11},
	}, commands)
}

func TestParseRejectsMalformedCommands(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"boing 3", "unknown command"},
		{"push constant", "push takes two arguments"},
		{"push constant seven", "invalid index"},
		{"push constant -1", "invalid index"},
		{"add 1", "add takes no arguments"},
		{"return 0", "return takes no arguments"},
		{"label", "label takes one argument"},
	}

	for _, tt := range tests {
		_, err := Parse(strings.NewReader(tt.src))
		require.ErrorContains(t, err, tt.expected, "source: %s", tt.src)
	}
}
