package analyzer_test

import (
	"strings"
	"testing"

	"github.com/hlmerscher/hack-toolchain-go/analyzer"

	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	src := `
/** Seven, the simplest Jack program. */
class Main {
   function void main() {
      do Output.printInt(7);
      return;
   }
}
`
	var out strings.Builder
	require.NoError(t, analyzer.Compile("Main", strings.NewReader(src), &out))

	require.Equal(t, strings.Join([]string{
		"function Main.main 0",
		"push constant 7",
		"call Output.printInt 1",
		"pop temp 0",
		"push constant 0",
		"return",
		"",
	}, "\n"), out.String())
}

func TestCompileEmptySource(t *testing.T) {
	var out strings.Builder
	err := analyzer.Compile("Empty", strings.NewReader(""), &out)
	require.ErrorContains(t, err, "Empty: empty source file")
}

func TestCompileNamesTheUnitInErrors(t *testing.T) {
	var out strings.Builder
	err := analyzer.Compile("Broken", strings.NewReader("class Broken {"), &out)
	require.ErrorContains(t, err, "Broken:")
}
