package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	require.Equal(t, "foo.hack", OutputPath("foo.asm", ".hack"))
	require.Equal(t, "Main.vm", OutputPath("Main.jack", ".vm"))
	require.Equal(t, filepath.Join("dir", "Foo.asm"), OutputPath(filepath.Join("dir", "Foo.vm"), ".asm"))
}

func TestDirOutputPath(t *testing.T) {
	require.Equal(t,
		filepath.Join("FibonacciElement", "FibonacciElement.asm"),
		DirOutputPath("FibonacciElement/", ".asm"))
}

func TestBasename(t *testing.T) {
	require.Equal(t, "Foo", Basename(filepath.Join("some", "dir", "Foo.vm")))
	require.Equal(t, "Main", Basename("Main.jack"))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.hack")
	require.NoError(t, Save(path, []byte("0000000000010101\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0000000000010101\n", string(content))
}
