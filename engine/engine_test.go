package engine_test

import (
	"strings"
	"testing"

	"github.com/hlmerscher/hack-toolchain-go/engine"
	"github.com/hlmerscher/hack-toolchain-go/tokenizer"
	"github.com/hlmerscher/hack-toolchain-go/vm"

	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	out, err := tryCompile(src)
	require.NoError(t, err)
	return out
}

func tryCompile(src string) (string, error) {
	var out strings.Builder
	tk := tokenizer.New(strings.NewReader(src))
	if _, err := tk.Advance(); err != nil {
		return "", err
	}

	compiler := engine.New(tk, vm.NewWriter(&out))
	if err := compiler.CompileClass(); err != nil {
		return "", err
	}
	return out.String(), nil
}

func lines(vmCode ...string) string {
	return strings.Join(vmCode, "\n") + "\n"
}

func TestFunctionWithExpression(t *testing.T) {
	src := `
class Main {
   function void main() {
      do Output.printInt(1 + (2 * 3));
      return;
   }
}
`
	require.Equal(t, lines(
		"function Main.main 0",
		"push constant 1",
		"push constant 2",
		"push constant 3",
		"call Math.multiply 2",
		"add",
		"call Output.printInt 1",
		"pop temp 0",
		"push constant 0",
		"return",
	), compile(t, src))
}

func TestOperatorsHaveNoPrecedence(t *testing.T) {
	src := `
class Main {
   function int calc(int a, int b) {
      return a + b * 2 / 4;
   }
}
`
	// strict left-to-right: ((a + b) * 2) / 4
	require.Equal(t, lines(
		"function Main.calc 0",
		"push argument 0",
		"push argument 1",
		"add",
		"push constant 2",
		"call Math.multiply 2",
		"push constant 4",
		"call Math.divide 2",
		"return",
	), compile(t, src))
}

func TestMethodCallOnCurrentObject(t *testing.T) {
	src := `
class Square {
   field int x;
   method void moveUp() {
      do draw();
      return;
   }
}
`
	require.Equal(t, lines(
		"function Square.moveUp 0",
		"push argument 0",
		"pop pointer 0",
		"push pointer 0",
		"call Square.draw 1",
		"pop temp 0",
		"push constant 0",
		"return",
	), compile(t, src))
}

func TestMethodCallOnVariable(t *testing.T) {
	src := `
class Main {
   function void run() {
      var SquareGame game;
      let game = SquareGame.new();
      do game.run();
      return;
   }
}
`
	require.Equal(t, lines(
		"function Main.run 1",
		"call SquareGame.new 0",
		"pop local 0",
		"push local 0",
		"call SquareGame.run 1",
		"pop temp 0",
		"push constant 0",
		"return",
	), compile(t, src))
}

func TestConstructorAllocatesObject(t *testing.T) {
	src := `
class Point {
   field int x, y;
   static int count;

   constructor Point new(int ax, int ay) {
      let x = ax;
      let y = ay;
      let count = count + 1;
      return this;
   }
}
`
	require.Equal(t, lines(
		"function Point.new 0",
		"push constant 2",
		"call Memory.alloc 1",
		"pop pointer 0",
		"push argument 0",
		"pop this 0",
		"push argument 1",
		"pop this 1",
		"push static 0",
		"push constant 1",
		"add",
		"pop static 0",
		"push pointer 0",
		"return",
	), compile(t, src))
}

func TestStringConstant(t *testing.T) {
	src := `
class Main {
   function void main() {
      do Output.printString("Hi");
      return;
   }
}
`
	require.Equal(t, lines(
		"function Main.main 0",
		"push constant 2",
		"call String.new 1",
		"push constant 72",
		"call String.appendChar 2",
		"push constant 105",
		"call String.appendChar 2",
		"call Output.printString 1",
		"pop temp 0",
		"push constant 0",
		"return",
	), compile(t, src))
}

func TestKeywordConstants(t *testing.T) {
	src := `
class Main {
   function boolean flags(boolean b) {
      let b = true;
      let b = false;
      return null;
   }
}
`
	require.Equal(t, lines(
		"function Main.flags 0",
		"push constant 1",
		"neg",
		"pop argument 0",
		"push constant 0",
		"pop argument 0",
		"push constant 0",
		"return",
	), compile(t, src))
}

func TestArrayAssignment(t *testing.T) {
	src := `
class Main {
   function void main() {
      var Array a;
      var int i;
      var int j;
      let a[i] = a[j];
      return;
   }
}
`
	require.Equal(t, lines(
		"function Main.main 3",
		"push local 0",
		"push local 1",
		"add",
		"push local 0",
		"push local 2",
		"add",
		"pop pointer 1",
		"push that 0",
		"pop temp 0",
		"pop pointer 1",
		"push temp 0",
		"pop that 0",
		"push constant 0",
		"return",
	), compile(t, src))
}

func TestIfWithoutElse(t *testing.T) {
	src := `
class Main {
   function int abs(int x) {
      if (x < 0) {
         let x = -x;
      }
      return x;
   }
}
`
	require.Equal(t, lines(
		"function Main.abs 0",
		"push argument 0",
		"push constant 0",
		"lt",
		"not",
		"if-goto IF_FALSE_1",
		"push argument 0",
		"neg",
		"pop argument 0",
		"goto IF_END_1",
		"label IF_FALSE_1",
		"label IF_END_1",
		"push argument 0",
		"return",
	), compile(t, src))
}

func TestIfElseAndWhileShareTheCounter(t *testing.T) {
	src := `
class Main {
   function int sum(int n) {
      var int s;
      let s = 0;
      while (~(n = 0)) {
         if (n > 2) {
            let s = s + n;
         } else {
            let s = s + 1;
         }
         let n = n - 1;
      }
      return s;
   }
}
`
	require.Equal(t, lines(
		"function Main.sum 1",
		"push constant 0",
		"pop local 0",
		"label WHILE_START_1",
		"push argument 0",
		"push constant 0",
		"eq",
		"not",
		"not",
		"if-goto WHILE_END_1",
		"push argument 0",
		"push constant 2",
		"gt",
		"not",
		"if-goto IF_FALSE_2",
		"push local 0",
		"push argument 0",
		"add",
		"pop local 0",
		"goto IF_END_2",
		"label IF_FALSE_2",
		"push local 0",
		"push constant 1",
		"add",
		"pop local 0",
		"label IF_END_2",
		"push argument 0",
		"push constant 1",
		"sub",
		"pop argument 0",
		"goto WHILE_START_1",
		"label WHILE_END_1",
		"push local 0",
		"return",
	), compile(t, src))
}

func TestMethodImplicitThis(t *testing.T) {
	src := `
class Counter {
   field int value;

   method int bump(int by) {
      let value = value + by;
      return value;
   }
}
`
	require.Equal(t, lines(
		"function Counter.bump 0",
		"push argument 0",
		"pop pointer 0",
		"push this 0",
		"push argument 1",
		"add",
		"pop this 0",
		"push this 0",
		"return",
	), compile(t, src))
}

func TestUndefinedVariableReference(t *testing.T) {
	src := `
class Main {
   function void main() {
      let ghost = 1;
      return;
   }
}
`
	_, err := tryCompile(src)
	require.ErrorContains(t, err, `"ghost" is not a variable`)
}

func TestUndefinedVariableInTerm(t *testing.T) {
	src := `
class Main {
   function int main() {
      return ghost;
   }
}
`
	_, err := tryCompile(src)
	require.ErrorContains(t, err, `"ghost" is not a variable`)
}

func TestMalformedClass(t *testing.T) {
	_, err := tryCompile("class { }")
	require.ErrorContains(t, err, "expected an identifier")

	_, err = tryCompile("let x = 1;")
	require.ErrorContains(t, err, "expected 'class'")

	_, err = tryCompile("class Main { function void main() { return; }")
	require.ErrorContains(t, err, "end of input")
}
