package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hlmerscher/hack-toolchain-go/assembler"
	"github.com/hlmerscher/hack-toolchain-go/logger"
	"github.com/hlmerscher/hack-toolchain-go/onerror"
	"github.com/hlmerscher/hack-toolchain-go/writer"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: assembler <file.asm>")
		os.Exit(1)
	}
	logger.Toggle(os.Getenv("VERBOSE") != "")

	onerror.Log(assemble(os.Args[1]))
}

func assemble(filename string) error {
	fmt.Printf("input:\t%s\n", filename)

	source, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer source.Close()

	out := new(bytes.Buffer)
	if err := assembler.Assemble(source, out); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	outputFilename := writer.OutputPath(filename, ".hack")
	fmt.Printf("output:\t%s\n", outputFilename)

	return writer.Save(outputFilename, out.Bytes())
}
