package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hlmerscher/hack-toolchain-go/logger"
	"github.com/hlmerscher/hack-toolchain-go/onerror"
	"github.com/hlmerscher/hack-toolchain-go/translator"
	"github.com/hlmerscher/hack-toolchain-go/writer"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: vmtranslator <file.vm | directory>")
		os.Exit(1)
	}
	logger.Toggle(os.Getenv("VERBOSE") != "")

	path := os.Args[1]
	info, err := os.Stat(path)
	onerror.Log(err)

	if info.IsDir() {
		onerror.Log(translateDir(path))
	} else {
		onerror.Log(translateFile(path))
	}
}

func translateFile(filename string) error {
	out := new(bytes.Buffer)
	cw := translator.NewCodeWriter(out)

	if err := translate(cw, filename); err != nil {
		return err
	}

	return save(writer.OutputPath(filename, ".asm"), out)
}

// translateDir aggregates every .vm file in the directory into one output,
// prefixed with the bootstrap that calls Sys.init.
func translateDir(dirname string) error {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return err
	}

	out := new(bytes.Buffer)
	cw := translator.NewCodeWriter(out)
	if err := cw.WriteBootstrap(); err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".vm") {
			continue
		}
		if err := translate(cw, filepath.Join(dirname, entry.Name())); err != nil {
			return err
		}
	}

	return save(writer.DirOutputPath(dirname, ".asm"), out)
}

func translate(cw *translator.CodeWriter, filename string) error {
	fmt.Printf("input:\t%s\n", filename)

	source, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer source.Close()

	commands, err := translator.Parse(source)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	cw.SetFileName(writer.Basename(filename))
	if err := cw.Translate(commands); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	return nil
}

func save(outputFilename string, out *bytes.Buffer) error {
	fmt.Printf("output:\t%s\n", outputFilename)
	return writer.Save(outputFilename, out.Bytes())
}
