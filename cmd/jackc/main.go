package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hlmerscher/hack-toolchain-go/analyzer"
	"github.com/hlmerscher/hack-toolchain-go/logger"
	"github.com/hlmerscher/hack-toolchain-go/onerror"
	"github.com/hlmerscher/hack-toolchain-go/writer"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: jackc <file.jack | directory>")
		os.Exit(1)
	}
	logger.Toggle(os.Getenv("VERBOSE") != "")

	path := os.Args[1]
	info, err := os.Stat(path)
	onerror.Log(err)

	if info.IsDir() {
		for _, filename := range jackFilenames(path) {
			onerror.Log(compileFile(filename))
		}
	} else {
		onerror.Log(compileFile(path))
	}
}

func jackFilenames(dirname string) []string {
	entries, err := os.ReadDir(dirname)
	onerror.Logf(dirname, err)

	filenames := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jack") {
			continue
		}
		filenames = append(filenames, filepath.Join(dirname, entry.Name()))
	}

	return filenames
}

func compileFile(filename string) error {
	fmt.Printf("input:\t%s\n", filename)

	source, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer source.Close()

	out := new(bytes.Buffer)
	if err := analyzer.Compile(writer.Basename(filename), source, out); err != nil {
		return err
	}

	outputFilename := writer.OutputPath(filename, ".vm")
	fmt.Printf("output:\t%s\n", outputFilename)

	return writer.Save(outputFilename, out.Bytes())
}
