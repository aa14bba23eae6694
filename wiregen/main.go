// mockwire/wiregen generates typed wiring helpers for test targets.
// To use it, install it with `go install github.com/toejough/mockwire/wiregen@latest`
// and in your test files, add a `//go:generate wiregen <StructName>` comment for the struct under test. The
// generated helper will be named wire<StructName> by default; add a `--name <helpername>` flag to override it. The
// helper is written to generated_<helpername>_test.go in the same package as the file containing the `//go:generate`
// comment, and wires a pool of doubles into the target via mockwire.MustInject.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/mockwire/wiregen/run"
)

// main is the entry point of the wiregen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
