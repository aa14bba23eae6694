//go:build targ

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/sh"
)

// Build builds the local wiregen binary.
func Build() error {
	fmt.Println("Building wiregen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/wiregen", "./wiregen")
}

// Check runs all checks & fixes on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,         // clean up the module dependencies
		FixImports,   // fix imports before anything that parses the tree
		CheckReorder, // linter will yell about declaration order if not correct
		Test,         // does the engine actually work?
		Lint,
	)
}

// CheckReorder reports files whose declarations are out of order.
func CheckReorder() error {
	fmt.Println("Checking declaration order...")

	filesProcessed := 0
	outOfOrderFiles := 0

	err := filepath.WalkDir(".", func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		name := entry.Name()
		if entry.IsDir() {
			if name == "bin" || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(name, ".go") || strings.HasPrefix(name, "generated_") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", path, err)

			return nil
		}

		filesProcessed++

		if string(content) != reordered {
			outOfOrderFiles++

			diff := textdiff.Unified(path+" (current)", path+" (reordered)", string(content), reordered)
			if diff != "" {
				fmt.Printf("\n%s\n", diff)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if outOfOrderFiles > 0 {
		return fmt.Errorf("%d file(s) need reordering (out of %d processed)", outOfOrderFiles, filesProcessed)
	}

	fmt.Printf("All files are correctly ordered (%d files processed).\n", filesProcessed)

	return nil
}

// FixImports formats the tree and fixes import blocks.
func FixImports() error {
	fmt.Println("Fixing imports...")

	return sh.Run("go", "run", "golang.org/x/tools/cmd/goimports@latest", "-w", ".")
}

// Generate regenerates the wiregen helpers.
func Generate() error {
	fmt.Println("Generating wire helpers...")

	if err := targ.Deps(Build); err != nil {
		return err
	}

	return sh.Run("go", "generate", "./...")
}

// Lint runs the linters.
func Lint() error {
	fmt.Println("Linting...")

	return sh.Run("golangci-lint", "run", "./...")
}

// Mutate runs the mutation tests. Slow; not part of Check.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(Test); err != nil {
		return err
	}

	return sh.Run("go", "test", "-tags=mutation", "-timeout=30m", "./dev")
}

// Test runs the unit tests.
//
// The catalog cache and shared-storage scenarios are the interesting cases
// under -race, so it is always on.
func Test() error {
	fmt.Println("Running unit tests...")

	return sh.Run(
		"go",
		"test",
		"-timeout=2m",
		"-race",
		"-count=1",
		"./...",
	)
}

// Tidy cleans up the module dependencies.
func Tidy() error {
	fmt.Println("Tidying module...")

	return sh.Run("go", "mod", "tidy")
}
