package run

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toejough/go-reorder"
)

// ErrNotGoGenerate is returned when the go:generate environment is missing.
var ErrNotGoGenerate = errors.New("wiregen must run under go generate")

// writeGeneratedCode writes the helper to generated_<helperName>.go, with a
// _test suffix when the generate comment lives in a test file or package, so
// the helper stays out of the production build.
func writeGeneratedCode(code string, info generatorInfo, fileSys FileSystem) error {
	const generatedFilePermissions = 0o600

	filename := "generated_" + info.helperName

	isTestFile := strings.HasSuffix(info.pkgName, "_test") || strings.HasSuffix(info.goFile, "_test.go")
	if isTestFile && !strings.HasSuffix(filename, "_test") {
		filename += "_test.go"
	} else {
		filename += ".go"
	}

	// Reorder declarations according to project conventions
	reordered, err := reorder.Source(code)
	if err != nil {
		fmt.Printf("Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileSys.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	fmt.Printf("%s written successfully.\n", filename)

	return nil
}
