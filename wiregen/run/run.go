// Package run implements the main logic for the wiregen tool in a testable way.
package run

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
)

// FileSystem interface for mocking.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Run executes the wiregen tool logic. It takes command-line arguments, an environment variable getter, and a
// FileSystem interface for file operations. On success it writes a Go source file containing a typed wiring helper
// for the requested struct, in the calling test package.
func Run(args []string, getEnv func(string) string, fileSys FileSystem) error {
	info, err := getGeneratorCallInfo(args, getEnv)
	if err != nil {
		return err
	}

	files, err := parsePackageDir(".")
	if err != nil {
		return err
	}

	target, err := findTargetStruct(files, info.structName)
	if err != nil {
		return err
	}

	code, err := generateHelperCode(target, info)
	if err != nil {
		return err
	}

	return writeGeneratedCode(code, info, fileSys)
}

// unexported types.

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Struct string `arg:"positional,required" help:"struct name to generate a wiring helper for"`
	Name   string `arg:"--name"              help:"name for the generated helper (defaults to wire<Struct>)"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	pkgName, structName, helperName, goFile string
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(args []string, getEnv func(string) string) (generatorInfo, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return generatorInfo{}, err
	}

	helperName := parsed.Name
	if helperName == "" {
		helperName = "wire" + parsed.Struct
	}

	return generatorInfo{
		pkgName:    getEnv("GOPACKAGE"),
		structName: parsed.Struct,
		helperName: helperName,
		goFile:     getEnv("GOFILE"),
	}, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}
