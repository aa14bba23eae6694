//nolint:testpackage // Tests internal code generation
package run

import (
	"os"
	"testing"

	"github.com/akedrou/textdiff"
	. "github.com/onsi/gomega"
)

const goldenHelper = `// Code generated by wiregen. DO NOT EDIT.

package calc

import (
	"github.com/toejough/mockwire"
)

// wireArticleCalculator wires the given doubles into target and reports the per-slot outcome.
// Fatal injection errors fail the test via t.
func wireArticleCalculator(
	t mockwire.TestReporter,
	target *ArticleCalculator,
	computer *Computer,
	registry map[string]*Computer,
	opts ...mockwire.Option,
) *mockwire.Report {
	t.Helper()

	pool := mockwire.NewPool()
	pool.AddNamed("computer", computer)
	pool.AddNamed("registry", registry)

	return mockwire.MustInject(t, target, pool, opts...)
}
`

// TestGenerateHelperCode_Golden pins the generated helper source exactly.
func TestGenerateHelperCode_Golden(t *testing.T) {
	t.Parallel()

	target := targetStruct{
		name: "ArticleCalculator",
		slots: []sourceSlot{
			{name: "computer", typeExpr: "*Computer"},
			{name: "registry", typeExpr: "map[string]*Computer"},
		},
	}

	info := generatorInfo{pkgName: "calc", structName: "ArticleCalculator", helperName: "wireArticleCalculator"}

	code, err := generateHelperCode(target, info)
	if err != nil {
		t.Fatalf("generateHelperCode failed: %v", err)
	}

	if code != goldenHelper {
		t.Fatalf("generated helper drifted from golden:\n%s",
			textdiff.Unified("golden", "generated", goldenHelper, code))
	}
}

// TestGenerateHelperCode_RequiresGoGenerateEnv errors without GOPACKAGE.
func TestGenerateHelperCode_RequiresGoGenerateEnv(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := generateHelperCode(targetStruct{name: "X"}, generatorInfo{})

	g.Expect(err).To(MatchError(ErrNotGoGenerate))
}

// TestWriteGeneratedCode_TestFileNaming proves helpers generated from test
// files land in _test.go files.
func TestWriteGeneratedCode_TestFileNaming(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := &capturingFileSystem{}
	info := generatorInfo{pkgName: "calc", helperName: "wireArticleCalculator", goFile: "calc_test.go"}

	g.Expect(writeGeneratedCode(goldenHelper, info, fs)).To(Succeed())
	g.Expect(fs.name).To(Equal("generated_wireArticleCalculator_test.go"))
	g.Expect(string(fs.data)).To(ContainSubstring("func wireArticleCalculator("))
}

// TestWriteGeneratedCode_PlainFileNaming proves non-test generate comments
// produce a regular .go file.
func TestWriteGeneratedCode_PlainFileNaming(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := &capturingFileSystem{}
	info := generatorInfo{pkgName: "calc", helperName: "wireArticleCalculator", goFile: "calc.go"}

	g.Expect(writeGeneratedCode(goldenHelper, info, fs)).To(Succeed())
	g.Expect(fs.name).To(Equal("generated_wireArticleCalculator.go"))
}

// capturingFileSystem records the single write it receives.
type capturingFileSystem struct {
	name string
	data []byte
}

func (fs *capturingFileSystem) WriteFile(name string, data []byte, _ os.FileMode) error {
	fs.name = name
	fs.data = data

	return nil
}
