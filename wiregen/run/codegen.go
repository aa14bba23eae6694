package run

import (
	"fmt"
	"strings"
)

// generateHelperCode renders the wiring helper source for a target struct.
//
// The helper takes one typed parameter per injectable field, pools each under
// its field name so the resolver can disambiguate same-typed doubles, and
// commits via MustInject so failures surface as test setup failures.
func generateHelperCode(target targetStruct, info generatorInfo) (string, error) {
	if info.pkgName == "" {
		return "", fmt.Errorf("%w: GOPACKAGE not set", ErrNotGoGenerate)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by wiregen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", info.pkgName)
	fmt.Fprintf(&b, "import (\n\t\"github.com/toejough/mockwire\"\n)\n\n")

	fmt.Fprintf(&b, "// %s wires the given doubles into target and reports the per-slot outcome.\n", info.helperName)
	fmt.Fprintf(&b, "// Fatal injection errors fail the test via t.\n")
	fmt.Fprintf(&b, "func %s(\n", info.helperName)
	fmt.Fprintf(&b, "\tt mockwire.TestReporter,\n")
	fmt.Fprintf(&b, "\ttarget *%s,\n", target.name)

	for _, slot := range target.slots {
		fmt.Fprintf(&b, "\t%s %s,\n", slot.name, slot.typeExpr)
	}

	fmt.Fprintf(&b, "\topts ...mockwire.Option,\n")
	fmt.Fprintf(&b, ") *mockwire.Report {\n")
	fmt.Fprintf(&b, "\tt.Helper()\n\n")
	fmt.Fprintf(&b, "\tpool := mockwire.NewPool()\n")

	for _, slot := range target.slots {
		fmt.Fprintf(&b, "\tpool.AddNamed(%q, %s)\n", slot.name, slot.name)
	}

	fmt.Fprintf(&b, "\n\treturn mockwire.MustInject(t, target, pool, opts...)\n")
	fmt.Fprintf(&b, "}\n")

	return b.String(), nil
}
