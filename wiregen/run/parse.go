package run

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// targetStruct is the injectable surface of the struct under test, as parsed
// from source.
type targetStruct struct {
	name  string
	slots []sourceSlot
}

// sourceSlot is one injectable field: its name and the source text of its
// type.
type sourceSlot struct {
	name     string
	typeExpr string
}

// Sentinel errors.
var (
	// ErrStructNotFound is returned when no struct type declaration matches
	// the requested name in the package.
	ErrStructNotFound = errors.New("struct not found in package")

	// ErrNoInjectableFields is returned when the struct has no fields a
	// wiring helper could accept.
	ErrNoInjectableFields = errors.New("struct has no injectable fields")

	// errUnsupportedType is returned for field type expressions the generator
	// cannot render back to source.
	errUnsupportedType = errors.New("unsupported field type expression")
)

// parsePackageDir parses all non-generated Go files in dir with DST.
// No type checking: syntax is enough to find the struct and its field types.
func parsePackageDir(dir string) ([]*dst.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []*dst.File

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasPrefix(name, "generated_") {
			continue
		}

		src, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", name, err)
		}

		file, err := decorator.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		files = append(files, file)
	}

	return files, nil
}

// findTargetStruct locates the named struct declaration and collects its
// injectable fields: named, non-embedded, and not tagged `wire:"-"`.
func findTargetStruct(files []*dst.File, name string) (targetStruct, error) {
	for _, file := range files {
		structType := structDecl(file, name)
		if structType == nil {
			continue
		}

		slots, err := injectableFields(structType)
		if err != nil {
			return targetStruct{}, err
		}

		if len(slots) == 0 {
			return targetStruct{}, fmt.Errorf("%w: %s", ErrNoInjectableFields, name)
		}

		return targetStruct{name: name, slots: slots}, nil
	}

	return targetStruct{}, fmt.Errorf("%w: %s", ErrStructNotFound, name)
}

// structDecl finds the struct type spec with the given name in a file.
func structDecl(file *dst.File, name string) *dst.StructType {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*dst.GenDecl)
		if !ok {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*dst.TypeSpec)
			if !ok || typeSpec.Name.Name != name {
				continue
			}

			if structType, ok := typeSpec.Type.(*dst.StructType); ok {
				return structType
			}
		}
	}

	return nil
}

// injectableFields collects the struct's own named fields, skipping embeds
// and fields tagged out with `wire:"-"`.
func injectableFields(structType *dst.StructType) ([]sourceSlot, error) {
	var slots []sourceSlot

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			// Embedded; the runtime engine walks these, the helper does not.
			continue
		}

		if fieldExcluded(field) {
			continue
		}

		typeExpr, err := typeString(field.Type)
		if err != nil {
			return nil, err
		}

		for _, fieldName := range field.Names {
			slots = append(slots, sourceSlot{name: fieldName.Name, typeExpr: typeExpr})
		}
	}

	return slots, nil
}

// fieldExcluded reports whether the field's tag opts out with wire:"-".
func fieldExcluded(field *dst.Field) bool {
	if field.Tag == nil {
		return false
	}

	raw := strings.Trim(field.Tag.Value, "`")

	return reflect.StructTag(raw).Get("wire") == "-"
}

// typeString renders a field type expression back to source text. Covers the
// shapes doubles take in practice: named types, pointers, selectors, slices,
// maps, and interfaces referenced by name.
func typeString(expr dst.Expr) (string, error) {
	switch t := expr.(type) {
	case *dst.Ident:
		return t.Name, nil
	case *dst.StarExpr:
		inner, err := typeString(t.X)
		if err != nil {
			return "", err
		}

		return "*" + inner, nil
	case *dst.SelectorExpr:
		pkg, err := typeString(t.X)
		if err != nil {
			return "", err
		}

		return pkg + "." + t.Sel.Name, nil
	case *dst.ArrayType:
		if t.Len != nil {
			return "", fmt.Errorf("%w: fixed-size array", errUnsupportedType)
		}

		elem, err := typeString(t.Elt)
		if err != nil {
			return "", err
		}

		return "[]" + elem, nil
	case *dst.MapType:
		key, err := typeString(t.Key)
		if err != nil {
			return "", err
		}

		value, err := typeString(t.Value)
		if err != nil {
			return "", err
		}

		return "map[" + key + "]" + value, nil
	default:
		return "", fmt.Errorf("%w: %T", errUnsupportedType, expr)
	}
}
