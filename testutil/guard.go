// Package testutil holds the import guard shared by the architecture tests.
// Layering in this module is simple: pkg/domain is imported by everyone,
// internal/core sees only domain and ledger, plugins see only core, and
// storage backends stay behind internal/blob and internal/settings.
package testutil

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Rule forbids a class of imports for the package under test.
type Rule struct {
	Reason string
	Forbid func(importPath string) bool
}

// Violation is one forbidden import found in a source file.
type Violation struct {
	File   string
	Import string
}

func (v Violation) String() string { return v.File + ": " + v.Import }

// AssertNoDirectImports parses every non-test .go file in dir and fails the
// test when an import breaks rule. Build tags are not evaluated.
func AssertNoDirectImports(t testing.TB, dir string, rule Rule) {
	t.Helper()
	found, err := Scan(dir, rule)
	if err != nil {
		t.Fatalf("scan %s: %v", dir, err)
	}
	report(t, rule, found)
}

// Scan returns the violations of rule in dir, ordered by file then import.
func Scan(dir string, rule Rule) ([]Violation, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var found []Violation
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		for _, imp := range file.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			if rule.Forbid(path) {
				found = append(found, Violation{File: name, Import: path})
			}
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].File != found[j].File {
			return found[i].File < found[j].File
		}
		return found[i].Import < found[j].Import
	})
	return found, nil
}

// Internal matches any import under an internal/ directory.
func Internal(path string) bool {
	return strings.Contains(path, "/internal/")
}

// Infra matches the concrete storage backends.
func Infra(path string) bool {
	return strings.Contains(path, "/internal/infra/")
}

// Packages matches imports of the named module-relative packages, e.g.
// Packages("internal/settings").
func Packages(rel ...string) func(string) bool {
	return func(path string) bool {
		for _, r := range rel {
			if strings.HasSuffix(path, "/"+r) {
				return true
			}
		}
		return false
	}
}

// AnyOf matches when any predicate does.
func AnyOf(preds ...func(string) bool) func(string) bool {
	return func(path string) bool {
		for _, p := range preds {
			if p(path) {
				return true
			}
		}
		return false
	}
}

type fatalf interface {
	Fatalf(format string, args ...any)
}

func report(t fatalf, rule Rule, found []Violation) {
	if len(found) == 0 {
		return
	}
	lines := make([]string, len(found))
	for i, v := range found {
		lines[i] = "  " + v.String()
	}
	t.Fatalf("%s:\n%s", rule.Reason, strings.Join(lines, "\n"))
}
