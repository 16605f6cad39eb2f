package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingFatal struct {
	msg string
}

func (r *recordingFatal) Fatalf(format string, args ...any) {
	r.msg = fmt.Sprintf(format, args...)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestScanFindsForbiddenImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package p\n\nimport (\n\t\"fmt\"\n\t\"badrefining/internal/infra/blob/fs\"\n)\n\nvar _ = fmt.Sprint\nvar _ = fs.New\n")
	writeFile(t, dir, "b.go", "package p\n\nimport \"badrefining/internal/settings\"\n")
	writeFile(t, dir, "c_test.go", "package p\n\nimport \"badrefining/internal/infra/blob/s3\"\n")
	writeFile(t, dir, "notes.txt", "import \"badrefining/internal/infra\"")

	found, err := Scan(dir, Rule{Forbid: Infra})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []Violation{{File: "a.go", Import: "badrefining/internal/infra/blob/fs"}}
	if diff := cmp.Diff(want, found); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	found, err = Scan(dir, Rule{Forbid: AnyOf(Infra, Packages("internal/settings", "internal/registry"))})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(found) != 2 || found[1].File != "b.go" {
		t.Fatalf("expected two ordered violations, got %v", found)
	}
	if found, _ := Scan(dir, Rule{Forbid: Packages("settings")}); len(found) != 1 {
		t.Fatalf("expected suffix match on last element, got %v", found)
	}
}

func TestScanErrors(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing"), Rule{Forbid: Internal}); err == nil {
		t.Fatalf("expected missing dir error")
	}
	dir := t.TempDir()
	writeFile(t, dir, "bad.go", "package p\nimport (")
	if _, err := Scan(dir, Rule{Forbid: Internal}); err == nil || !strings.Contains(err.Error(), "bad.go") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestReport(t *testing.T) {
	rec := &recordingFatal{}
	rule := Rule{Reason: "domain stays pure", Forbid: Internal}
	report(rec, rule, nil)
	if rec.msg != "" {
		t.Fatalf("expected no failure, got %q", rec.msg)
	}
	report(rec, rule, []Violation{{File: "a.go", Import: "x/internal/y"}})
	if !strings.HasPrefix(rec.msg, "domain stays pure:") || !strings.Contains(rec.msg, "a.go: x/internal/y") {
		t.Fatalf("unexpected message %q", rec.msg)
	}
}
