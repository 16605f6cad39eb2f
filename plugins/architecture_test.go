package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"badrefining/testutil"
)

// TestPluginsOnlyUseCore walks every plugin subpackage. Plugins contribute
// patches through core and must not reach storage, settings or catalogs.
func TestPluginsOnlyUseCore(t *testing.T) {
	forbidden := testutil.AnyOf(testutil.Infra, testutil.Packages("internal/settings", "internal/registry", "internal/blob"))
	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("read plugins dir: %v", err)
	}
	checked := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		testutil.AssertNoDirectImports(t, filepath.Join(".", e.Name()), testutil.Rule{
			Reason: "plugin " + e.Name() + " must depend on core only",
			Forbid: forbidden,
		})
		checked++
	}
	if checked == 0 {
		t.Fatalf("expected at least one plugin package")
	}
}
