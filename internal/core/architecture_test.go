package core

import (
	"testing"

	"badrefining/testutil"
)

func TestCoreDependsOnContractsOnly(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.Rule{
		Reason: "core reaches storage and catalogs through domain interfaces",
		Forbid: testutil.AnyOf(testutil.Infra, testutil.Packages("internal/settings", "internal/registry", "internal/blob")),
	})
}
