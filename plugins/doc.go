// Package plugins hosts plugin implementation subpackages. It contains no
// runtime code; the architecture test beside it checks every subpackage.
package plugins
