// Package blob is the entry point to blob storage. Callers depend on Store
// and obtain implementations through Open or the New* constructors.
package blob

import (
	"badrefining/internal/blob/core"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory driver.
	DriverMemory = core.DriverMemory
)

var (
	// ErrNotFound is wrapped by every backend for missing keys.
	ErrNotFound = core.ErrNotFound
	// ErrExists is wrapped by Put for existing keys.
	ErrExists = core.ErrExists
	// ErrInvalidKey is wrapped for keys a backend refuses.
	ErrInvalidKey = core.ErrInvalidKey
)
