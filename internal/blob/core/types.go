// Package core defines the blob storage abstractions shared by the backend
// implementations under internal/infra/blob.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverFilesystem stores blobs under a local directory.
	DriverFilesystem Driver = "fs"
	// DriverS3 stores blobs in an S3 or MinIO bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps blobs in process memory.
	DriverMemory Driver = "memory"
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
	// Overwrite replaces an existing blob in one step instead of failing
	// with ErrExists.
	Overwrite bool
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a minimal S3-like key/value blob store.
type Store interface {
	// Put stores a blob at key. Unless opts.Overwrite is set it fails with
	// ErrExists when the key is present.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get returns the blob contents; missing keys yield an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Head returns metadata only; missing keys yield an error wrapping ErrNotFound.
	Head(ctx context.Context, key string) (Info, error)
	// Delete removes a blob, reporting whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns blobs whose key has prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

var (
	// ErrNotFound is wrapped by every backend when a key is missing.
	ErrNotFound = errors.New("blob: not found")
	// ErrExists is wrapped by Put when the key is already present.
	ErrExists = errors.New("blob: already exists")
	// ErrInvalidKey is wrapped by every backend for keys it refuses to store.
	ErrInvalidKey = errors.New("blob: invalid key")
)

// ValidateKey rejects keys that are empty, absolute or climb out of the
// store with "..". Backends may add their own restrictions.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("empty key: %w", ErrInvalidKey)
	case strings.HasPrefix(key, "/"):
		return fmt.Errorf("absolute key %q: %w", key, ErrInvalidKey)
	case strings.Contains(key, ".."):
		return fmt.Errorf("key %q contains '..': %w", key, ErrInvalidKey)
	}
	return nil
}

// CloneMetadata copies a metadata map; nil stays nil.
func CloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
