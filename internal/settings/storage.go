package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"badrefining/internal/blob"
)

// MaxSettingsSize bounds the payload read from any storage backend.
const MaxSettingsSize = 1 << 20

// Storage reads and writes raw settings payloads by resource name.
// The sqlite and postgres resource stores satisfy it directly.
type Storage interface {
	Exists(ctx context.Context, name string) (bool, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// BlobStorage adapts a blob.Store to Storage.
type BlobStorage struct {
	store blob.Store
}

// NewBlobStorage wraps store.
func NewBlobStorage(store blob.Store) *BlobStorage {
	return &BlobStorage{store: store}
}

// Blob returns the wrapped blob store.
func (b *BlobStorage) Blob() blob.Store { return b.store }

// Exists reports whether the object is present.
func (b *BlobStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := b.store.Head(ctx, name)
	switch {
	case errors.Is(err, blob.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Read returns the object body.
func (b *BlobStorage) Read(ctx context.Context, name string) ([]byte, error) {
	_, rc, err := b.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(io.LimitReader(rc, MaxSettingsSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSettingsSize {
		return nil, fmt.Errorf("settings %s exceeds %d bytes", name, MaxSettingsSize)
	}
	return data, nil
}

// Write replaces the object with data in a single overwriting Put.
func (b *BlobStorage) Write(ctx context.Context, name string, data []byte) error {
	opts := blob.PutOptions{
		Overwrite: true,
		Metadata:  map[string]string{"writer": "badrefining"},
	}
	if codec, err := CodecFor(name); err == nil {
		opts.ContentType = codec.ContentType()
		opts.Metadata["codec"] = codec.Name()
	}
	_, err := b.store.Put(ctx, name, bytes.NewReader(data), opts)
	return err
}
