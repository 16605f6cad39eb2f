package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"badrefining/internal/blob/core"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	meta := map[string]string{"codec": "yaml"}
	if _, err := s.Put(ctx, "a/Settings.yaml", bytes.NewReader([]byte("hello")), core.PutOptions{Metadata: meta}); err != nil {
		t.Fatalf("put: %v", err)
	}
	meta["codec"] = "mutated"
	if _, err := s.Put(ctx, "a/Settings.yaml", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := s.Put(ctx, "", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	info, rc, err := s.Get(ctx, "a/Settings.yaml")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	if string(body) != "hello" || info.Metadata["codec"] != "yaml" || info.ETag == "" {
		t.Fatalf("unexpected blob %+v %q", info, body)
	}
	info.Metadata["codec"] = "changed"
	if head, _ := s.Head(ctx, "a/Settings.yaml"); head.Metadata["codec"] != "yaml" {
		t.Fatalf("metadata must be copied on read")
	}

	if _, err := s.Put(ctx, "b/other", bytes.NewReader(nil), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	list, _ := s.List(ctx, "a/")
	if len(list) != 1 || list[0].Key != "a/Settings.yaml" {
		t.Fatalf("unexpected list %+v", list)
	}
	all, _ := s.List(ctx, "")
	if len(all) != 2 || all[0].Key != "a/Settings.yaml" {
		t.Fatalf("expected sorted list of two, got %+v", all)
	}

	if ok, _ := s.Delete(ctx, "a/Settings.yaml"); !ok {
		t.Fatalf("expected delete to report existing key")
	}
	if ok, _ := s.Delete(ctx, "a/Settings.yaml"); ok {
		t.Fatalf("expected delete of missing key to report false")
	}
	if _, _, err := s.Get(ctx, "a/Settings.yaml"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Head(ctx, "a/Settings.yaml"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.Put(ctx, "Settings.json", bytes.NewReader([]byte("{}")), core.PutOptions{ContentType: "application/json"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	info, err := s.Put(ctx, "Settings.json", bytes.NewReader([]byte(`{"a":1}`)), core.PutOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if info.Size != 7 || info.ContentType != "" {
		t.Fatalf("overwrite must replace content and options, got %+v", info)
	}
}
