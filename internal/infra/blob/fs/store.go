// Package fs keeps blobs as plain files under a directory, so a settings
// resource can be edited by hand between sessions.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"badrefining/internal/blob/core"
)

// DefaultRoot is used when New is given an empty root.
const DefaultRoot = "./settings"

const sidecarSuffix = ".meta"

// Store implements core.Store on a directory. Next to each blob sits a JSON
// sidecar (key + ".meta") with its content type, metadata and checksum. A
// file placed by hand without a sidecar is still a blob: its size and mtime
// come from the file itself and it carries no ETag. Writers to the same key
// are not coordinated beyond the final rename.
type Store struct {
	root string
}

// New returns a store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = DefaultRoot
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Driver implements core.Store.
func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

type sidecar struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	SHA256      string            `json:"sha256"`
	Size        int64             `json:"size"`
	Written     time.Time         `json:"written"`
}

func (m sidecar) info(key string) core.Info {
	return core.Info{
		Key:          key,
		Size:         m.Size,
		ContentType:  m.ContentType,
		ETag:         m.SHA256,
		Metadata:     core.CloneMetadata(m.Metadata),
		LastModified: m.Written,
	}
}

// paths resolves key to its data file and sidecar.
func (s *Store) paths(key string) (data, meta string, err error) {
	if err := core.ValidateKey(key); err != nil {
		return "", "", err
	}
	if strings.HasSuffix(key, sidecarSuffix) {
		return "", "", fmt.Errorf("key %q uses reserved suffix %s: %w", key, sidecarSuffix, core.ErrInvalidKey)
	}
	data = filepath.Join(s.root, filepath.FromSlash(key))
	return data, data + sidecarSuffix, nil
}

// Put implements core.Store. The body is staged in a temp file next to the
// target and renamed into place, then the sidecar is replaced the same way.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	data, meta, err := s.paths(key)
	if err != nil {
		return core.Info{}, err
	}
	if !opts.Overwrite {
		if _, err := os.Lstat(data); err == nil {
			return core.Info{}, fmt.Errorf("blob %s: %w", key, core.ErrExists)
		}
	}
	if err := os.MkdirAll(filepath.Dir(data), 0o755); err != nil {
		return core.Info{}, err
	}

	h := sha256.New()
	var size int64
	err = replaceFile(data, func(w io.Writer) error {
		n, err := io.Copy(io.MultiWriter(w, h), r)
		size = n
		return err
	})
	if err != nil {
		return core.Info{}, fmt.Errorf("write blob %s: %w", key, err)
	}

	sc := sidecar{
		ContentType: opts.ContentType,
		Metadata:    core.CloneMetadata(opts.Metadata),
		SHA256:      hex.EncodeToString(h.Sum(nil)),
		Size:        size,
		Written:     time.Now().UTC(),
	}
	if err := writeSidecar(meta, sc); err != nil {
		return core.Info{}, fmt.Errorf("write sidecar %s: %w", key, err)
	}
	return sc.info(key), nil
}

// Get implements core.Store.
func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	data, meta, err := s.paths(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	info, err := describe(key, data, meta)
	if err != nil {
		return core.Info{}, nil, err
	}
	f, err := os.Open(data)
	if err != nil {
		return core.Info{}, nil, missing(key, err)
	}
	return info, f, nil
}

// Head implements core.Store.
func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	data, meta, err := s.paths(key)
	if err != nil {
		return core.Info{}, err
	}
	return describe(key, data, meta)
}

// describe reads the sidecar of key, falling back to the bare data file.
func describe(key, data, meta string) (core.Info, error) {
	sc, err := readSidecar(meta)
	if err == nil {
		return sc.info(key), nil
	}
	if !errors.Is(err, iofs.ErrNotExist) {
		return core.Info{}, err
	}
	fi, err := os.Stat(data)
	if err != nil {
		return core.Info{}, missing(key, err)
	}
	if fi.IsDir() {
		return core.Info{}, fmt.Errorf("blob %s: %w", key, core.ErrNotFound)
	}
	return bareInfo(key, fi), nil
}

func bareInfo(key string, fi iofs.FileInfo) core.Info {
	return core.Info{Key: key, Size: fi.Size(), LastModified: fi.ModTime().UTC()}
}

// Delete implements core.Store.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	data, meta, err := s.paths(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(data); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := os.Remove(meta); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return true, err
	}
	return true, nil
}

// List implements core.Store. Data files are reported with or without a
// sidecar; staging temp files and orphaned sidecars are skipped.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	var infos []core.Info
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, sidecarSuffix) || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		sc, err := readSidecar(path + sidecarSuffix)
		switch {
		case err == nil:
			infos = append(infos, sc.info(key))
		case errors.Is(err, iofs.ErrNotExist):
			fi, err := d.Info()
			if err != nil {
				return err
			}
			infos = append(infos, bareInfo(key, fi))
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// replaceFile writes path through a synced temp file and a rename.
func replaceFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	err = write(tmp)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeSidecar(path string, sc sidecar) error {
	b, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	return replaceFile(path, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

func readSidecar(path string) (sidecar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return sidecar{}, err
	}
	var sc sidecar
	if err := json.Unmarshal(b, &sc); err != nil {
		return sidecar{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return sc, nil
}

func missing(key string, err error) error {
	if errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("blob %s: %w", key, core.ErrNotFound)
	}
	return err
}
