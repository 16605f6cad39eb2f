// Package settings persists the balance factors under a named resource.
package settings

import (
	"context"
	"fmt"

	"badrefining/internal/core"
	"badrefining/pkg/domain"
)

// IOError reports a failed settings operation on a named resource.
type IOError struct {
	Op   string
	Name string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("settings %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

var _ domain.SettingsStore = (*Store)(nil)

// Store encodes Settings with the codec matching the resource extension and
// keeps the payload in a Storage backend.
type Store struct {
	storage Storage
	logger  core.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store log lines to logger.
func WithLogger(logger core.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs a Store over storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, logger: core.NopLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Exists reports whether the named resource is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.storage.Exists(ctx, name)
	if err != nil {
		return false, &IOError{Op: "exists", Name: name, Err: err}
	}
	return ok, nil
}

// Load reads and decodes the named resource.
func (s *Store) Load(ctx context.Context, name string) (domain.Settings, error) {
	codec, err := CodecFor(name)
	if err != nil {
		return domain.Settings{}, &IOError{Op: "load", Name: name, Err: err}
	}
	data, err := s.storage.Read(ctx, name)
	if err != nil {
		return domain.Settings{}, &IOError{Op: "load", Name: name, Err: err}
	}
	out, err := codec.Decode(data)
	if err != nil {
		return domain.Settings{}, &IOError{Op: "load", Name: name, Err: err}
	}
	s.logger.Info("Loaded existing settings from file", "name", name)
	return out, nil
}

// Save encodes and writes settings. The input is returned unchanged whether or
// not the write succeeds.
func (s *Store) Save(ctx context.Context, settings domain.Settings, name string) (domain.Settings, error) {
	codec, err := CodecFor(name)
	if err != nil {
		return settings, &IOError{Op: "save", Name: name, Err: err}
	}
	data, err := codec.Encode(settings)
	if err != nil {
		return settings, &IOError{Op: "save", Name: name, Err: err}
	}
	if err := s.storage.Write(ctx, name, data); err != nil {
		return settings, &IOError{Op: "save", Name: name, Err: err}
	}
	s.logger.Info("Wrote settings", "name", name)
	return settings, nil
}
