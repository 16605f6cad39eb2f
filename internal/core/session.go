package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"badrefining/internal/ledger"
	"badrefining/pkg/domain"
)

var (
	// ErrAlreadyLoaded is returned by a second Load on the same session.
	ErrAlreadyLoaded = errors.New("session already loaded")
	// ErrNotLoaded is returned by Unload before Load.
	ErrNotLoaded = errors.New("session not loaded")
	// ErrAlreadyUnloaded is returned by Load or Unload after Unload.
	ErrAlreadyUnloaded = errors.New("session already unloaded")
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateLoaded
	stateUnloaded
)

// Session applies the registered patches to a definition registry on Load and
// reverts every recorded change on Unload. A session is single use.
type Session struct {
	id           string
	registry     DefinitionRegistry
	store        SettingsStore
	settingsName string
	defaults     Settings
	engine       *PatchEngine
	plugins      map[string]PluginMetadata

	logger  Logger
	clock   Clock
	metrics MetricsRecorder
	tracer  Tracer

	mu       sync.Mutex
	state    sessionState
	settings Settings
	ledger   *ledger.Ledger
	report   LoadReport
}

// NewSession constructs a session over the supplied registry and settings
// store. Without WithPatchEngine the six built-in patch families run.
func NewSession(registry DefinitionRegistry, store SettingsStore, opts ...Option) *Session {
	s := &Session{
		id:           uuid.NewString(),
		registry:     registry,
		store:        store,
		settingsName: domain.SettingsFileName,
		defaults:     domain.DefaultSettings(),
		plugins:      make(map[string]PluginMetadata),
		logger:       noopLogger{},
		clock:        systemClock{},
		metrics:      noopMetrics{},
		tracer:       noopTracer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.engine == nil {
		s.engine = NewDefaultPatchEngine()
	}
	return s
}

// ID returns the session identifier attached to log lines.
func (s *Session) ID() string {
	return s.id
}

// InstallPlugin registers a plugin, appending its patches to the engine.
func (s *Session) InstallPlugin(plugin Plugin) (PluginMetadata, error) {
	if plugin == nil {
		return PluginMetadata{}, fmt.Errorf("plugin cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateIdle {
		return PluginMetadata{}, fmt.Errorf("install plugin %s: %w", plugin.Name(), ErrAlreadyLoaded)
	}
	if _, ok := s.plugins[plugin.Name()]; ok {
		return PluginMetadata{}, fmt.Errorf("plugin %s already registered", plugin.Name())
	}

	registry := NewPluginRegistry()
	if err := plugin.Register(registry); err != nil {
		return PluginMetadata{}, err
	}
	patches := registry.Patches()
	names := make([]string, 0, len(patches))
	for _, patch := range patches {
		s.engine.Register(patch)
		names = append(names, patch.Name())
	}

	meta := PluginMetadata{
		Name:    plugin.Name(),
		Version: plugin.Version(),
		Patches: names,
	}
	s.plugins[plugin.Name()] = meta
	return meta, nil
}

// RegisteredPlugins returns metadata describing installed plugins.
func (s *Session) RegisteredPlugins() []PluginMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PluginMetadata, 0, len(s.plugins))
	for _, meta := range s.plugins {
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Load resolves settings and runs every patch in order. Lookup failures are
// logged and reported without failing the load. A panicking setter propagates
// to the caller; entries recorded before it remain and are reverted by Unload.
func (s *Session) Load(ctx context.Context) (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case stateLoaded:
		return LoadReport{}, ErrAlreadyLoaded
	case stateUnloaded:
		return LoadReport{}, ErrAlreadyUnloaded
	}

	var report LoadReport
	err := s.run(ctx, "load", func(ctx context.Context) error {
		s.logger.Info("Setting up BadRefining mod...", "session", s.id)

		s.settings = LoadOrWriteDefault(ctx, s.store, s.settingsName, s.defaults, s.logger)
		s.ledger = ledger.New()
		s.state = stateLoaded

		pc := &PatchContext{
			Registry: s.registry,
			Settings: s.settings,
			Ledger:   s.ledger,
			Logger:   s.logger,
			observe:  s.run,
		}
		var err error
		report, err = s.engine.Apply(ctx, pc)
		s.report = report
		s.recordActive(s.ledger.Count())
		s.logger.Info(fmt.Sprintf("Made %d modifications", report.Modifications), "session", s.id)
		return err
	})
	return report, err
}

// Unload reverts every recorded modification in insertion order and returns
// how many were undone.
func (s *Session) Unload(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case stateIdle:
		return 0, ErrNotLoaded
	case stateUnloaded:
		return 0, ErrAlreadyUnloaded
	}

	var undone int
	err := s.run(ctx, "unload", func(context.Context) error {
		undone = s.ledger.UndoAll()
		s.state = stateUnloaded
		s.recordActive(0)
		s.logger.Info(fmt.Sprintf("Undid %d modifications", undone), "session", s.id)
		return nil
	})
	return undone, err
}

// Settings returns a copy of the settings resolved by Load.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// Modifications returns the number of ledger entries recorded by Load. The
// count is unchanged by Unload.
func (s *Session) Modifications() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return 0
	}
	return s.ledger.Count()
}

// Report returns the report produced by the last Load.
func (s *Session) Report() LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

func (s *Session) recordActive(n int) {
	if rec, ok := s.metrics.(ModificationsRecorder); ok {
		rec.SetActiveModifications(n)
	}
}

func (s *Session) run(ctx context.Context, operation string, fn func(context.Context) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, operation)
	started := s.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			panicErr := fmt.Errorf("%s panicked: %v", operation, r)
			span.End(panicErr)
			s.metrics.Observe(ctx, operation, false, s.clock.Now().Sub(started))
			panic(r)
		}
		span.End(err)
		s.metrics.Observe(ctx, operation, err == nil, s.clock.Now().Sub(started))
	}()
	return fn(ctx)
}
