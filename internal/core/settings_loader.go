package core

import "context"

// LoadOrWriteDefault resolves the settings for a session. A missing resource
// is created from defaults and the value returned by Save is used. A present
// resource is decoded; when decoding fails the error is logged and the zero
// Settings value is returned, so every factor is 0 for that session.
//
// A failing existence check is logged and treated as present, which routes the
// call through Load and its zero-value fallback.
func LoadOrWriteDefault(ctx context.Context, store SettingsStore, name string, defaults Settings, logger Logger) Settings {
	if logger == nil {
		logger = noopLogger{}
	}

	exists, err := store.Exists(ctx, name)
	if err != nil {
		logger.Error("Failed to check settings", "name", name, "error", err)
		exists = true
	}

	if !exists {
		logger.Info("Configuration file not found. Using default configuration instead", "name", name)
		saved, err := store.Save(ctx, defaults.Clone(), name)
		if err != nil {
			logger.Error("Failed to write default settings", "name", name, "error", err)
		}
		return saved
	}

	loaded, err := store.Load(ctx, name)
	if err != nil {
		logger.Error("Failed to load settings", "name", name, "error", err)
		return Settings{}
	}
	return loaded
}
