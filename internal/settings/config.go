package settings

import (
	"context"
	"fmt"

	"badrefining/internal/blob"
	"badrefining/internal/config"
	"badrefining/internal/infra/persistence/postgres"
	"badrefining/internal/infra/persistence/sqlite"
	"badrefining/pkg/domain"
)

// EnvPrefix prefixes every StorageConfig environment variable.
const EnvPrefix = "BADREFINING_SETTINGS_"

// Driver identifies a settings storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"       // blob store on local disk
	DriverMemory     Driver = "memory"   // in-memory blob store (tests / dry runs)
	DriverS3         Driver = "s3"       // S3-compatible object storage
	DriverSQLite     Driver = "sqlite"   // resources table in an sqlite file
	DriverPostgres   Driver = "postgres" // resources table in PostgreSQL
)

// StorageConfig selects where the settings resource lives.
//
//	BADREFINING_SETTINGS_DRIVER: fs|memory|s3|sqlite|postgres (default fs)
//	BADREFINING_SETTINGS_NAME: resource name (default Settings.xml)
//	BADREFINING_SETTINGS_FS_ROOT: directory for the fs driver
//	BADREFINING_SETTINGS_S3_*: bucket, region, endpoint and credentials
//	BADREFINING_SETTINGS_SQLITE_PATH: sqlite file
//	BADREFINING_SETTINGS_POSTGRES_DSN: postgres DSN
type StorageConfig struct {
	Driver      Driver        `env:"DRIVER" envDefault:"fs"`
	Name        string        `env:"NAME" envDefault:"Settings.xml"`
	FSRoot      string        `env:"FS_ROOT" envDefault:"./settings"`
	S3          blob.S3Config `envPrefix:"S3_"`
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"badrefining.db"`
	PostgresDSN string        `env:"POSTGRES_DSN"`
}

// DefaultStorageConfig returns the configuration used when nothing is set.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:     DriverFilesystem,
		Name:       domain.SettingsFileName,
		FSRoot:     "./settings",
		SQLitePath: "badrefining.db",
	}
}

// StorageConfigFromEnv reads StorageConfig from BADREFINING_SETTINGS_* variables.
func StorageConfigFromEnv() (StorageConfig, error) {
	var cfg StorageConfig
	if err := config.ParseEnvPrefix(&cfg, EnvPrefix); err != nil {
		return StorageConfig{}, err
	}
	return cfg, nil
}

// OpenStorage constructs the backend named by cfg.Driver. The returned close
// function releases database handles and is safe to call for blob drivers.
func OpenStorage(ctx context.Context, cfg StorageConfig) (Storage, func() error, error) {
	noClose := func() error { return nil }
	switch cfg.Driver {
	case DriverFilesystem, DriverMemory, DriverS3, "":
		driver := blob.Driver(cfg.Driver)
		if driver == "" {
			driver = blob.DriverFilesystem
		}
		store, err := blob.Open(ctx, blob.Config{Driver: driver, FSRoot: cfg.FSRoot, S3: cfg.S3})
		if err != nil {
			return nil, nil, err
		}
		return NewBlobStorage(store), noClose, nil
	case DriverSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case DriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown settings storage driver %s", cfg.Driver)
	}
}
