// Command badrefining applies the balance patches to a definition catalog,
// reports what changed, and reverts them.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"badrefining/internal/core"
	"badrefining/internal/registry"
	"badrefining/internal/settings"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

type rootOptions struct {
	stdout io.Writer
	stderr io.Writer

	catalog  string
	logLevel string
	quiet    bool

	settingsDriver string
	settingsName   string
	settingsRoot   string
	settingsSQLite string

	storage settings.StorageConfig
	logger  *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "badrefining",
		Short:         "Make refining, power and oxygen production harder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.catalog, "catalog", "", "definition catalog YAML (default: built-in catalog)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress log output")
	flags.StringVar(&opts.settingsDriver, "settings-driver", "", "settings storage driver: fs|memory|s3|sqlite|postgres")
	flags.StringVar(&opts.settingsName, "settings-name", "", "settings resource name; the extension selects the format")
	flags.StringVar(&opts.settingsRoot, "settings-root", "", "settings directory for the fs driver")
	flags.StringVar(&opts.settingsSQLite, "settings-sqlite", "", "sqlite file for the sqlite driver")

	cmd.AddCommand(newApplyCmd(opts), newClassifyCmd(opts), newSettingsCmd(opts))
	return cmd
}

// resolve merges BADREFINING_SETTINGS_* with explicit flags and builds the logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := settings.StorageConfigFromEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("settings-driver") {
		cfg.Driver = settings.Driver(o.settingsDriver)
	}
	if flags.Changed("settings-name") {
		cfg.Name = o.settingsName
	}
	if flags.Changed("settings-root") {
		cfg.FSRoot = o.settingsRoot
	}
	if flags.Changed("settings-sqlite") {
		cfg.SQLitePath = o.settingsSQLite
	}
	o.storage = cfg

	logger, err := newLogger(o.stderr, o.logLevel, o.quiet)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

func newLogger(w io.Writer, level string, quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	zc := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(zc), nil
}

func (o *rootOptions) coreLogger() core.Logger {
	return core.NewZapLogger(o.logger)
}

func (o *rootOptions) loadRegistry() (*registry.Registry, error) {
	if o.catalog == "" {
		return registry.DefaultCatalog()
	}
	return registry.LoadCatalogFile(o.catalog)
}
