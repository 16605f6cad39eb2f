package main

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"badrefining/internal/settings"
	"badrefining/pkg/domain"
)

func newSettingsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or create the settings resource",
	}
	cmd.AddCommand(newSettingsInitCmd(root), newSettingsShowCmd(root))
	return cmd
}

func withSettingsStore(ctx context.Context, root *rootOptions, fn func(*settings.Store) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	storage, closeStorage, err := settings.OpenStorage(ctx, root.storage)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStorage(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(settings.NewStore(storage, settings.WithLogger(root.coreLogger())))
}

func newSettingsInitCmd(root *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings if the resource does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			name := root.storage.Name
			return withSettingsStore(ctx, root, func(store *settings.Store) error {
				exists, err := store.Exists(ctx, name)
				if err != nil {
					return err
				}
				if exists && !force {
					_, _ = fmt.Fprintf(root.stdout, "%s already exists\n", name)
					return nil
				}
				if _, err := store.Save(ctx, domain.DefaultSettings(), name); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(root.stdout, "wrote %s\n", name)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing resource with the defaults")
	return cmd
}

func newSettingsShowCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the settings a session would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := settings.CodecFor("settings." + format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			name := root.storage.Name
			return withSettingsStore(ctx, root, func(store *settings.Store) error {
				exists, err := store.Exists(ctx, name)
				if err != nil {
					return err
				}
				current := domain.DefaultSettings()
				source := "defaults, " + name + " not written yet"
				if exists {
					if current, err = store.Load(ctx, name); err != nil {
						return err
					}
					source = path.Base(name)
				}
				data, err := codec.Encode(current)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(root.stderr, "source: %s\n", source)
				_, err = root.stdout.Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml|json|xml")
	return cmd
}
