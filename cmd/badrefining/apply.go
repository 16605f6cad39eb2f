package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"badrefining/internal/core"
	"badrefining/internal/settings"
	"badrefining/plugins/badrefining"
)

type applyOptions struct {
	metrics bool
	trace   string
	keep    bool
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	opts := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Load the patches against the catalog, print the changes, then unload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd.Context(), root, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics after unloading")
	cmd.Flags().StringVar(&opts.trace, "trace", "", "write JSON trace spans to this file (- for stderr)")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "skip unloading and print only the applied changes")
	return cmd
}

func runApply(ctx context.Context, root *rootOptions, opts *applyOptions) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reg, err := root.loadRegistry()
	if err != nil {
		return err
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

	logger := root.coreLogger()
	sessionOpts := []core.Option{
		core.WithPatchEngine(core.NewPatchEngine()),
		core.WithLogger(logger),
		core.WithSettingsName(root.storage.Name),
	}

	promReg := prometheus.NewRegistry()
	if opts.metrics {
		recorder, err := core.NewPrometheusMetricsRecorder(promReg)
		if err != nil {
			return err
		}
		sessionOpts = append(sessionOpts, core.WithMetrics(recorder))
	}

	var tracer *core.JSONTracer
	if opts.trace != "" {
		w, closeTrace, err := openTrace(opts.trace, root.stderr)
		if err != nil {
			return err
		}
		defer closeTrace()
		tracer = core.NewJSONTracer(w)
		sessionOpts = append(sessionOpts, core.WithTracer(tracer))
	}

	session := core.NewSession(reg, settings.NewStore(storage, settings.WithLogger(logger)), sessionOpts...)
	if tracer != nil {
		tracer.ForSession(session.ID())
	}
	if _, err := session.InstallPlugin(badrefining.New()); err != nil {
		return err
	}

	before := reg.Snapshot()
	report, err := session.Load(ctx)
	if err != nil {
		return err
	}
	out := root.stdout
	printReport(out, root.storage, report)

	applied := reg.Snapshot()
	_, _ = fmt.Fprintf(out, "\nChanges (-before +after):\n%s", cmp.Diff(before, applied))
	if opts.keep {
		return nil
	}

	undone, err := session.Unload(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\nUndid %d modifications\n", undone)
	if residual := cmp.Diff(before, reg.Snapshot()); residual != "" {
		_, _ = fmt.Fprintf(out, "Not restored by unload (-before +after):\n%s", residual)
	} else {
		_, _ = fmt.Fprintln(out, "All fields restored")
	}

	if opts.metrics {
		return writeMetrics(out, promReg)
	}
	return nil
}

func printReport(w io.Writer, cfg settings.StorageConfig, report core.LoadReport) {
	_, _ = fmt.Fprintf(w, "Settings: %s (%s)\n\n", cfg.Name, cfg.Driver)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATCH\tMODIFICATIONS\tLOOKUP FAILURES")
	for _, res := range report.Patches {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", res.Patch, res.Modifications, len(res.Failures))
	}
	_ = tw.Flush()
	for _, failure := range report.Failures() {
		_, _ = fmt.Fprintf(w, "  skipped: %v\n", failure)
	}
	_, _ = fmt.Fprintf(w, "Total modifications: %d\n", report.Modifications)
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	_, _ = fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func openTrace(path string, stderr io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		return stderr, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open trace file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
