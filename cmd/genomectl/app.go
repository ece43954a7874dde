// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/genograph/archive"
	"github.com/katalvlaran/genograph/config"
	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/metrics"
)

// app carries per-invocation state shared by the subcommands.
type app struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	cfgPath     string
	showMetrics bool

	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
	arch    archive.Archive
}

// run executes genomectl with args. Resources opened by the subcommand are
// released even when it fails.
func run(args []string, in io.Reader, out, errOut io.Writer) error {
	a := &app{in: in, out: out, errOut: errOut}
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.Execute()
	return errors.Join(err, a.teardown())
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "genomectl",
		Short:        "Build, inspect and archive layer-graph genomes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "print store metrics to stderr on exit")

	root.AddCommand(
		a.buildCmd(),
		a.inspectCmd(),
		a.sampleCmd(),
		a.archiveCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.metrics = metrics.NewCollector(cfg.Metrics.Namespace)
	a.logger.Debug("configuration loaded",
		zap.String("path", a.cfgPath),
		zap.String("archive", cfg.Archive.Backend))
	return nil
}

func (a *app) teardown() error {
	var errs []error
	if a.showMetrics && a.metrics != nil {
		snap, err := a.metrics.Snapshot()
		if err != nil {
			errs = append(errs, err)
		}
		for _, line := range metrics.Lines(snap) {
			fmt.Fprintln(a.errOut, line)
		}
	}
	if a.arch != nil {
		errs = append(errs, a.arch.Close())
		a.arch = nil
	}
	if a.logger != nil {
		// Sync on stderr fails with EINVAL on some platforms.
		_ = a.logger.Sync()
	}
	return errors.Join(errs...)
}

// store returns a fresh store wired to the logger and metrics.
func (a *app) store() *genome.Store {
	return genome.NewStore(
		genome.WithLogger(a.logger.Named("store")),
		genome.WithObserver(a.metrics),
	)
}

// openArchive opens the configured archive once per invocation.
func (a *app) openArchive() (archive.Archive, error) {
	if a.arch != nil {
		return a.arch, nil
	}
	arch, err := archive.Open(archive.Backend(a.cfg.Archive.Backend), a.cfg.Archive.Path, a.logger.Named("archive"))
	if err != nil {
		return nil, err
	}
	a.arch = arch
	return arch, nil
}

// readText loads genome text from the archive when name is set, from stdin
// when path is "-", and from the file at path otherwise.
func (a *app) readText(ctx context.Context, path, name string) (string, error) {
	switch {
	case name != "" && path != "":
		return "", errors.New("give either a file or --name, not both")
	case name != "":
		arch, err := a.openArchive()
		if err != nil {
			return "", err
		}
		return arch.Load(ctx, name)
	case path == "-":
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", errors.New("a genome file or --name is required")
	}
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
