package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/GriffinCanCode/fileaccess/internal/config"
	"github.com/GriffinCanCode/fileaccess/internal/filesystem"
	"github.com/GriffinCanCode/fileaccess/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileaccess/internal/logging"
	"github.com/GriffinCanCode/fileaccess/internal/shared/paths"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app holds what every subcommand shares. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	envFile     string
	rootFlag    string
	metricsFile string
	dev         bool

	cfg      *config.Config
	log      *logging.Logger
	metrics  *monitoring.Metrics
	ops      *filesystem.Ops
	resolver paths.Resolver
	rootErr  error
}

// run executes the CLI and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "fileaccess: %v\n", err) //nolint:errcheck // best-effort stderr
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "fileaccess",
		Short:             "Walk, stream and edit CSV, text and JSON files",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setup() },
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before the environment")
	flags.StringVar(&a.rootFlag, "root", "", "project root (default: FILES_ROOT or discovered from the working directory)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics for this run to a textfile")
	flags.BoolVar(&a.dev, "dev", false, "development logging (debug level, console output)")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newCSVCmd(a),
		newTxtCmd(a),
		newJSONCmd(a),
		newWalkCmd(a),
		newFindCmd(a),
		newGlobCmd(a),
		newStatCmd(a),
		newEnsureCmd(a),
		newRmCmd(a),
		newRootPathCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.LoadFrom(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Development = cfg.Logging.Development
	if a.dev {
		logCfg = logging.DevelopmentConfig()
	}
	a.log, err = logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.Metrics.Enabled || a.metricsFile != "" {
		a.metrics = monitoring.NewMetrics()
	}

	a.ops = filesystem.NewOps(filesystem.Config{
		ChunkSize:     cfg.Stream.ChunkSize,
		HighWaterMark: cfg.Stream.HighWaterMark,
		Encoding:      cfg.Stream.Encoding,
		Logger:        a.log,
		Metrics:       a.metrics,
	})

	pathsCfg := cfg.Paths
	if a.rootFlag != "" {
		pathsCfg.Root = a.rootFlag
	}
	// A missing root only matters once a relative path needs it.
	a.resolver, a.rootErr = paths.FromConfig(pathsCfg)
	if a.rootErr == nil {
		a.log.Debug("project root", zap.String("root", a.resolver.Root))
	}
	return nil
}

func (a *app) teardown() error {
	if a.metricsFile != "" {
		if err := a.metrics.WriteTextfile(a.metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	_ = a.log.Sync()
	return nil
}

// resolve maps a command-line path onto the project root.
func (a *app) resolve(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if a.rootErr != nil {
		return "", fmt.Errorf("resolve %s: %w", p, a.rootErr)
	}
	return a.resolver.Resolve(p), nil
}

func (a *app) resolveAll(ps []string) ([]string, error) {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		r, err := a.resolve(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// display shortens p to a root-relative path when it sits under the root.
func (a *app) display(p string) string {
	if a.rootErr != nil {
		return p
	}
	return a.resolver.Rel(p)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...) //nolint:errcheck // best-effort stdout
}

func errNotFound(name string) error {
	return fmt.Errorf("%s: not found", name)
}
