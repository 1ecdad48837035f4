package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/anicheck/internal/config"
	"github.com/roach88/anicheck/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "csv"
	ConfigPath string
	Database   string

	// Fs is used for config, corpus, replay and report files.
	// If nil, defaults to the OS filesystem.
	Fs afero.Fs

	// IDGenerator overrides run id generation (for testing).
	IDGenerator store.IDGenerator

	// Clock overrides the wall clock (for testing).
	Clock clockwork.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "csv"}

// NewRootCommand creates the root command for the anicheck CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, letting
// tests inject their own dependencies.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	runOpts := &RunOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "anicheck",
		Short: "Conformance harness for anime filename parsers",
		Long: `Run a filename-metadata extraction engine against a corpus of expected
results and report every filename whose extracted fields differ.

Without a subcommand, anicheck loads the corpus (test/data.json unless
configured otherwise), checks every fixture in order and prints a summary
followed by the list of failures.

Example:
  anicheck
  anicheck --config ci.yaml --db runs.db --label nightly`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(runOpts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format for history (text|json|csv)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite run history")

	cmd.Flags().StringVar(&runOpts.Corpus, "corpus", "", "corpus file (overrides config)")
	cmd.Flags().StringVar(&runOpts.Label, "label", "", "label for the stored run (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

func (o *RootOptions) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

func (o *RootOptions) clock() clockwork.Clock {
	if o.Clock == nil {
		return clockwork.NewRealClock()
	}
	return o.Clock
}

// logger writes diagnostics to w, which is stderr outside tests. Stdout is
// reserved for reports.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// loadConfig reads the config file and applies the global overrides. The
// result is not validated.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.fs(), o.ConfigPath)
	} else {
		cfg, err = config.LoadOptional(o.fs(), config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}
	if o.Database != "" {
		cfg.History = o.Database
	}
	return cfg, nil
}

func (o *RootOptions) openStore(path string, logger *slog.Logger) (*store.Store, error) {
	opts := []store.Option{store.WithLogger(logger)}
	if o.IDGenerator != nil {
		opts = append(opts, store.WithIDGenerator(o.IDGenerator))
	}
	if o.Clock != nil {
		opts = append(opts, store.WithClock(o.Clock))
	}
	return store.Open(path, opts...)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
