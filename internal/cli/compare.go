package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/anicheck/internal/compare"
	"github.com/roach88/anicheck/internal/harness"
	"github.com/roach88/anicheck/internal/store"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Output         string
	BaselineLabel  string
	CandidateLabel string
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <baseline> <candidate>",
		Short: "Compare two runs and list regressions",
		Long: `Compare two conformance runs and write a markdown report of the
fixtures that regressed, improved, or fail on both sides.

Each operand is a saved text report. When a history database is configured,
an operand that is not an existing file is looked up as a run id, or
"latest" for the most recent run.

Example:
  anicheck compare reference.txt port.txt --out comparison.md
  anicheck compare --db runs.db 0190c1d2-... latest`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&opts.BaselineLabel, "baseline-label", "", "name of the baseline side in the report")
	cmd.Flags().StringVar(&opts.CandidateLabel, "candidate-label", "", "name of the candidate side in the report")

	return cmd
}

func runCompare(opts *CompareOptions, baselineRef, candidateRef string, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	src := &reportSource{opts: opts.RootOptions, fs: opts.fs(), dbPath: cfg.History, logger: logger}
	defer src.close()

	ctx := commandContext(cmd)
	baseline, baseLabel, err := src.load(ctx, baselineRef)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load baseline", err)
	}
	candidate, candLabel, err := src.load(ctx, candidateRef)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load candidate", err)
	}

	labels := compare.Labels{Baseline: baseLabel, Candidate: candLabel}
	if opts.BaselineLabel != "" {
		labels.Baseline = opts.BaselineLabel
	}
	if opts.CandidateLabel != "" {
		labels.Candidate = opts.CandidateLabel
	}

	comparison := compare.Diff(baseline, candidate)
	logger.Debug("comparison computed",
		"regressions", len(comparison.Regressions),
		"improvements", len(comparison.Improvements),
		"common", len(comparison.Common),
	)

	if opts.Output == "" {
		if err := compare.RenderMarkdown(cmd.OutOrStdout(), comparison, labels, opts.clock().Now()); err != nil {
			return WrapExitError(ExitCommandError, "failed to write comparison", err)
		}
		return nil
	}

	if err := writeComparison(opts.fs(), opts.Output, comparison, labels, opts.clock().Now()); err != nil {
		return WrapExitError(ExitCommandError, "failed to write comparison", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Comparison report written to %s\n", opts.Output)
	return nil
}

func writeComparison(fs afero.Fs, path string, c *compare.Comparison, labels compare.Labels, generated time.Time) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return compare.RenderMarkdown(f, c, labels, generated)
}

// reportSource resolves compare operands to reports. The history database
// is opened on first use.
type reportSource struct {
	opts   *RootOptions
	fs     afero.Fs
	dbPath string
	logger *slog.Logger

	st *store.Store
}

// load returns the report for ref and a default label for it.
func (s *reportSource) load(ctx context.Context, ref string) (*harness.Report, string, error) {
	exists, err := afero.Exists(s.fs, ref)
	if err != nil {
		return nil, "", err
	}
	if exists {
		r, err := s.loadFile(ref)
		if err != nil {
			return nil, "", err
		}
		return r, filepath.Base(ref), nil
	}

	if s.dbPath == "" {
		return nil, "", fmt.Errorf("report file %s not found", ref)
	}
	if s.st == nil {
		st, err := s.opts.openStore(s.dbPath, s.logger)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open database: %w", err)
		}
		s.st = st
	}
	run, err := s.st.Resolve(ctx, ref)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return nil, "", fmt.Errorf("%s is neither a report file nor a stored run: %w", ref, err)
		}
		return nil, "", err
	}
	label := run.Label
	if label == "" {
		label = fmt.Sprintf("run %d", run.Seq)
	}
	return run.Report, label, nil
}

func (s *reportSource) loadFile(path string) (*harness.Report, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := compare.ParseReport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func (s *reportSource) close() {
	if s.st == nil {
		return
	}
	if err := s.st.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}
