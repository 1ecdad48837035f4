package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/anicheck/internal/config"
	"github.com/roach88/anicheck/internal/engine"
	"github.com/roach88/anicheck/internal/fixture"
	"github.com/roach88/anicheck/internal/harness"
	"github.com/roach88/anicheck/internal/store"
)

// RunOptions holds flags for a harness run.
type RunOptions struct {
	*RootOptions
	Corpus string
	Label  string
}

func runHarness(opts *RunOptions, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())
	fs := opts.fs()

	cfg, err := opts.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Corpus != "" {
		cfg.Corpus = opts.Corpus
	}
	if opts.Label != "" {
		cfg.Label = opts.Label
	}
	if err := cfg.CheckSchema(); err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	// An unreadable corpus is the one fatal condition, so it is reported
	// before any engine configuration problem.
	corpus, err := fixture.NewLoader(fs, logger).Load(cfg.Corpus)
	if err != nil {
		if errors.Is(err, fixture.ErrCorpusUnreadable) {
			return WrapExitError(ExitFailure, "cannot run conformance tests", err)
		}
		return WrapExitError(ExitCommandError, "failed to load corpus", err)
	}

	if err := cfg.CheckEngine(); err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	eng, engineName, err := buildEngine(cfg.Engine, fs, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to set up engine", err)
	}
	logger.Debug("engine ready", "engine", engineName)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d test cases\n", len(corpus.Records))

	report := harness.New(eng, logger).Run(corpus.Records)
	if err := report.WriteText(out); err != nil {
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}

	if cfg.History == "" {
		return nil
	}
	return saveRun(opts.RootOptions, cmd, logger, cfg, engineName, report)
}

// buildEngine returns the configured engine and a description of it for
// run history.
func buildEngine(ec config.EngineConfig, fs afero.Fs, logger *slog.Logger) (engine.Engine, string, error) {
	if ec.Replay != "" {
		rp, err := engine.LoadReplay(fs, ec.Replay)
		if err != nil {
			return nil, "", err
		}
		return rp, "replay:" + ec.Replay, nil
	}

	codec, err := engine.NewCodec(ec.Encoding)
	if err != nil {
		return nil, "", err
	}
	c, err := engine.NewCommand(ec.Command, codec, logger)
	if err != nil {
		return nil, "", err
	}
	return c, c.String(), nil
}

func saveRun(opts *RootOptions, cmd *cobra.Command, logger *slog.Logger, cfg *config.Config, engineName string, report *harness.Report) error {
	st, err := opts.openStore(cfg.History, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	run := &store.Run{
		Label:  cfg.Label,
		Corpus: cfg.Corpus,
		Engine: engineName,
		Report: report,
	}
	if err := st.SaveRun(commandContext(cmd), run); err != nil {
		return WrapExitError(ExitCommandError, "failed to save run", err)
	}
	logger.Info("run saved", "id", run.ID, "seq", run.Seq, "db", cfg.History)
	return nil
}
