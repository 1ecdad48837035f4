package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/anicheck/internal/harness"
	"github.com/roach88/anicheck/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run]",
		Short: "List stored runs or show one run's report",
		Long: `List the runs recorded in the history database, newest first.

With a run id (or "latest"), print that run's report exactly as it was
shown when the run finished.

Example:
  anicheck history --db runs.db
  anicheck history --db runs.db --format json --limit 5
  anicheck history --db runs.db --format csv latest
  anicheck history --db runs.db latest`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runHistory(opts, ref, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs to list (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, ref string, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if cfg.History == "" {
		return NewExitError(ExitCommandError, "no history database: use --db or set history in the config file")
	}

	st, err := opts.openStore(cfg.History, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := commandContext(cmd)
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if ref != "" {
		run, err := st.Resolve(ctx, ref)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load run", err)
		}
		var data any = run
		if opts.Format == "csv" {
			data = failureRows(run.Report)
		}
		return formatter.Success(data, func(w io.Writer) error {
			return run.Report.WriteText(w)
		})
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	var data any = runs
	if opts.Format == "csv" {
		data = runRows(runs)
	}
	return formatter.Success(data, func(w io.Writer) error {
		return writeRunTable(w, runs)
	})
}

// runRow is one run in CSV output.
type runRow struct {
	ID        string `csv:"id"`
	Seq       int64  `csv:"seq"`
	Label     string `csv:"label"`
	Corpus    string `csv:"corpus"`
	Engine    string `csv:"engine"`
	CreatedAt string `csv:"created_at"`
	Passed    int    `csv:"passed"`
	Failed    int    `csv:"failed"`
}

func runRows(runs []store.RunSummary) []runRow {
	rows := make([]runRow, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, runRow{
			ID:        r.ID,
			Seq:       r.Seq,
			Label:     r.Label,
			Corpus:    r.Corpus,
			Engine:    r.Engine,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
			Passed:    r.Passed,
			Failed:    r.Failed,
		})
	}
	return rows
}

// failureRow is one failing fixture in CSV output.
type failureRow struct {
	FileName string `csv:"file_name"`
	Errors   string `csv:"errors"`
}

func failureRows(r *harness.Report) []failureRow {
	rows := make([]failureRow, 0, len(r.Failures))
	for _, f := range r.Failures {
		rows = append(rows, failureRow{FileName: f.FileName, Errors: strings.Join(f.Errors, "; ")})
	}
	return rows
}

func writeRunTable(w io.Writer, runs []store.RunSummary) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tCREATED\tLABEL\tPASSED\tFAILED\tSUCCESS RATE")
	for _, r := range runs {
		rate := (&harness.Report{Passed: r.Passed, Failed: r.Failed}).FormatSuccessRate()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.Seq, r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Label, r.Passed, r.Failed, rate)
	}
	return tw.Flush()
}
