package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Daniel-olaO/porespy/internal/report"
	"github.com/Daniel-olaO/porespy/internal/rundb"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded tortuosity runs",
		Long: `History lists runs saved with tort --save, newest first. The table
shows the headline metrics; --json emits the full records.`,
		Example: `  porespy history
  porespy history --image sample.txt --limit 5
  porespy history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("image", "", "Only show runs for this image")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolP("json", "j", false, "Write the runs as JSON")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .porespy.yaml, then the XDG config dir)")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	flags := cmd.Flags()
	image, err := flags.GetString("image")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	db, err := rundb.Open(cfg.DatabaseDir(), rundb.Options{EnableWAL: true})
	if errors.Is(err, rundb.ErrDatabaseNotFound) {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), image, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	if asJSON {
		return writeRunsJSON(out, runs)
	}
	writeRunsTable(out, runs)
	return nil
}

// writeRunsJSON emits the runs as a pretty-printed JSON array of
// report records.
func writeRunsJSON(out io.Writer, runs []rundb.Run) error {
	reports := make([]*report.Report, len(runs))
	for i := range runs {
		reports[i] = report.FromRun(&runs[i])
	}
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// writeRunsTable renders the runs as a fixed-width table, newest
// first as listed.
func writeRunsTable(out io.Writer, runs []rundb.Run) {
	fmt.Fprintf(out, "%-4s %-24s %-4s %-12s %-10s %-10s %-8s %s\n",
		"ID", "IMAGE", "AXIS", "SHAPE", "TORT", "F", "SOLVER", "DATE")
	for _, run := range runs {
		date := ""
		if !run.CreatedAt.IsZero() {
			date = run.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%-4d %-24s %-4d %-12s %-10.4f %-10.4f %-8s %s\n",
			run.ID, truncate(run.Image, 24), run.Axis, run.Shape,
			run.Tortuosity, run.FormationFactor, run.Solver, date)
	}
}

// truncate shortens s to max runes with a trailing ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
