package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Daniel-olaO/porespy/dns"
	"github.com/Daniel-olaO/porespy/internal/config"
	"github.com/Daniel-olaO/porespy/internal/report"
	"github.com/Daniel-olaO/porespy/internal/rundb"
	"github.com/Daniel-olaO/porespy/metrics"
	"github.com/Daniel-olaO/porespy/solver"
	"github.com/Daniel-olaO/porespy/visualization"
	"github.com/Daniel-olaO/porespy/voxel"
)

var (
	// ErrConflictingFormats is returned when more than one report
	// format flag is set on the same invocation.
	ErrConflictingFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConflictingAxes is returned when --axis and --all-axes are
	// combined.
	ErrConflictingAxes = errors.New("conflicting axis selection: --axis and --all-axes cannot be used together")

	// ErrFieldNeedsSingleAxis is returned when a field artifact is
	// requested for a multi-axis run.
	ErrFieldNeedsSingleAxis = errors.New("--field, --heatmap and --profile require a single-axis run")
)

// NewTortCmd creates the tort command.
func NewTortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tort <image>",
		Short: "Simulate diffusive tortuosity through a binary image",
		Long: `Tort runs a direct numerical simulation of steady-state diffusion
through the void phase of a binary image and reports the tortuosity,
formation factor and effective porosity along the chosen axis.

The image is read from a text, PNG or JSON voxel file. Isolated and
dead-end void regions that cannot carry flux between the inlet and
outlet faces are trimmed before the solve.`,
		Example: `  porespy tort sample.txt
  porespy tort --axis 2 --save sample.png
  porespy tort --all-axes --json sample.txt
  porespy tort --heatmap field.png --solver cg sample.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runTortCmd,
	}

	cmd.Flags().IntP("axis", "a", 0, "Transport axis (0 is the first image dimension)")
	cmd.Flags().Bool("all-axes", false, "Simulate along every axis of the image")
	cmd.Flags().String("solver", config.DefaultSolver, "Solver family: auto, cg or cholesky")
	cmd.Flags().Float64("tol", solver.DefaultTolerance, "Relative residual tolerance for iterative solves")
	cmd.Flags().Int("max-iter", 0, "Iteration cap for cg (0 derives a cap from the system size)")
	cmd.Flags().BoolP("json", "j", false, "Write the report as JSON")
	cmd.Flags().BoolP("markdown", "m", false, "Write the report as Markdown")
	cmd.Flags().Bool("save", false, "Record the run in the history database")
	cmd.Flags().String("field", "", "Write the concentration field to this text file")
	cmd.Flags().String("heatmap", "", "Render the concentration field to this PNG file")
	cmd.Flags().String("profile", "", "Render the per-slice concentration profile to this PNG file")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .porespy.yaml, then the XDG config dir)")

	return cmd
}

func runTortCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyTortFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	imagePath := args[0]
	im, err := voxel.ReadFile(imagePath)
	if err != nil {
		return err
	}

	axes, err := selectAxes(cmd, im)
	if err != nil {
		return err
	}

	fieldPath, err := cmd.Flags().GetString("field")
	if err != nil {
		return err
	}
	heatmapPath, err := cmd.Flags().GetString("heatmap")
	if err != nil {
		return err
	}
	profilePath, err := cmd.Flags().GetString("profile")
	if err != nil {
		return err
	}
	keepField := fieldPath != "" || heatmapPath != "" || profilePath != ""
	if keepField && len(axes) > 1 {
		return ErrFieldNeedsSingleAxis
	}

	results := make([]dns.Result, len(axes))
	durations := make([]time.Duration, len(axes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(axes))
	for i, axis := range axes {
		i, axis := i, axis
		g.Go(func() error {
			logger.Info("starting simulation", "image", imagePath, "axis", axis)
			start := time.Now()
			res, err := simulateAxis(gctx, cfg, logger, im, axis, keepField)
			if err != nil {
				return fmt.Errorf("axis %d: %w", axis, err)
			}
			results[i] = res
			durations[i] = time.Since(start)
			logger.Info("simulation complete",
				"axis", axis,
				"tortuosity", res.Tortuosity,
				"duration", durations[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	writer := buildReportWriter(cmd.OutOrStdout(), cfg.ReportFormat)
	reports := make([]*report.Report, len(axes))
	for i, axis := range axes {
		reports[i] = report.New(imagePath, axis, im.Shape(), results[i], durations[i])
		if _, err := writer.Write(reports[i]); err != nil {
			return err
		}
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRuns(ctx, cfg, logger, reports); err != nil {
			return err
		}
	}

	if keepField {
		if err := writeFieldArtifacts(results[0], axes[0], fieldPath, heatmapPath, profilePath); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig resolves the configuration for a command. An explicit
// --config path that does not exist is an error; otherwise a
// discovered file is loaded and defaults apply when none is found.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	found := config.Discover(explicit)
	if found == "" {
		if explicit != "" {
			return nil, fmt.Errorf("configuration file not found: %s", explicit)
		}
		return config.Default(), nil
	}
	cfg, err := config.Load(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	return cfg, nil
}

// applyTortFlags lays command-line overrides over the loaded
// configuration. Only flags the user actually set take effect, so a
// configuration file survives an invocation that does not mention a
// setting.
func applyTortFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("solver") {
		v, err := flags.GetString("solver")
		if err != nil {
			return err
		}
		cfg.Solver = v
	}
	if flags.Changed("tol") {
		v, err := flags.GetFloat64("tol")
		if err != nil {
			return err
		}
		cfg.Tolerance = v
	}
	if flags.Changed("max-iter") {
		v, err := flags.GetInt("max-iter")
		if err != nil {
			return err
		}
		cfg.MaxIterations = v
	}
	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	jsonOut, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return ErrConflictingFormats
	}
	if jsonOut {
		cfg.ReportFormat = config.FormatJSON
	}
	if markdownOut {
		cfg.ReportFormat = config.FormatMarkdown
	}
	return nil
}

// selectAxes resolves the axis list for a run: the requested axis, or
// every axis of the image under --all-axes.
func selectAxes(cmd *cobra.Command, im *voxel.Image) ([]int, error) {
	flags := cmd.Flags()
	allAxes, err := flags.GetBool("all-axes")
	if err != nil {
		return nil, err
	}
	if allAxes {
		if flags.Changed("axis") {
			return nil, ErrConflictingAxes
		}
		axes := make([]int, im.NDim())
		for i := range axes {
			axes[i] = i
		}
		return axes, nil
	}
	axis, err := flags.GetInt("axis")
	if err != nil {
		return nil, err
	}
	return []int{axis}, nil
}

// simulateAxis runs one tortuosity simulation with options assembled
// from the configuration.
func simulateAxis(ctx context.Context, cfg *config.Config, logger *slog.Logger, im *voxel.Image, axis int, keepField bool) (dns.Result, error) {
	family, err := solver.ParseFamily(cfg.Solver)
	if err != nil {
		return dns.Result{}, err
	}
	opts := []dns.Option{
		dns.WithContext(ctx),
		dns.WithSolverFamily(family),
		dns.WithTolerance(cfg.Tolerance),
		dns.WithRateTolerance(cfg.RateRTol, cfg.RateATol),
		dns.WithLogger(logger),
	}
	if cfg.MaxIterations > 0 {
		opts = append(opts, dns.WithMaxIterations(cfg.MaxIterations))
	}
	if keepField {
		opts = append(opts, dns.WithConcentration())
	}
	return dns.Tortuosity(im, axis, opts...)
}

// buildReportWriter selects the report renderer for a validated
// format name.
func buildReportWriter(out io.Writer, format string) report.Writer {
	switch format {
	case config.FormatJSON:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out)
	}
}

// saveRuns records the reports in the history database.
func saveRuns(ctx context.Context, cfg *config.Config, logger *slog.Logger, reports []*report.Report) error {
	db, err := rundb.Open(cfg.DatabaseDir(), rundb.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	for _, r := range reports {
		id, err := db.SaveRun(ctx, r.ToRun())
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logger.Info("run saved", "id", id, "database", db.Path())
	}
	return nil
}

// writeFieldArtifacts exports the concentration field kept by a
// single-axis run. Heat maps of rank-3 fields cut a mid plane that
// contains the transport axis so the gradient stays visible.
func writeFieldArtifacts(res dns.Result, axis int, fieldPath, heatmapPath, profilePath string) error {
	if res.Concentration == nil {
		return nil
	}
	f := res.Concentration
	if fieldPath != "" {
		if err := voxel.WriteFieldFile(fieldPath, f); err != nil {
			return err
		}
	}
	if profilePath != "" {
		profile, err := metrics.FieldProfile(f, axis)
		if err != nil {
			return err
		}
		if err := visualization.ProfilePNG(profile, "concentration", profilePath); err != nil {
			return err
		}
	}
	if heatmapPath == "" {
		return nil
	}
	if f.NDim() == 2 {
		return visualization.HeatmapPNG(f, heatmapPath)
	}
	cut := 0
	if axis == 0 {
		cut = 1
	}
	return visualization.SliceHeatmapPNG(f, cut, f.Dim(cut)/2, heatmapPath)
}
