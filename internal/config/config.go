package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/Daniel-olaO/porespy/dns"
	"github.com/Daniel-olaO/porespy/solver"
)

// Default configuration values, kept for any field a configuration
// file leaves unset.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "porespy"

	// DefaultSolver picks the solver family from the system size.
	DefaultSolver = "auto"

	// DefaultMaxIterations of 0 lets the solver derive its iteration
	// budget from the system size.
	DefaultMaxIterations = 0

	// Report format names accepted in ReportFormat.
	FormatSimple   = "simple"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"

	// DefaultReportFormat is the human-readable writer.
	DefaultReportFormat = FormatSimple
)

// Config carries every tunable the CLI exposes. A single flat struct:
// values load from YAML, then flag overrides apply on top, then the
// result is validated once before any simulation starts.
type Config struct {
	// Solver selects the linear solver family: "auto", "cg" or
	// "cholesky".
	Solver string `yaml:"solver"`

	// Tolerance is the relative residual bound for iterative solves.
	Tolerance float64 `yaml:"tolerance"`

	// MaxIterations caps conjugate-gradient iterations. 0 means the
	// solver derives a bound from the system size.
	MaxIterations int `yaml:"max_iterations"`

	// RateRTol and RateATol bound the relative and absolute mismatch
	// allowed between inlet and outlet rates after a solve.
	RateRTol float64 `yaml:"rate_rtol"`
	RateATol float64 `yaml:"rate_atol"`

	// Verbose enables debug-level log output.
	Verbose bool `yaml:"verbose"`

	// DBDir is the directory holding the run history database.
	// Empty means the XDG data directory.
	DBDir string `yaml:"db_dir"`

	// ReportFormat is the default report writer: "simple", "json" or
	// "markdown".
	ReportFormat string `yaml:"report_format"`
}

// Default returns a Config with every field at its documented default.
func Default() *Config {
	return &Config{
		Solver:        DefaultSolver,
		Tolerance:     solver.DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		RateRTol:      dns.DefaultRateRTol,
		RateATol:      dns.DefaultRateATol,
		ReportFormat:  DefaultReportFormat,
	}
}

// Validate reports the first invalid field as a sentinel error.
// Called once after flags are applied, before any simulation.
func (c *Config) Validate() error {
	if _, err := solver.ParseFamily(c.Solver); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSolver, c.Solver)
	}
	if c.Tolerance <= 0 {
		return ErrInvalidTolerance
	}
	if c.MaxIterations < 0 {
		return ErrInvalidMaxIterations
	}
	if c.RateRTol < 0 || c.RateATol < 0 {
		return ErrInvalidRateTolerance
	}
	switch c.ReportFormat {
	case FormatSimple, FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidReportFormat, c.ReportFormat)
	}
	return nil
}

// DatabaseDir returns the directory for the run history database,
// DBDir when set and the XDG data directory otherwise.
func (c *Config) DatabaseDir() string {
	if c.DBDir != "" {
		return c.DBDir
	}
	return XDGDataDir()
}

// XDGDataDir returns the XDG data directory for the tool.
// On Linux: ~/.local/share/porespy.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the tool.
// On Linux: ~/.config/porespy.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
