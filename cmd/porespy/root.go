package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the porespy CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "porespy",
		Short: "Transport simulation on binary porous images",
		Long: `porespy estimates transport properties of porous materials from
binary voxel images. It meshes the void phase into a cubic pore
network, solves steady-state Fickian diffusion across it and reduces
the solution to tortuosity, formation factor and effective
diffusivity.

Images load from plain-text or PNG files; the generate command
produces synthetic structures for trials.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(NewTortCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its
// parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger honouring the verbosity
// setting: Debug when verbose, Info otherwise.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
