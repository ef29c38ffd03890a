package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version is set by ldflags at build time.
var Version = "0.1.0"

// logger is configured in PersistentPreRun and shared by all commands.
var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:   "gridzip",
	Short: "Split images into grid pieces and pack them as ZIP",
	Long: "gridzip cuts an image into a rows x cols grid of PNG pieces " +
		"and packs them into a ZIP archive, entirely in memory.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gridzip version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (default: user config dir)")

	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("gridzip version {{.Version}}\n")
	rootCmd.Version = Version
}

// Execute runs the root command, canceling work on interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gridzip: %v\n", err)
		os.Exit(1)
	}
}
