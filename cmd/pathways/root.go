package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goganux/texas-career-path-explorer/internal/cli"
	"github.com/goganux/texas-career-path-explorer/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathways",
	Short: "Pathways explores the education steps behind a career",
	Long: `Pathways lays out the courses, certifications, majors and careers of a career interest
and highlights the steps that lead to a selected career.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Commands run on a context that is cancelled by SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("dir", "", "Directory of pathway documents (switches the source to loam)")
}

// loadConfig resolves the config file, the environment and the persistent flags, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Pathways.Source = config.SourceLoam
		cfg.Pathways.Dir = dir
	}
	return cfg, cfg.Validate()
}

// newApp loads the configuration and wires the adapters for a command.
// The caller closes the returned app.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg, logger)
}
