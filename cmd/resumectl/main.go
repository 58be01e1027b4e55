package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tendant/resume-url/internal/logging"
	"github.com/tendant/resume-url/pkg/resumeurl/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	var envFile string
	var backend string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "resumectl",
		Short: "Manage the résumé object and its signed URLs",
		Long: `resumectl uploads the résumé object, inspects it and issues signed URLs
from the command line.

Configuration is read from the same environment variables as the server,
optionally loaded from a .env file.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("failed to load env file %s: %w", envFile, err)
				}
			}
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logging.Setup(cmd.ErrOrStderr(), "development", level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file first")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend override (s3, fs, memory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(NewUploadCommand())
	rootCmd.AddCommand(NewSignCommand())
	rootCmd.AddCommand(NewStatCommand())

	return rootCmd
}

// loadStorage loads configuration honoring the --backend flag and builds the backend
func loadStorage(ctx context.Context, cmd *cobra.Command) (*config.Config, config.Storage, error) {
	var opts []config.Option
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		opts = append(opts, config.WithStorageBackend(backend))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Debug("Building storage backend", "backend", cfg.StorageBackend, "object_key", cfg.ObjectKey)
	storage, err := cfg.BuildStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, storage, nil
}

func printField(w io.Writer, name string, value any) {
	fmt.Fprintf(w, "%-14s %v\n", name+":", value)
}
