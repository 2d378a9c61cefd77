package cmd

import (
	"errors"
	"fmt"

	"github.com/harrison/extsort/internal/config"
	"github.com/harrison/extsort/internal/executor"
	"github.com/harrison/extsort/internal/fileutil"
	"github.com/harrison/extsort/internal/logger"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for extsort
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extsort <source> <destination>",
		Short: "Sort files into folders by extension",
		Long: `Extsort copies every regular file found under <source> into a
subfolder of <destination> named after the file's lowercase extension.
Files without an extension land in "unknown".

Copies run concurrently. Each one is logged to the console and appended
to the log file. Tuning is read from .extsort/config.yaml and EXTSORT_*
environment variables.`,
		Args:    cobra.ExactArgs(2),
		Version: Version,
		RunE:    runSort,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	return cmd
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	fileLog, err := logger.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer fileLog.Close()

	log := logger.NewMultiLogger(consoleLog, fileLog)

	orch := executor.NewOrchestrator(log, executor.Options{
		MaxConcurrency: cfg.MaxConcurrency,
		Exclude:        cfg.Exclude,
	})

	_, err = orch.Run(cmd.Context(), args[0], args[1])
	if err == nil {
		return nil
	}

	// An invalid source is an ordinary early return; it was already logged
	if executor.IsSetupError(err, executor.PhaseValidate) &&
		(errors.Is(err, fileutil.ErrSourceNotFound) || errors.Is(err, fileutil.ErrSourceNotDir)) {
		return nil
	}

	return err
}
