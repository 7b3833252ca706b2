package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kamusis/tagsheet/internal/config"
	"github.com/kamusis/tagsheet/internal/session"
)

var (
	flagVerbose bool
	flagConfig  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "tagsheet",
	Short:        "Tag rows from CSV and XLSX files and export them per tag",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `tagsheet loads spreadsheet rows into an in-memory session, lets you
label them with tags, sort and filter the table, and export every row
carrying a tag to its own CSV file.

Nothing is persisted between sessions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(logLevel(flagVerbose))
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug detail to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.tagsheet/tagsheet.yaml)")
}

// logLevel is warn by default so decode problems reach stderr; --verbose adds
// debug detail.
func logLevel(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// Execute is called by cmd/tagsheet/main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	path, err := config.ExpandPath(flagConfig)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// newSession builds a session from cfg, logging through the root logger.
func newSession(cfg *config.Config) *session.Session {
	log := logger
	if log == nil {
		log = zap.NewNop()
	}
	return session.New(session.Options{
		AmountColumn:     cfg.AmountColumn,
		BuiltinTags:      cfg.BuiltinTags,
		ExportDir:        cfg.ExportDir,
		OverwriteExports: cfg.OverwriteExports,
		DecodeWorkers:    cfg.DecodeWorkers,
		Logger:           log,
	})
}
