// Command surveyor is a terminal client for the Literature Surveyor
// backend: submit a research-domain question, get back a structured survey
// dashboard or a rendered free-text answer, and keep a local history of
// past queries.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"surveyor/cmd/surveyor/tui"
	"surveyor/internal/api"
	"surveyor/internal/config"
	"surveyor/internal/dispatch"
	"surveyor/internal/history"
)

var (
	// Global flags
	verbose    bool
	configPath string
	noPersist  bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "surveyor",
	Short: "Literature Surveyor - research survey client",
	Long: `surveyor is a terminal client for the Literature Surveyor backend.

Submit a research-domain question and get back a survey dashboard
(overview, papers, research ideas, publication venues) or a rendered
free-text answer. Past queries are kept in a local history.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		// The interactive UI owns the terminal, so its logs go to the
		// configured file; one-shot commands log to stderr.
		interactive := cmd.Use == "surveyor" && cmd.CalledAs() == "surveyor"
		logger, err = buildLogger(interactive)
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
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		d, cleanup := newDispatcher()
		defer cleanup()
		return tui.Run(d, cfg)
	},
}

func buildLogger(toFile bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose || cfg.Logging.Level == "debug" {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if toFile && cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			return nil, err
		}
		zcfg.OutputPaths = []string{cfg.Logging.File}
		zcfg.ErrorOutputPaths = []string{cfg.Logging.File}
	}
	return zcfg.Build()
}

// newDispatcher wires the API client and the history cache. A history store
// that cannot be opened degrades to in-memory: the cache is a convenience,
// never a reason to refuse a query.
func newDispatcher() (*dispatch.Dispatcher, func()) {
	var store history.KeyValueStore
	cleanup := func() {}

	if noPersist {
		store = history.NewMemStore()
	} else {
		sqlStore, err := history.NewSQLiteStore(cfg.History.DatabasePath)
		if err != nil {
			logger.Warn("failed to open history store, history will not persist", zap.Error(err))
			store = history.NewMemStore()
		} else {
			store = sqlStore
			cleanup = func() { _ = sqlStore.Close() }
		}
	}

	cache := history.NewCache(store, logger)
	client := api.NewClient(cfg.Backend.BaseURL, logger)
	return dispatch.New(client, cache, logger), cleanup
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "Keep query history in memory only")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
