package cmd

import (
	"fmt"
	"os"

	"boilerInspector/internal/config"
	"boilerInspector/internal/inspection"
	"boilerInspector/internal/report"
	"boilerInspector/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg       config.Config
	configErr error

	logger       *zap.Logger
	historyStore store.Store
	service      *inspection.Service

	storeFlag      string
	dataDirFlag    string
	reportDirFlag  string
	dbURIFlag      string
	dbNameFlag     string
	collectionFlag string
	logFileFlag    string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "boiler-inspector",
	Short: "Record boiler inspections and generate inspection reports",
	Long: `Boiler Inspector records periodic boiler inspections: site details, the
23-item installation and operation checklist and the installed products.
Every submitted inspection is saved to the local history and a plain-text
report is written to the report directory.

Run without a command to open the interactive form.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run executes the selected command and releases the store and logger
// even when RunE fails, which cobra's PersistentPostRun does not cover.
func run() error {
	defer teardown()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentPreRunE = setup

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storeFlag, "store", "file", "History backend: file, badger, sqlite, mongo or memory")
	flags.StringVar(&dataDirFlag, "data-dir", "./data", "Directory holding the local history")
	flags.StringVar(&reportDirFlag, "report-dir", "./reports", "Directory generated reports are written to")
	flags.StringVarP(&dbURIFlag, "db-uri", "u", "mongodb://localhost:27017", "MongoDB connection URI (mongo backend)")
	flags.StringVarP(&dbNameFlag, "database", "d", "boiler", "Database name (mongo backend)")
	flags.StringVar(&collectionFlag, "collection", "inspections", "Collection name (mongo backend)")
	flags.StringVar(&logFileFlag, "log-file", "", "Write logs to this file instead of stderr")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func initConfig() {
	cfg, configErr = config.Load()
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("store", &cfg.Store, storeFlag)
	override("data-dir", &cfg.DataDir, dataDirFlag)
	override("report-dir", &cfg.ReportDir, reportDirFlag)
	override("db-uri", &cfg.MongoURI, dbURIFlag)
	override("database", &cfg.MongoDatabase, dbNameFlag)
	override("collection", &cfg.MongoCollection, collectionFlag)
	override("log-file", &cfg.LogFile, logFileFlag)
	if flags.Changed("verbose") {
		cfg.Debug = verbose
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return fmt.Errorf("failed to load configuration: %w", configErr)
	}
	applyFlags(cmd)

	var err error
	logger, err = newLogger(cfg, isInteractive(cmd))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// The catalog command only prints reference data.
	if cmd == catalogCmd {
		return nil
	}

	historyStore, err = store.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	service = inspection.NewService(historyStore, report.NewFileDeliverer(cfg.ReportDir), logger)
	return nil
}

// teardown is safe to call more than once.
func teardown() {
	if historyStore != nil {
		if err := historyStore.Close(); err != nil {
			logger.Warn("Failed to close history store", zap.Error(err))
		}
		historyStore = nil
		service = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == tuiCmd
}

// newLogger logs to stderr, or to cfg.LogFile when set. The interactive
// form owns the terminal, so it gets a no-op logger unless a file is given.
func newLogger(cfg config.Config, interactive bool) (*zap.Logger, error) {
	if interactive && cfg.LogFile == "" {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if cfg.LogFile != "" {
		zc.OutputPaths = []string{cfg.LogFile}
		zc.ErrorOutputPaths = []string{cfg.LogFile}
	}
	return zc.Build()
}
