package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"empreport/internal/config"
	"empreport/internal/pipeline"
	"empreport/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configFile string
	sortBy     string
	format     string
	historyDB  string
	noHistory  bool
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "empreport [input file] [output file]",
	Short: "empreport - employee salary batch reports",
	Long: `empreport reads a delimited employee file, validates each line,
sorts the valid records, groups them by department, and writes the
per-department salary statistics as a text, JSON, CSV or Excel report.

Malformed lines are skipped with a diagnostic; a missing input file,
an unknown sort key, or a report write failure never crash the run.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
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
	RunE: runReport,
}

// runsCmd lists previously recorded report runs
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded report runs",
	Args:  cobra.NoArgs,
	RunE:  listRuns,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default "+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", "", "run history database path (default "+config.DefaultHistoryDB+")")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.Flags().StringVar(&sortBy, "sort-by", "", "sort key: name, age or salary (default "+config.DefaultSortKey+")")
	rootCmd.Flags().StringVar(&format, "format", "", "report format: text, json, csv or excel (default inferred from output extension)")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "disable run history recording")

	rootCmd.AddCommand(runsCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	opts, err := config.Resolve(args, config.Flags{
		ConfigFile: configFile,
		SortBy:     sortBy,
		Format:     format,
		HistoryDB:  historyDB,
		NoHistory:  noHistory,
	})
	if err != nil {
		return err
	}

	var history *store.History
	if opts.HistoryDB != "" {
		history, err = store.Open(opts.HistoryDB)
		if err != nil {
			// history is best effort: the report still runs without it
			logger.Warn("run history disabled", zap.Error(err))
		} else {
			defer history.Close()
		}
	}

	runner := &pipeline.Runner{Log: logger, History: history, Out: os.Stdout}
	res, err := runner.Run(opts)
	if err != nil {
		return err
	}

	logger.Info("run finished",
		zap.String("run_id", res.RunID),
		zap.Int("loaded", res.Loaded),
		zap.Int("skipped", res.Skipped),
		zap.Int("departments", len(res.Summary.Departments)))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	dbPath := historyDB
	if dbPath == "" {
		if env := os.Getenv(config.EnvHistoryDB); env != "" {
			dbPath = env
		} else {
			dbPath = config.DefaultHistoryDB
		}
	}

	history, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer history.Close()

	runs, err := history.ListRuns()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tINPUT\tSORT\tFORMAT\tSTATUS\tLOADED\tSKIPPED\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.InputPath, r.SortKey, r.Format, r.Status,
			r.Loaded, r.Skipped, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func main() {
	// Load .env if present; the environment can set the history DB path.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		_ = rootCmd.Usage()
		os.Exit(1)
	}
}
