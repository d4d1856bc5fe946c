package config

import (
	"fmt"
	"os"

	"empreport/internal/model"
	"empreport/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Constants for default values.
const (
	DefaultConfigFile = ".empreport.yaml"
	DefaultSortKey    = "name"
	DefaultHistoryDB  = "empreport.db"

	// EnvHistoryDB overrides the history database path; loaded from the
	// environment (a .env file is honored by the CLI entrypoint).
	EnvHistoryDB = "EMPREPORT_HISTORY_DB"
)

// Options is the fully resolved configuration for one run. Every
// setting is explicit; nothing is prompted for interactively.
type Options struct {
	InputPath  string
	OutputPath string
	SortBy     model.SortKey
	Format     model.Format
	HistoryDB  string // empty disables run history
}

// Flags holds the raw command-line flag values before resolution.
type Flags struct {
	ConfigFile string
	SortBy     string
	Format     string
	HistoryDB  string
	NoHistory  bool
}

// FileConfig represents the optional .empreport.yaml configuration.
type FileConfig struct {
	SortBy    string `yaml:"sort_by,omitempty"`
	Format    string `yaml:"format,omitempty"`
	HistoryDB string `yaml:"history_db,omitempty"`
}

// LoadFile reads a YAML config file. A missing file is not an error; it
// yields an empty config.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve merges, in increasing precedence: built-in defaults, the
// environment, the YAML config file, and explicit flags. The report
// format, when not set anywhere, is inferred from the output file
// extension.
func Resolve(args []string, flags Flags) (Options, error) {
	if len(args) != 2 {
		return Options{}, fmt.Errorf("expected 2 arguments (input file, output file), got %d", len(args))
	}

	opts := Options{
		InputPath:  args[0],
		OutputPath: args[1],
		SortBy:     model.SortKey(DefaultSortKey),
		HistoryDB:  DefaultHistoryDB,
	}

	if env := os.Getenv(EnvHistoryDB); env != "" {
		opts.HistoryDB = env
	}

	configFile := flags.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	fileCfg, err := LoadFile(configFile)
	if err != nil {
		return Options{}, err
	}

	format := ""
	if fileCfg.SortBy != "" {
		opts.SortBy = model.SortKey(fileCfg.SortBy)
	}
	if fileCfg.Format != "" {
		format = fileCfg.Format
	}
	if fileCfg.HistoryDB != "" {
		opts.HistoryDB = fileCfg.HistoryDB
	}

	if flags.SortBy != "" {
		// Deliberately not validated here: an unrecognized key is a
		// recoverable condition owned by the sorter, which falls back
		// to the original order.
		opts.SortBy = model.SortKey(flags.SortBy)
	}
	if flags.Format != "" {
		format = flags.Format
	}
	if flags.HistoryDB != "" {
		opts.HistoryDB = flags.HistoryDB
	}
	if flags.NoHistory {
		opts.HistoryDB = ""
	}

	if format == "" {
		opts.Format = inferFormat(opts.OutputPath)
	} else {
		f, err := model.ParseFormat(format)
		if err != nil {
			return Options{}, err
		}
		opts.Format = f
	}

	return opts, nil
}

// inferFormat maps the output file extension to a report format,
// defaulting to text.
func inferFormat(outputPath string) model.Format {
	switch utils.FileType(outputPath) {
	case "json":
		return model.FormatJSON
	case "csv":
		return model.FormatCSV
	case "excel":
		return model.FormatExcel
	default:
		return model.FormatText
	}
}
