package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/cpm/internal/config"
	"github.com/slok/cpm/internal/conventions"
	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/printer"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	APIURL     string
	DataDir    string
	ConfigPath string
	Format     string
	NoRetries  bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("api-url", "Project management API base URL.").Envar("CPM_API_URL").StringVar(&c.APIURL)
	app.Flag("format", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.Format, formatTable, formatJSON)
	app.Flag("no-retries", "Disable the retries of failed reads.").BoolVar(&c.NoRetries)

	app.Flag("data-dir", "Directory of the cpm config and data files.").Envar("CPM_DATA_DIR").Default(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)).StringVar(&c.DataDir)
	app.Flag("config", "Path to the YAML config file, by default the one in the data directory.").Envar("CPM_CONFIG").StringVar(&c.ConfigPath)

	return c
}

// LoadConfig loads the config file and applies the flags on top. A missing config
// file is only an error when it was explicitly requested.
func (r RootCommand) LoadConfig() (config.Config, error) {
	path, explicit := r.ConfigPath, r.ConfigPath != ""
	if !explicit {
		path = conventions.ConfigPath(r.DataDir)
	}

	cfg, err := config.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return config.Config{}, fmt.Errorf("could not load config %s: %w", path, err)
		}
		r.Logger.Debugf("Config file %s missing, using defaults", path)
		cfg = config.Config{}
	}

	return cfg.Merge(config.Config{APIURL: r.APIURL}), nil
}

// Printer returns the printer of the selected output format.
func (r RootCommand) Printer() printer.Printer {
	if r.Format == formatJSON {
		return printer.NewJSONPrinter(r.Stdout)
	}
	return printer.NewTablePrinter(r.Stdout)
}
