// Package cli implements the tether command line tool.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tetherdb/tether/config"
	"github.com/tetherdb/tether/store"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	DBPath     string
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
	Raw        bool   // raw epoch timestamps instead of ISO-8601
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tether CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tether",
		Short: "tether - a tiny document store in one JSON file",
		Long: "tether stores JSON documents in a single backing file and supports\n" +
			"point lookup, predicate filtering, deletion and retention cleanup.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "Tether.db", "backing database file")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: config.json next to the database)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.Raw, "raw", false, "print timestamps as raw epoch-relative seconds")

	cmd.AddCommand(NewWriteCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewCleanupCommand(opts))
	cmd.AddCommand(NewLenCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// loadConfig resolves the config file for the selected database. An unset
// --config falls back to config.json beside the database file; config
// loading itself never fails.
func (o *RootOptions) loadConfig() config.Config {
	path := o.ConfigPath
	if path == "" {
		path = filepath.Join(filepath.Dir(o.DBPath), "config.json")
	}
	return config.Load(path)
}

// openDB opens the database named by the global flags, with options
// resolved from the config file.
func (o *RootOptions) openDB() (*store.DB, config.Config, error) {
	cfg := o.loadConfig()

	db, err := store.Open(o.DBPath,
		store.WithDeviceID(cfg.DeviceID),
		store.WithUTCOffsetMinutes(cfg.UTCOffsetMinutes),
		store.WithCleanupSeconds(cfg.CleanupSeconds),
		store.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, cfg, WrapExitError(ExitCommandError, "open database", err)
	}
	return db, cfg, nil
}

// readOptions translates the global flags into store read options.
func (o *RootOptions) readOptions() []store.ReadOption {
	if o.Raw {
		return []store.ReadOption{store.WithRawTimestamp()}
	}
	return nil
}
