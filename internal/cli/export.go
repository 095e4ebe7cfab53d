package cli

import (
	"github.com/spf13/cobra"

	"github.com/tetherdb/tether/internal/export"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <sqlite-file>",
		Short: "Export all documents into a SQLite file",
		Long: "Dumps every document into a documents table in a SQLite file, for\n" +
			"ad-hoc SQL analysis of a database pulled off a device. The backing\n" +
			"JSON file stays the source of truth and is not modified.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.openDB()
			if err != nil {
				return err
			}

			n, err := export.ToSQLite(db, args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "export to sqlite", err)
			}
			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintCount("exported", n, "document")
		},
	}
}
