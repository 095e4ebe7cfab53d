package cli

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	var dropAll bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one document by id, or all documents with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dropAll == (len(args) == 1) {
				return NewExitError(ExitCommandError, "provide exactly one of an id or --all")
			}

			db, _, err := opts.openDB()
			if err != nil {
				return err
			}

			var n int
			if dropAll {
				n, err = db.DeleteAll()
			} else {
				n, err = db.Delete(args[0])
			}
			if err != nil {
				return err
			}

			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintCount("deleted", n, "document")
		},
	}

	cmd.Flags().BoolVar(&dropAll, "all", false, "delete every document")
	return cmd
}

// NewCleanupCommand creates the cleanup command.
func NewCleanupCommand(opts *RootOptions) *cobra.Command {
	var maxAge int64

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete documents older than the retention horizon",
		Long: "Deletes every document whose age exceeds the retention horizon,\n" +
			"in one commit. The horizon comes from --max-age, or from the\n" +
			"cleanup_seconds config option when the flag is omitted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.openDB()
			if err != nil {
				return err
			}

			n, err := db.Cleanup(maxAge)
			if err != nil {
				return err
			}
			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintCount("deleted", n, "document")
		},
	}

	cmd.Flags().Int64Var(&maxAge, "max-age", 0, "retention horizon in seconds (default: cleanup_seconds from config)")
	return cmd
}
