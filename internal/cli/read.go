package cli

import (
	"github.com/spf13/cobra"

	"github.com/tetherdb/tether/docval"
)

// NewGetCommand creates the get command.
func NewGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Read one document by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.openDB()
			if err != nil {
				return err
			}

			doc, err := db.Get(args[0], opts.readOptions()...)
			if err != nil {
				return err
			}
			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintDocument(doc)
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every document in storage order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.openDB()
			if err != nil {
				return err
			}

			var docs []docval.Object
			for doc := range db.All(opts.readOptions()...) {
				docs = append(docs, doc)
			}
			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintDocuments(docs)
		},
	}
}

// NewLenCommand creates the len command.
func NewLenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "len",
		Short: "Print the current document count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.openDB()
			if err != nil {
				return err
			}
			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintCount("stored", db.Len(), "document")
		},
	}
}
