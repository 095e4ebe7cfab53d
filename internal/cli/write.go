package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/store"
)

// NewWriteCommand creates the write command.
func NewWriteCommand(opts *RootOptions) *cobra.Command {
	var noDeviceID bool

	cmd := &cobra.Command{
		Use:   "write [document]",
		Short: "Write a JSON document to the database",
		Long: "Writes one JSON object to the database, assigning it an id and a\n" +
			"timestamp. The document is read from the argument, or from stdin\n" +
			"when the argument is omitted or \"-\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocumentArg(cmd.InOrStdin(), args)
			if err != nil {
				return WrapExitError(ExitCommandError, "read document", err)
			}

			value, err := docval.UnmarshalValue(data)
			if err != nil {
				return WrapExitError(ExitCommandError, "parse document", err)
			}

			db, _, err := opts.openDB()
			if err != nil {
				return err
			}

			var writeOpts []store.WriteOption
			if noDeviceID {
				writeOpts = append(writeOpts, store.WithoutDeviceID())
			}
			if err := db.WriteValue(value, writeOpts...); err != nil {
				return err
			}

			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintCount("written", 1, "document")
		},
	}

	cmd.Flags().BoolVar(&noDeviceID, "no-device-id", false, "do not inject the device_id field")
	return cmd
}

func readDocumentArg(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
