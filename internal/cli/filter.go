package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/query"
)

// NewFilterCommand creates the filter command.
func NewFilterCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <path=value>...",
		Short: "List documents matching every predicate",
		Long: "Filters documents by a conjunction of path=value predicates.\n" +
			"Paths address nested fields with \"__\" (name__first=Thom); a value\n" +
			"ending in \"*\" is a prefix wildcard (band='Radio*'). Values parse as\n" +
			"JSON where possible (year=1997, live=true) and fall back to strings.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preds, err := parsePredicates(args)
			if err != nil {
				return WrapExitError(ExitCommandError, "parse predicates", err)
			}

			db, _, err := opts.openDB()
			if err != nil {
				return err
			}

			var docs []docval.Object
			for doc := range db.Filter(preds, opts.readOptions()...) {
				docs = append(docs, doc)
			}
			return NewFormatter(opts.Format, cmd.OutOrStdout()).PrintDocuments(docs)
		},
	}
}

// parsePredicates turns path=value arguments into predicates.
func parsePredicates(args []string) ([]query.Predicate, error) {
	preds := make([]query.Predicate, 0, len(args))
	for _, arg := range args {
		path, rawValue, found := strings.Cut(arg, "=")
		if !found || path == "" {
			return nil, fmt.Errorf("predicate %q: want path=value", arg)
		}

		p, err := query.New(path, parsePredicateValue(rawValue))
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// parsePredicateValue decodes a predicate value as JSON when it parses as
// JSON, and treats it as a plain string otherwise, so year=1997 matches a
// number while band=Radiohead matches a string.
func parsePredicateValue(raw string) docval.Value {
	if v, err := docval.UnmarshalValue([]byte(raw)); err == nil {
		return v
	}
	return docval.String(raw)
}
