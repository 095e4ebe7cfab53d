package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // operation failure (document not found, invalid input)
	ExitCommandError = 2 // command error (bad flags, unreadable database)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Store errors map to
// codes without explicit wrapping: not-found is an operation failure,
// validation is a usage error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if store.IsNotFound(err) {
		return ExitFailure
	}
	if store.IsValidation(err) {
		return ExitCommandError
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// NewFormatter creates a formatter for the requested format.
func NewFormatter(format string, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: format, Writer: w}
}

// PrintDocument writes one document: indented JSON in json mode, compact
// single-line JSON in text mode.
func (f *OutputFormatter) PrintDocument(doc docval.Object) error {
	data, err := docval.Marshal(doc)
	if err != nil {
		return err
	}
	if f.Format == "json" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, data, "", "  "); err != nil {
			return err
		}
		data = pretty.Bytes()
	}
	fmt.Fprintln(f.Writer, string(data))
	return nil
}

// PrintDocuments writes a sequence of documents: a JSON array in json
// mode, one compact document per line in text mode.
func (f *OutputFormatter) PrintDocuments(docs []docval.Object) error {
	if f.Format == "json" {
		arr := make(docval.Array, len(docs))
		for i, doc := range docs {
			arr[i] = doc
		}
		data, err := docval.Marshal(arr)
		if err != nil {
			return err
		}
		fmt.Fprintln(f.Writer, string(data))
		return nil
	}

	for _, doc := range docs {
		if err := f.PrintDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

// PrintCount writes an operation count: {"<key>": n} in json mode, a
// humane sentence in text mode.
func (f *OutputFormatter) PrintCount(key string, n int, noun string) error {
	if f.Format == "json" {
		data, err := json.Marshal(map[string]int{key: n})
		if err != nil {
			return err
		}
		fmt.Fprintln(f.Writer, string(data))
		return nil
	}

	plural := noun
	if n != 1 {
		plural = noun + "s"
	}
	fmt.Fprintf(f.Writer, "%d %s %s\n", n, plural, key)
	return nil
}
