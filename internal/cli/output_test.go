package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/store"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit error", NewExitError(ExitCommandError, "boom"), ExitCommandError},
		{"wrapped exit error", WrapExitError(ExitFailure, "boom", errors.New("cause")), ExitFailure},
		{"not found maps to failure", &store.Error{Code: store.CodeNotFound}, ExitFailure},
		{"validation maps to command error", &store.Error{Code: store.CodeValidation}, ExitCommandError},
		{"plain error", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := WrapExitError(ExitFailure, "context", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "context")
}

func TestPrintDocumentText(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatter("text", &out)

	require.NoError(t, f.PrintDocument(docval.Object{"b": docval.Number(2), "a": docval.String("x")}))
	assert.Equal(t, "{\"a\":\"x\",\"b\":2}\n", out.String())
}

func TestPrintDocumentJSONIndented(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatter("json", &out)

	require.NoError(t, f.PrintDocument(docval.Object{"a": docval.Number(1)}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
}

func TestPrintDocumentsJSONArray(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatter("json", &out)

	require.NoError(t, f.PrintDocuments([]docval.Object{
		{"n": docval.Number(1)},
		{"n": docval.Number(2)},
	}))
	assert.JSONEq(t, `[{"n":1},{"n":2}]`, out.String())
}

func TestPrintDocumentsEmptyJSONArray(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewFormatter("json", &out).PrintDocuments(nil))
	assert.Equal(t, "[]\n", out.String())
}

func TestPrintCount(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewFormatter("text", &out).PrintCount("deleted", 2, "document"))
	assert.Equal(t, "2 documents deleted\n", out.String())

	out.Reset()
	require.NoError(t, NewFormatter("text", &out).PrintCount("deleted", 1, "document"))
	assert.Equal(t, "1 document deleted\n", out.String())

	out.Reset()
	require.NoError(t, NewFormatter("json", &out).PrintCount("deleted", 2, "document"))
	assert.JSONEq(t, `{"deleted":2}`, out.String())
}

func TestParsePredicateValueFallsBackToString(t *testing.T) {
	assert.Equal(t, docval.Number(1997), parsePredicateValue("1997"))
	assert.Equal(t, docval.Bool(true), parsePredicateValue("true"))
	assert.Equal(t, docval.String("Radiohead"), parsePredicateValue("Radiohead"))
	assert.Equal(t, docval.String("Radio*"), parsePredicateValue("Radio*"))
	assert.Equal(t, docval.String("hello"), parsePredicateValue(`"hello"`))
}
