// Package query implements conjunctive predicate matching over documents.
//
// A predicate pairs a field path with a matcher. Paths address nested
// objects with the "__" separator ("name__first" resolves
// doc["name"]["first"]); matchers are either exact equality or a trailing-*
// prefix wildcard. A document matches a predicate set only if every
// predicate holds.
package query

import (
	"fmt"
	"strings"

	"github.com/tetherdb/tether/docval"
)

// PathSeparator splits a raw field path into nested segments.
const PathSeparator = "__"

// WildcardMarker terminates a prefix-wildcard value. Only the trailing
// position is recognized - there is no infix or suffix globbing.
const WildcardMarker = "*"

// Matcher is a sealed interface over the two match rules.
type Matcher interface {
	matches(v docval.Value) bool
}

// Exact matches a field whose value equals Value, with tag-dispatched
// comparison: numbers numerically, strings exactly, bool/null as
// themselves, arrays and objects structurally. A kind mismatch is a
// non-match, never an error.
type Exact struct {
	Value docval.Value
}

func (m Exact) matches(v docval.Value) bool {
	return docval.Equal(m.Value, v)
}

// PrefixWildcard matches a field whose stringified value starts with
// Prefix. Comparison is literal and case sensitive. Numbers stringify
// without a decimal point, so "5*" can match a numeric field; null, array
// and object values never match.
type PrefixWildcard struct {
	Prefix string
}

func (m PrefixWildcard) matches(v docval.Value) bool {
	s, ok := docval.Stringify(v)
	return ok && strings.HasPrefix(s, m.Prefix)
}

// Predicate is one (path, matcher) pair of a conjunction.
type Predicate struct {
	Path  []string
	Match Matcher
}

// ParsePath splits a raw path on the "__" separator. An empty path or an
// empty segment ("a____b", "__x") is malformed.
func ParsePath(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("invalid predicate path: empty")
	}
	segments := strings.Split(raw, PathSeparator)
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("invalid predicate path %q: empty segment", raw)
		}
	}
	return segments, nil
}

// New builds a predicate from a raw path and an expected value. A string
// value ending in the wildcard marker becomes a PrefixWildcard with the
// marker stripped; everything else becomes an Exact match.
func New(rawPath string, expected docval.Value) (Predicate, error) {
	path, err := ParsePath(rawPath)
	if err != nil {
		return Predicate{}, err
	}

	if s, ok := expected.(docval.String); ok && strings.HasSuffix(string(s), WildcardMarker) {
		return Predicate{
			Path:  path,
			Match: PrefixWildcard{Prefix: strings.TrimSuffix(string(s), WildcardMarker)},
		}, nil
	}
	return Predicate{Path: path, Match: Exact{Value: expected}}, nil
}

// Matches reports whether a document satisfies the predicate. A path that
// cannot be resolved - missing key, or traversal into a non-object -
// excludes the document; it is not an error.
func (p Predicate) Matches(doc docval.Object) bool {
	field, ok := resolve(doc, p.Path)
	if !ok {
		return false
	}
	return p.Match.matches(field)
}

// MatchAll reports whether a document satisfies every predicate.
// An empty predicate set matches everything.
func MatchAll(doc docval.Object, preds []Predicate) bool {
	for _, p := range preds {
		if !p.Matches(doc) {
			return false
		}
	}
	return true
}

// resolve walks path segments through nested objects.
func resolve(doc docval.Object, path []string) (docval.Value, bool) {
	var current docval.Value = doc
	for _, seg := range path {
		obj, ok := current.(docval.Object)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
