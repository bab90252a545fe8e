package world

import (
	"strconv"
	"strings"

	"github.com/chaisql/nbt/tag"
	"github.com/cockroachdb/errors"
)

// A Where selects root compounds by the value found at a path.
//
// A String matches if it equals Value. A list of strings matches if one of
// its items equals Value. Numbers match their decimal form.
type Where struct {
	Path  []string
	Value string
}

// ParseWhere parses a filter of the form "a.b.c=value".
func ParseWhere(s string) (Where, error) {
	path, value, ok := strings.Cut(s, "=")
	if !ok {
		return Where{}, errors.Newf("invalid filter %q: missing '='", s)
	}
	if path == "" {
		return Where{}, errors.Newf("invalid filter %q: empty path", s)
	}

	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return Where{}, errors.Newf("invalid filter %q: empty path segment", s)
		}
	}

	return Where{Path: parts, Value: value}, nil
}

func (w Where) String() string {
	return strings.Join(w.Path, ".") + "=" + w.Value
}

// Match reports whether c satisfies the filter.
func (w Where) Match(c *tag.Compound) bool {
	v := lookup(c, w.Path)
	if v == nil {
		return false
	}

	switch t := v.(type) {
	case tag.String:
		return string(t) == w.Value
	case *tag.List:
		if t.Elem() != tag.KindString {
			return false
		}
		for i := 0; i < t.Len(); i++ {
			if s, ok := t.At(i).(tag.String); ok && string(s) == w.Value {
				return true
			}
		}
		return false
	case tag.Byte:
		return strconv.FormatInt(int64(t), 10) == w.Value
	case tag.Short:
		return strconv.FormatInt(int64(t), 10) == w.Value
	case tag.Int:
		return strconv.FormatInt(int64(t), 10) == w.Value
	case tag.Long:
		return strconv.FormatInt(int64(t), 10) == w.Value
	}

	return false
}

func lookup(c *tag.Compound, path []string) tag.Tag {
	var v tag.Tag = c
	for _, name := range path {
		cc, ok := v.(*tag.Compound)
		if !ok || cc == nil {
			return nil
		}
		if v, ok = cc.Get(name); !ok {
			return nil
		}
	}

	return v
}

// MatchAll reports whether c satisfies every filter.
func MatchAll(c *tag.Compound, wheres []Where) bool {
	for _, w := range wheres {
		if !w.Match(c) {
			return false
		}
	}

	return true
}
