package nbt

import (
	"github.com/buger/jsonparser"
	"github.com/chaisql/nbt/tag"
	"github.com/cockroachdb/errors"
)

// MarshalRootsJSON returns roots as a JSON array of {"name", "value"} objects,
// where each value is the typed JSON of the compound (see tag.MarshalJSON).
func MarshalRootsJSON(roots []Root) ([]byte, error) {
	dst := []byte{'['}

	for i, r := range roots {
		if i > 0 {
			dst = append(dst, ',')
		}

		var err error
		dst = append(dst, `{"name":`...)
		dst, err = tag.AppendJSONName(dst, r.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "root %d", i)
		}
		dst = append(dst, `,"value":`...)
		dst, err = tag.AppendJSON(dst, r.Compound)
		if err != nil {
			return nil, err
		}
		dst = append(dst, '}')
	}

	return append(dst, ']'), nil
}

// ParseRootsJSON parses the output of MarshalRootsJSON.
func ParseRootsJSON(data []byte) ([]Root, error) {
	roots := []Root{}
	var perr error

	_, err := jsonparser.ArrayEach(data, func(v []byte, dt jsonparser.ValueType, _ int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = err
			return
		}
		if dt != jsonparser.Object {
			perr = errors.Wrapf(tag.ErrInvalidJSON, "root must be an object, got %s", dt)
			return
		}

		var r Root
		r, perr = parseRootJSON(v)
		roots = append(roots, r)
	})
	if err != nil {
		return nil, errors.Wrapf(tag.ErrInvalidJSON, "%v", err)
	}
	if perr != nil {
		return nil, perr
	}

	return roots, nil
}

func parseRootJSON(data []byte) (Root, error) {
	name, err := jsonparser.GetString(data, "name")
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return Root{}, errors.Wrapf(tag.ErrInvalidJSON, "root name: %v", err)
	}

	v, _, _, err := jsonparser.Get(data, "value")
	if err != nil {
		return Root{}, errors.Wrapf(tag.ErrInvalidJSON, "root %q: %v", name, err)
	}

	c, err := tag.ParseCompoundJSON(v)
	if err != nil {
		return Root{}, errors.Wrapf(err, "root %q", name)
	}

	return Root{Name: name, Compound: c}, nil
}
