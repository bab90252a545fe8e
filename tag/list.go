package tag

import (
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/cockroachdb/errors"
)

// A List is an ordered sequence of tags of the same kind.
// A nil *List encodes as an empty list of End.
type List struct {
	elem  Kind
	items []Tag
}

// NewList returns a list of the given element kind.
// Every item must be of kind elem, otherwise an ErrEncoding error is returned.
// Lists of End can only be empty.
func NewList(elem Kind, items ...Tag) (*List, error) {
	if !elem.Valid() {
		return nil, errors.Wrapf(encoding.ErrEncoding, "invalid list element kind %d", uint8(elem))
	}
	if elem == KindEnd && len(items) > 0 {
		return nil, errors.Wrap(encoding.ErrEncoding, "list of end must be empty")
	}

	for i, it := range items {
		if err := checkItem(elem, i, it); err != nil {
			return nil, err
		}
	}

	l := List{elem: elem}
	if len(items) > 0 {
		l.items = make([]Tag, len(items))
		copy(l.items, items)
	}
	return &l, nil
}

// MustList is like NewList but panics on error.
func MustList(elem Kind, items ...Tag) *List {
	l, err := NewList(elem, items...)
	if err != nil {
		panic(err)
	}
	return l
}

func checkItem(elem Kind, i int, it Tag) error {
	if it == nil {
		return errors.Wrapf(encoding.ErrEncoding, "list item %d is nil", i)
	}
	if it.Kind() != elem {
		return errors.Wrapf(encoding.ErrEncoding, "list item %d is a %s, expected %s", i, it.Kind(), elem)
	}
	return nil
}

func (*List) Kind() Kind { return KindList }

// Elem returns the declared kind of the elements.
func (l *List) Elem() Kind {
	if l == nil {
		return KindEnd
	}
	return l.elem
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the i-th element.
func (l *List) At(i int) Tag {
	return l.items[i]
}

// Items returns a copy of the elements.
func (l *List) Items() []Tag {
	if l.Len() == 0 {
		return nil
	}

	items := make([]Tag, len(l.items))
	copy(items, l.items)
	return items
}

// Iterate calls fn for each element, in order.
// If fn returns an error, the iteration stops.
func (l *List) Iterate(fn func(i int, v Tag) error) error {
	for i := 0; i < l.Len(); i++ {
		if err := fn(i, l.items[i]); err != nil {
			return err
		}
	}

	return nil
}

func (l *List) Size() int {
	n := 1 + 4
	for i := 0; i < l.Len(); i++ {
		if l.items[i] != nil {
			n += l.items[i].Size()
		}
	}
	return n
}

// AppendPayload writes the element kind, the element count and the payload of
// every element, with no kind byte between elements.
func (l *List) AppendPayload(dst []byte) ([]byte, error) {
	elem := l.Elem()
	dst = append(dst, byte(elem))

	dst, err := encoding.AppendLength(dst, l.Len())
	if err != nil {
		return dst, err
	}

	for i := 0; i < l.Len(); i++ {
		if err := checkItem(elem, i, l.items[i]); err != nil {
			return dst, errors.WithStack(&encoding.Error{Offset: len(dst), Err: err})
		}

		dst, err = l.items[i].AppendPayload(dst)
		if err != nil {
			return dst, err
		}
	}

	return dst, nil
}
