package tag

import (
	"github.com/chaisql/nbt/internal/encoding"
)

// A Field is a named tag inside a compound.
type Field struct {
	Name  string
	Value Tag
}

// F returns a field. It is a shorthand for building compounds.
func F(name string, v Tag) Field {
	return Field{Name: name, Value: v}
}

// A Compound is an ordered sequence of named tags.
// Fields keep the order in which they were added, and are encoded in that order.
// Names are expected to be unique, but this is not enforced.
// A nil *Compound is empty.
type Compound struct {
	fields []Field
}

// NewCompound returns a compound holding a copy of fields.
func NewCompound(fields ...Field) *Compound {
	var c Compound
	if len(fields) > 0 {
		c.fields = make([]Field, len(fields))
		copy(c.fields, fields)
	}
	return &c
}

func (*Compound) Kind() Kind { return KindCompound }

// Len returns the number of fields.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// At returns the i-th field.
func (c *Compound) At(i int) Field {
	return c.fields[i]
}

// Get returns the value of the first field with the given name.
func (c *Compound) Get(name string) (Tag, bool) {
	for i := 0; i < c.Len(); i++ {
		if c.fields[i].Name == name {
			return c.fields[i].Value, true
		}
	}

	return nil, false
}

// Names returns the field names in order.
func (c *Compound) Names() []string {
	names := make([]string, c.Len())
	for i := range names {
		names[i] = c.fields[i].Name
	}
	return names
}

// Fields returns a copy of the fields.
func (c *Compound) Fields() []Field {
	if c.Len() == 0 {
		return nil
	}

	fields := make([]Field, len(c.fields))
	copy(fields, c.fields)
	return fields
}

// Iterate calls fn for each field, in order.
// If fn returns an error, the iteration stops.
func (c *Compound) Iterate(fn func(name string, v Tag) error) error {
	for i := 0; i < c.Len(); i++ {
		if err := fn(c.fields[i].Name, c.fields[i].Value); err != nil {
			return err
		}
	}

	return nil
}

// With returns a copy of c where the first field called name holds v.
// If there is no such field, it is added at the end.
func (c *Compound) With(name string, v Tag) *Compound {
	fields := make([]Field, c.Len(), c.Len()+1)
	if c != nil {
		copy(fields, c.fields)
	}

	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = v
			return &Compound{fields: fields}
		}
	}

	return &Compound{fields: append(fields, Field{Name: name, Value: v})}
}

func (c *Compound) Size() int {
	n := 1
	for i := 0; i < c.Len(); i++ {
		f := c.fields[i]
		n += 1 + 2 + len(f.Name)
		if f.Value != nil {
			n += f.Value.Size()
		}
	}
	return n
}

// AppendPayload writes every field as a kind byte, a name and a payload,
// followed by the End byte.
func (c *Compound) AppendPayload(dst []byte) ([]byte, error) {
	var err error

	for i := 0; i < c.Len(); i++ {
		f := c.fields[i]
		if f.Value == nil {
			return dst, encoding.Errorf(len(dst), encoding.ErrEncoding, "field %q has no value", f.Name)
		}

		k := f.Value.Kind()
		if k == KindEnd || !k.Valid() {
			return dst, encoding.Errorf(len(dst), encoding.ErrEncoding, "field %q cannot be of kind %s", f.Name, k)
		}

		dst = append(dst, byte(k))
		dst, err = encoding.AppendString(dst, f.Name)
		if err != nil {
			return dst, err
		}

		dst, err = f.Value.AppendPayload(dst)
		if err != nil {
			return dst, err
		}
	}

	return append(dst, byte(KindEnd)), nil
}

// String returns the typed JSON representation of the compound.
func (c *Compound) String() string {
	b, err := MarshalJSON(c)
	if err != nil {
		return "!(" + err.Error() + ")"
	}
	return string(b)
}
