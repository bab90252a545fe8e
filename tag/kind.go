package tag

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/cockroachdb/errors"
)

// Kind is the one-byte identifier written before every named tag.
type Kind uint8

// List of tag kinds, in wire order.
const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

var kindNames = [...]string{
	KindEnd:       "end",
	KindByte:      "byte",
	KindShort:     "short",
	KindInt:       "int",
	KindLong:      "long",
	KindFloat:     "float",
	KindDouble:    "double",
	KindByteArray: "byte-array",
	KindString:    "string",
	KindList:      "list",
	KindCompound:  "compound",
	KindIntArray:  "int-array",
	KindLongArray: "long-array",
}

// Valid reports whether k is one of the twelve defined kinds or End.
func (k Kind) Valid() bool {
	return k <= KindLongArray
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}

	return kindNames[k]
}

// Width returns the payload size of fixed-width kinds, or -1 if the size
// depends on the data.
func (k Kind) Width() int {
	switch k {
	case KindEnd:
		return 0
	case KindByte:
		return encoding.ByteWidth
	case KindShort:
		return encoding.ShortWidth
	case KindInt:
		return encoding.IntWidth
	case KindLong:
		return encoding.LongWidth
	case KindFloat:
		return encoding.FloatWidth
	case KindDouble:
		return encoding.DoubleWidth
	}

	return -1
}

// MinSize returns the smallest number of bytes a payload of kind k can occupy.
func (k Kind) MinSize() int {
	switch k {
	case KindByteArray, KindIntArray, KindLongArray:
		return 4
	case KindString:
		return 2
	case KindList:
		return 5
	case KindCompound:
		return 1
	}

	if w := k.Width(); w > 0 {
		return w
	}
	return 0
}

// ParseKind returns the kind named s, as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}

	if best := closestKindName(s); best != "" {
		return 0, errors.Newf("unknown tag kind %q, did you mean %q?", s, best)
	}
	return 0, errors.Newf("unknown tag kind %q", s)
}

func closestKindName(s string) string {
	s = strings.ToLower(s)
	best, bestDist := "", 3
	for _, name := range kindNames {
		d := levenshtein.ComputeDistance(s, name)
		if d < bestDist {
			best, bestDist = name, d
		}
	}

	return best
}
