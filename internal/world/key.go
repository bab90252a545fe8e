// Package world maps the records of a world database to NBT documents.
//
// Chunk records are keyed by the chunk coordinates, the dimension and a
// record type. Some record types hold a sequence of NBT root compounds, for
// example one per entity standing in the chunk.
package world

import (
	"fmt"
	"strconv"

	"github.com/agnivade/levenshtein"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/cockroachdb/errors"
)

// A Dimension identifies one of the worlds of a save.
type Dimension int32

const (
	Overworld Dimension = 0
	Nether    Dimension = 1
	TheEnd    Dimension = 2
)

func (d Dimension) String() string {
	switch d {
	case Overworld:
		return "overworld"
	case Nether:
		return "nether"
	case TheEnd:
		return "the-end"
	}

	return fmt.Sprintf("dimension(%d)", int32(d))
}

// ParseDimension returns the dimension named s, or with the number s.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range []Dimension{Overworld, Nether, TheEnd} {
		if d.String() == s {
			return d, nil
		}
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.Newf("unknown dimension %q", s)
	}
	return Dimension(n), nil
}

// A Key identifies a chunk record.
//
// Its binary form is X and Z as 4-byte little-endian integers, the dimension
// as a 4-byte integer unless it is the overworld, the record type byte and,
// for sub-chunks only, the sub-chunk index.
type Key struct {
	X, Z      int32
	Dimension Dimension
	Type      RecordType
	SubChunk  int8
}

// ParseKey decodes a chunk record key. It returns false if k is not the key
// of a known chunk record.
func ParseKey(k []byte) (Key, bool) {
	var key Key

	switch len(k) {
	case 9, 10:
		key.Type = RecordType(k[8])
	case 13, 14:
		key.Dimension = Dimension(encoding.DecodeInt32(k[8:]))
		if key.Dimension != Nether && key.Dimension != TheEnd {
			return Key{}, false
		}
		key.Type = RecordType(k[12])
	default:
		return Key{}, false
	}

	if !key.Type.Valid() {
		return Key{}, false
	}

	hasIndex := len(k) == 10 || len(k) == 14
	if hasIndex != (key.Type == SubChunkPrefix) {
		return Key{}, false
	}
	if hasIndex {
		key.SubChunk = int8(k[len(k)-1])
	}

	key.X = encoding.DecodeInt32(k)
	key.Z = encoding.DecodeInt32(k[4:])
	return key, true
}

// Encode returns the binary form of the key.
func (k Key) Encode() []byte {
	b := make([]byte, 0, 14)
	b = encoding.AppendInt32(b, k.X)
	b = encoding.AppendInt32(b, k.Z)
	if k.Dimension != Overworld {
		b = encoding.AppendInt32(b, int32(k.Dimension))
	}
	b = append(b, byte(k.Type))
	if k.Type == SubChunkPrefix {
		b = append(b, byte(k.SubChunk))
	}

	return b
}

func (k Key) String() string {
	s := fmt.Sprintf("%s(%d, %d)", k.Type, k.X, k.Z)
	if k.Type == SubChunkPrefix {
		s += fmt.Sprintf("[%d]", k.SubChunk)
	}
	if k.Dimension != Overworld {
		s += "@" + k.Dimension.String()
	}
	return s
}

// A RecordType tells what a chunk record holds.
type RecordType byte

// Record types found in chunk keys.
const (
	Data3D               RecordType = 43
	Version              RecordType = 44
	Data2D               RecordType = 45
	Data2DLegacy         RecordType = 46
	SubChunkPrefix       RecordType = 47
	LegacyTerrain        RecordType = 48
	BlockEntity          RecordType = 49
	Entity               RecordType = 50
	PendingTicks         RecordType = 51
	LegacyBlockExtraData RecordType = 52
	BiomeState           RecordType = 53
	FinalizedState       RecordType = 54
	BorderBlocks         RecordType = 56
	HardcodedSpawners    RecordType = 57
	RandomTicks          RecordType = 58
	Checksums            RecordType = 59
	LegacyVersion        RecordType = 118
)

var recordTypeNames = map[RecordType]string{
	Data3D:               "data-3d",
	Version:              "version",
	Data2D:               "data-2d",
	Data2DLegacy:         "data-2d-legacy",
	SubChunkPrefix:       "sub-chunk",
	LegacyTerrain:        "legacy-terrain",
	BlockEntity:          "block-entity",
	Entity:               "entity",
	PendingTicks:         "pending-ticks",
	LegacyBlockExtraData: "legacy-block-extra-data",
	BiomeState:           "biome-state",
	FinalizedState:       "finalized-state",
	BorderBlocks:         "border-blocks",
	HardcodedSpawners:    "hardcoded-spawners",
	RandomTicks:          "random-ticks",
	Checksums:            "checksums",
	LegacyVersion:        "legacy-version",
}

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	_, ok := recordTypeNames[t]
	return ok
}

// HoldsNBT reports whether records of this type are NBT documents.
func (t RecordType) HoldsNBT() bool {
	switch t {
	case BlockEntity, Entity, PendingTicks, RandomTicks:
		return true
	}

	return false
}

func (t RecordType) String() string {
	if name, ok := recordTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("record(%d)", byte(t))
}

// ParseRecordType returns the record type named s, or with the number s.
func ParseRecordType(s string) (RecordType, error) {
	best, bestDist := "", 4
	for t, name := range recordTypeNames {
		if name == s {
			return t, nil
		}

		if d := levenshtein.ComputeDistance(s, name); d < bestDist || (d == bestDist && name < best) {
			best, bestDist = name, d
		}
	}

	if n, err := strconv.ParseUint(s, 10, 8); err == nil && RecordType(n).Valid() {
		return RecordType(n), nil
	}

	if best != "" {
		return 0, errors.Newf("unknown record type %q, did you mean %q?", s, best)
	}
	return 0, errors.Newf("unknown record type %q", s)
}
