/*
Package nbt reads and writes little-endian NBT (Named Binary Tag) documents.

NBT is a self-describing binary format made of typed tags. This package
implements the little-endian variant, in which every multi-byte integer and
float is stored least significant byte first. It is not compatible with the
big-endian variant used by other tools.

# Documents

A buffer holds zero or more root compounds written back to back. Each root is
the compound kind byte (10), a name and a compound payload:

	roots, err := nbt.Decode(b)
	if err != nil {
		return err
	}
	for _, r := range roots {
		fmt.Println(r.Name, r.Compound)
	}

Encode is the exact inverse of Decode: for a well-formed buffer b,
Encode(Decode(b)) returns b byte for byte.

	b, err := nbt.Encode([]nbt.Root{
		{Name: "Data", Compound: tag.NewCompound(
			tag.F("HP", tag.Byte(-1)),
			tag.F("Age", tag.Short(300)),
		)},
	})

# Tags

The values of a document are defined in the tag package. Compounds keep
their fields in the order they were read or added, and lists only hold tags
of their declared element kind.

# Errors

Every error returned by the codec is an *Error carrying the byte offset at
which it was detected, and matches one of ErrFormat, ErrTruncated,
ErrEncoding or ErrMaxDepth with errors.Is. Decoding never returns partial
results.

# Untrusted input

Length prefixes are checked against the remaining bytes before anything is
allocated for them, and nesting is limited by DecodeOptions.MaxDepth. Callers
decoding untrusted input should still bound the size of the buffers they
accept.
*/
package nbt
