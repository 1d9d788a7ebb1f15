package layout

import (
	"fmt"

	"github.com/smashforge/ssbh/internal/errs"
)

// FieldKind classifies a record field the way spec §3 classifies edges:
// inline (no pointer), pointer, array, or string.
type FieldKind uint8

const (
	FieldInline FieldKind = iota
	FieldPointer
	FieldArray
	FieldString
)

func (k FieldKind) String() string {
	switch k {
	case FieldPointer:
		return "pointer"
	case FieldArray:
		return "array"
	case FieldString:
		return "string"
	default:
		return "inline"
	}
}

// FieldDescriptor documents one field of a record schema: its name, kind,
// and (for pointer-like kinds) the alignment its target requires. No
// record type in this module exposes a []FieldDescriptor list of its
// fields; the reader/writer functions are hand-written per type for
// speed and clarity, the same way the teacher's NumericHeader and
// TextHeader each hand-write Parse/Bytes rather than share one reflective
// serializer.
type FieldDescriptor struct {
	Name  string
	Kind  FieldKind
	Align int // meaningful only when Kind != FieldInline; 0 means DefaultAlignment
}

// Alignment returns the field's declared alignment, defaulting to
// DefaultAlignment when unset.
func (f FieldDescriptor) Alignment() int {
	if f.Align == 0 {
		return DefaultAlignment
	}

	return f.Align
}

// Sized is implemented by the record types laid out as array elements
// (AimConstraint, Bone, MatlEntry and the like); top-level records such as
// Hlpb or Anim do not implement it. SizeInBytes is the on-disk
// size of the type's fields in declaration order, including internal
// padding. For a discriminated union it is the size of the currently
// selected variant (spec §4.2).
type Sized interface {
	SizeInBytes() int
}

// Aligned is implemented by record types that require more than
// DefaultAlignment when pointed to. Types without this method are assumed
// to use DefaultAlignment.
type Aligned interface {
	Alignment() int
}

// AlignmentOf returns v's declared alignment via the Aligned interface, or
// DefaultAlignment if v does not implement it.
func AlignmentOf(v any) int {
	if a, ok := v.(Aligned); ok {
		return a.Alignment()
	}

	return DefaultAlignment
}

// Bits32 is a 32-bit flag bitfield packed with named bit positions, per
// spec §4.5's "flag bitfields packed into an integer with named bit
// positions."
type Bits32 uint32

// Get extracts a width-bit field starting at bit position pos.
func (b Bits32) Get(pos, width int) uint32 {
	mask := uint32(1)<<uint(width) - 1
	return (uint32(b) >> uint(pos)) & mask
}

// Set returns a copy of b with the width-bit field at pos replaced by v.
func (b Bits32) Set(pos, width int, v uint32) Bits32 {
	mask := uint32(1)<<uint(width) - 1
	cleared := uint32(b) &^ (mask << uint(pos))

	return Bits32(cleared | (v&mask)<<uint(pos))
}

// Discriminant resolves a tagged-union discriminant value to a variant
// name using a value-to-variant map supplied by the schema (spec §4.5:
// "tagged unions discriminated by a preceding integer field; value-to-
// variant mapping is part of the schema"). It fails fast — per spec §4.3,
// an unknown discriminant is never silently coerced to a default variant.
func Discriminant[V comparable](value V, variants map[V]string) (string, error) {
	name, ok := variants[value]
	if !ok {
		return "", fmt.Errorf("%w: value %v", errs.ErrInvalidDiscriminant, value)
	}

	return name, nil
}
