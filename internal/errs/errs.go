// Package errs defines the sentinel errors returned across the ssbh layout
// engine, schema, and data-layer packages. Callers should compare with
// errors.Is rather than type assertions.
package errs

import "errors"

// Structural errors (layout engine: reader, writer, schema).
var (
	ErrUnknownMagic        = errors.New("ssbh: unknown magic number")
	ErrUnsupportedVersion  = errors.New("ssbh: unsupported version")
	ErrInvalidDiscriminant = errors.New("ssbh: invalid discriminant value for tagged union")
	ErrNegativeOffset      = errors.New("ssbh: negative relative offset")
	ErrOffsetOutOfBounds   = errors.New("ssbh: offset out of bounds")
	ErrInvalidArray        = errors.New("ssbh: array has non-zero count with null offset")
	ErrNulMissing          = errors.New("ssbh: NUL terminator missing from string")
	ErrEof                 = errors.New("ssbh: unexpected end of buffer")
	ErrTrailingGarbage     = errors.New("ssbh: trailing bytes after last reachable record")
)

// Codec errors (vertex-buffer codec, animation track codec).
var (
	ErrUnsupportedMeshVersion   = errors.New("ssbh: unsupported mesh version")
	ErrUnknownAttributeSemantic = errors.New("ssbh: unknown vertex attribute semantic")
	ErrAttributeOutOfBounds     = errors.New("ssbh: vertex attribute read out of bounds")
	ErrTrackBitWidthTooSmall    = errors.New("ssbh: no bit width in range satisfies the quantization error threshold")
	ErrNonUnitQuaternion        = errors.New("ssbh: rotation keyframe is not a unit quaternion")
)

// I/O errors.
var (
	ErrReadIo  = errors.New("ssbh: read failed")
	ErrWriteIo = errors.New("ssbh: write failed")
)

// Name-index errors (data layer supplement).
var (
	ErrDuplicateName = errors.New("ssbh: duplicate name without distinguishing subindex")
	ErrNameNotFound  = errors.New("ssbh: name not found in index")
)
