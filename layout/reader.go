// Package layout implements the generic binary layout engine described by
// the file format's relative-offset record trees: a little-endian
// primitive codec, a two-pass reader that follows pointer chains, and a
// two-pass writer that lays out pointer targets in field-declaration order
// while maintaining a single monotonic data pointer.
//
// A record type plugs into the engine through a read function and a write
// function (ReadHlpbV1_1/WriteHlpbV1_1 and the like in the schema package)
// that call the primitive and pointer-field methods below in
// declaration order — the same shape the teacher uses for its fixed-size
// section headers (Parse/Bytes), generalized here to records with pointer
// fields and recursive children.
package layout

import (
	"math"

	"github.com/smashforge/ssbh/internal/errs"
)

// Reader reads a record tree from an in-memory buffer, resolving relative
// offsets as it encounters pointer-like fields. It is not safe for
// concurrent use; a single Reader owns one read of one file.
type Reader struct {
	data []byte
	pos  int

	// trailing tracks the furthest byte position reached by any read,
	// inline or pointed-to. Used to compute TrailingGarbage.
	trailing int
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current absolute read position.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.data) }

// Seek moves the read cursor to an absolute position within the buffer.
// Seeking past the end of the buffer is allowed (it will fail on the next
// read) so a caller can seek to a computed end-of-record position.
func (r *Reader) Seek(pos int) {
	r.pos = pos
}

func (r *Reader) markTrailing() {
	if r.pos > r.trailing {
		r.trailing = r.pos
	}
}

// TrailingGarbage reports whether any bytes after the furthest point
// reached by a read remain unaccounted for, and how many. Call once at the
// top level after reading the root record.
func (r *Reader) TrailingGarbage() (n int, has bool) {
	n = len(r.data) - r.trailing
	return n, n > 0
}

func (r *Reader) need(n int) error {
	if r.pos < 0 || r.pos+n > len(r.data) {
		return errs.ErrEof
	}

	return nil
}

// ReadBytes reads n raw bytes and advances the cursor.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n
	r.markTrailing()

	return b, nil
}

// ReadFixed reads exactly len(dst) bytes into dst.
func (r *Reader) ReadFixed(dst []byte) error {
	b, err := r.ReadBytes(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)

	return nil
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v, nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// ReadF16 reads an IEEE-754 binary16 value and widens it to float32 for
// in-memory exposure, per spec §4.1.
func (r *Reader) ReadF16() (float32, error) {
	v, err := r.ReadU16()
	if err != nil {
		return 0, err
	}

	return Float16ToFloat32(v), nil
}

// ReadPointer resolves a relative-offset field. If the field's value is 0
// (null), fn is not called and null is true. Otherwise the cursor is
// seeked to the resolved absolute position, fn reads the pointee, and the
// cursor is restored to just past the offset field.
//
// ReadPointer does not check the target's alignment (spec invariant 4): a
// misaligned target is followed as-is.
func (r *Reader) ReadPointer(fn func(r *Reader) error) (null bool, err error) {
	fieldPos := r.pos

	raw, err := r.ReadI64()
	if err != nil {
		return false, err
	}

	if raw == 0 {
		return true, nil
	}
	if raw < 0 {
		return false, errs.ErrNegativeOffset
	}

	abs := fieldPos + int(raw)
	if abs < 0 || abs > len(r.data) {
		return false, errs.ErrOffsetOutOfBounds
	}

	after := r.pos
	r.Seek(abs)

	if err := fn(r); err != nil {
		return false, err
	}

	r.markTrailing()
	r.Seek(after)

	return false, nil
}

// ReadArray resolves an array field: an 8-byte relative offset followed by
// an 8-byte element count. If count is 0 the offset must also be 0 (spec
// §4.3 edge-case policy); otherwise the cursor seeks to the resolved
// position and elem is called once per element, in order, with the cursor
// positioned at that element's start.
func (r *Reader) ReadArray(elem func(r *Reader, i int) error) (count int, err error) {
	fieldPos := r.pos

	raw, err := r.ReadI64()
	if err != nil {
		return 0, err
	}

	cnt, err := r.ReadU64()
	if err != nil {
		return 0, err
	}

	if cnt == 0 {
		if raw != 0 {
			return 0, errs.ErrInvalidArray
		}

		return 0, nil
	}

	if raw == 0 {
		return 0, errs.ErrInvalidArray
	}
	if raw < 0 {
		return 0, errs.ErrNegativeOffset
	}

	abs := fieldPos + int(raw)
	if abs < 0 || abs > len(r.data) {
		return 0, errs.ErrOffsetOutOfBounds
	}

	after := r.pos
	r.Seek(abs)

	for i := 0; i < int(cnt); i++ {
		if err := elem(r, i); err != nil {
			return 0, err
		}
	}

	r.markTrailing()
	r.Seek(after)

	return int(cnt), nil
}

// ReadByteArray resolves an array-of-bytes field the same way ReadArray
// does — relative offset, element count, seek, restore — but reads the
// whole run with one ReadBytes call instead of one ReadU8 per element,
// for fields whose element type carries no nested pointers of its own
// (raw vertex/index buffers, bit-packed animation channels).
func (r *Reader) ReadByteArray() ([]byte, error) {
	fieldPos := r.pos

	raw, err := r.ReadI64()
	if err != nil {
		return nil, err
	}

	cnt, err := r.ReadU64()
	if err != nil {
		return nil, err
	}

	if cnt == 0 {
		if raw != 0 {
			return nil, errs.ErrInvalidArray
		}

		return nil, nil
	}

	if raw == 0 {
		return nil, errs.ErrInvalidArray
	}
	if raw < 0 {
		return nil, errs.ErrNegativeOffset
	}

	abs := fieldPos + int(raw)
	if abs < 0 || abs > len(r.data) {
		return nil, errs.ErrOffsetOutOfBounds
	}

	after := r.pos
	r.Seek(abs)

	b, err := r.ReadBytes(int(cnt))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)

	r.markTrailing()
	r.Seek(after)

	return out, nil
}

// ReadString resolves a string field: an 8-byte relative offset to a
// NUL-terminated byte sequence. A null offset yields ("", true). A
// non-null offset pointing at an immediate NUL yields ("", false) — the
// empty-but-present string spec §3 distinguishes from null.
func (r *Reader) ReadString() (value string, isNull bool, err error) {
	fieldPos := r.pos

	raw, err := r.ReadI64()
	if err != nil {
		return "", false, err
	}

	if raw == 0 {
		return "", true, nil
	}
	if raw < 0 {
		return "", false, errs.ErrNegativeOffset
	}

	abs := fieldPos + int(raw)
	if abs < 0 || abs > len(r.data) {
		return "", false, errs.ErrOffsetOutOfBounds
	}

	after := r.pos
	r.Seek(abs)

	start := abs
	end := abs
	for {
		if end >= len(r.data) {
			r.Seek(after)
			return "", false, errs.ErrNulMissing
		}
		if r.data[end] == 0 {
			break
		}
		end++
	}

	r.Seek(end + 1)
	r.markTrailing()
	r.Seek(after)

	return string(r.data[start:end]), false, nil
}
