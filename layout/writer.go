package layout

import (
	"math"

	"github.com/smashforge/ssbh/internal/pool"
)

// Writer emits a record tree to an in-memory buffer, implementing the
// two-pass algorithm of spec §4.4: it interleaves header writes and
// pointer-target writes via seeks, using a single monotonic data pointer
// (dataPtr) rather than buffering targets and splicing them in afterward.
//
// cursor is the writer's current write position; it only ever moves
// forward within a single record's own field list, though it seeks around
// to fill pointer targets. dataPtr is the absolute position where the next
// pointer target will be placed, and never decreases.
type Writer struct {
	buf     *pool.ByteBuffer
	cursor  int
	dataPtr int
}

// NewWriter creates a Writer with a pooled backing buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.Get()}
}

// NewWriterWithOptions creates a Writer the same way NewWriter does, except
// a non-zero opts.InitialBufferSize bypasses the package-level default pool
// in favor of a freshly sized buffer — useful when the caller already knows
// roughly how large the record it is about to write will be.
func NewWriterWithOptions(opts WriterOptions) *Writer {
	if opts.InitialBufferSize <= 0 {
		return NewWriter()
	}

	return &Writer{buf: pool.NewByteBuffer(opts.InitialBufferSize)}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Release returns the writer's backing buffer to the pool. The Writer must
// not be used afterward.
func (w *Writer) Release() {
	pool.Put(w.buf)
	w.buf = nil
}

// Pos returns the writer's current cursor position.
func (w *Writer) Pos() int { return w.cursor }

func (w *Writer) writeAt(b []byte) {
	w.buf.WriteAt(w.cursor, b)
	w.cursor += len(b)
}

func (w *Writer) WriteU8(v uint8) { w.writeAt([]byte{v}) }

func (w *Writer) WriteI8(v int8) { w.WriteU8(uint8(v)) }

func (w *Writer) WriteU16(v uint16) {
	w.writeAt([]byte{byte(v), byte(v >> 8)})
}

func (w *Writer) WriteI16(v int16) { w.WriteU16(uint16(v)) }

func (w *Writer) WriteU32(v uint32) {
	w.writeAt([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) }

func (w *Writer) WriteU64(v uint64) {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(8*i))
	}
	w.writeAt(b)
}

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

func (w *Writer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }

func (w *Writer) WriteF64(v float64) { w.WriteU64(math.Float64bits(v)) }

// WriteF16 narrows v to IEEE-754 binary16 before writing, per spec §4.1.
func (w *Writer) WriteF16(v float32) { w.WriteU16(Float32ToFloat16(v)) }

// WriteBytes writes raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) { w.writeAt(b) }

// WriteZero writes n zero bytes.
func (w *Writer) WriteZero(n int) { w.writeAt(make([]byte, n)) }

// WriteRecord implements the top-of-algorithm check of spec §4.4 step 1:
// it ensures dataPtr never targets bytes inside this record's own
// footprint before fn writes the record's fields, then pins the cursor to
// exactly start+size once fn returns, regardless of what fn wrote. This
// single check is what guarantees the non-aliasing invariant recursively —
// every nested WriteRecord/WritePointer/WriteArray/WriteString call
// inherits a dataPtr that already clears everything written so far.
func (w *Writer) WriteRecord(size int, fn func(w *Writer) error) error {
	start := w.cursor
	if w.dataPtr < start+size {
		w.dataPtr = start + size
	}

	if err := fn(w); err != nil {
		return err
	}

	w.cursor = start + size

	return nil
}

// WritePointer writes a pointer-like field. If isNull, it writes a zero
// offset and does not advance dataPtr. Otherwise it aligns dataPtr up to
// align, writes the relative offset, seeks to dataPtr, lets fn write the
// target, then restores the cursor — see spec §4.4 step 2.
func (w *Writer) WritePointer(align int, isNull bool, fn func(w *Writer) error) error {
	if isNull {
		w.WriteI64(0)
		return nil
	}

	fieldPos := w.cursor
	w.dataPtr = AlignUp(w.dataPtr, align)
	relative := int64(w.dataPtr - fieldPos)
	w.WriteI64(relative)

	saved := w.cursor
	w.cursor = w.dataPtr

	if err := fn(w); err != nil {
		return err
	}

	if w.cursor > w.dataPtr {
		w.dataPtr = w.cursor
	}
	w.cursor = saved

	return nil
}

// WriteArray writes an array field: a relative offset plus element count,
// followed (out of line) by count elements of elemSize bytes each, laid
// out contiguously. dataPtr is bumped past the whole array's footprint
// before any element is written, so an element's own pointer targets
// always land past the array's end rather than interleaved with elements
// (spec §4.4 tie-break: "an array whose element type itself contains
// pointer fields").
func (w *Writer) WriteArray(align, count, elemSize int, elem func(w *Writer, i int) error) error {
	if count == 0 {
		w.WriteI64(0)
		w.WriteU64(0)

		return nil
	}

	fieldPos := w.cursor
	w.dataPtr = AlignUp(w.dataPtr, align)
	relative := int64(w.dataPtr - fieldPos)
	w.WriteI64(relative)
	w.WriteU64(uint64(count))

	saved := w.cursor
	w.cursor = w.dataPtr

	arrayEnd := w.cursor + elemSize*count
	if w.dataPtr < arrayEnd {
		w.dataPtr = arrayEnd
	}

	for i := 0; i < count; i++ {
		if err := elem(w, i); err != nil {
			return err
		}
	}

	if w.cursor > w.dataPtr {
		w.dataPtr = w.cursor
	}
	w.cursor = saved

	return nil
}

// WriteByteArray writes an array-of-bytes field the same way WriteArray
// does — relative offset, element count, out-of-line payload — but writes
// the whole run with one WriteBytes call instead of one WriteU8 per
// element. Only safe for element types with no nested pointer fields,
// which is the only kind of byte array this codebase ever writes.
func (w *Writer) WriteByteArray(align int, data []byte) error {
	if len(data) == 0 {
		w.WriteI64(0)
		w.WriteU64(0)

		return nil
	}

	fieldPos := w.cursor
	w.dataPtr = AlignUp(w.dataPtr, align)
	relative := int64(w.dataPtr - fieldPos)
	w.WriteI64(relative)
	w.WriteU64(uint64(len(data)))

	saved := w.cursor
	w.cursor = w.dataPtr

	w.WriteBytes(data)

	if w.cursor > w.dataPtr {
		w.dataPtr = w.cursor
	}
	w.cursor = saved

	return nil
}

// WriteString writes a string field. A nil s writes a null offset. An
// empty (non-nil, zero-length) *s writes an offset to align-many zero
// bytes. Otherwise it writes the NUL-terminated content out of line — spec
// §3 invariant 5 and §4.4 tie-break.
func (w *Writer) WriteString(align int, s *string) error {
	if s == nil {
		w.WriteI64(0)
		return nil
	}

	content := *s
	fieldPos := w.cursor
	w.dataPtr = AlignUp(w.dataPtr, align)
	relative := int64(w.dataPtr - fieldPos)
	w.WriteI64(relative)

	saved := w.cursor
	w.cursor = w.dataPtr

	if content == "" {
		w.WriteZero(align)
	} else {
		w.WriteBytes([]byte(content))
		w.WriteU8(0)
	}

	if w.cursor > w.dataPtr {
		w.dataPtr = w.cursor
	}
	w.cursor = saved

	return nil
}
