package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteArrayEmpty(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	err := w.WriteArray(8, 0, 4, func(w *Writer, i int) error {
		t.Fatal("elem called for empty array")
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, w.Bytes())
}

func TestWriteArraySingleElementU32(t *testing.T) {
	// Scenario 2: record {len:1, offset:8} at position 0, payload 0xDEADBEEF
	// at position 16 (8-byte aligned past the 16-byte record).
	w := NewWriter()
	defer w.Release()

	// Simulate a containing record of size 16 whose only field is this
	// array, by reserving 16 bytes via WriteRecord first.
	values := []uint32{0xDEADBEEF}
	err := w.WriteRecord(16, func(w *Writer) error {
		return w.WriteArray(8, len(values), 4, func(w *Writer, i int) error {
			w.WriteU32(values[i])
			return nil
		})
	})
	require.NoError(t, err)

	got := w.Bytes()
	require.Len(t, got, 20)

	r := NewReader(got)
	count, err := r.ReadArray(func(r *Reader, i int) error {
		v, err := r.ReadU32()
		require.NoError(t, err)
		require.Equal(t, uint32(0xDEADBEEF), v)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestWriteStringNullVsEmpty(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	var empty string = ""

	err := w.WriteRecord(16, func(w *Writer) error {
		if err := w.WriteString(4, nil); err != nil {
			return err
		}
		return w.WriteString(4, &empty)
	})
	require.NoError(t, err)

	got := w.Bytes()
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, got[0:8], "null offset")
	require.Equal(t, []byte{8, 0, 0, 0, 0, 0, 0, 0}, got[8:16], "empty string offset")
	require.Equal(t, []byte{0, 0, 0, 0}, got[16:20], "empty string's zero-byte region")

	r := NewReader(got)
	r.Seek(0)
	_, isNull, err := r.ReadString()
	require.NoError(t, err)
	require.True(t, isNull)

	value, isNull, err := r.ReadString()
	require.NoError(t, err)
	require.False(t, isNull)
	require.Equal(t, "", value)
}

func TestWriteNestedOffsetsPreserveOrder(t *testing.T) {
	// Two array elements, each with a string field. Element 0's string must
	// land before element 1's string (order preservation).
	type elem struct{ name string }
	elems := []elem{{"first"}, {"second"}}

	w := NewWriter()
	defer w.Release()

	// The array field itself is 16 bytes (offset + count); reserve that
	// footprint via WriteRecord so WriteArray's dataPtr bump doesn't
	// collide with its own header.
	err := w.WriteRecord(16, func(w *Writer) error {
		return w.WriteArray(8, len(elems), 8, func(w *Writer, i int) error {
			name := elems[i].name
			return w.WriteString(1, &name)
		})
	})
	require.NoError(t, err)

	got := w.Bytes()

	r := NewReader(got)
	var names []string
	var positions []int
	_, err = r.ReadArray(func(r *Reader, i int) error {
		start := r.Pos()
		rel, err := r.ReadI64()
		if err != nil {
			return err
		}
		positions = append(positions, start+int(rel))
		r.Seek(start)

		name, _, err := r.ReadString()
		if err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, names)
	require.Less(t, positions[0], positions[1])
}

func TestWriteRecordNonAliasing(t *testing.T) {
	// Writing two sibling pointer fields must not let either target
	// overlap the containing record's own footprint.
	w := NewWriter()
	defer w.Release()

	a, b := "a-content", "b-content"
	err := w.WriteRecord(16, func(w *Writer) error {
		if err := w.WriteString(8, &a); err != nil {
			return err
		}
		return w.WriteString(8, &b)
	})
	require.NoError(t, err)

	got := w.Bytes()
	require.GreaterOrEqual(t, len(got), 16)

	r := NewReader(got)
	v1, _, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "a-content", v1)

	v2, _, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "b-content", v2)
}
