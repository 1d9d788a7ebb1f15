package pool

import "sync"

// Typed slice pools used by the vertex-buffer and animation-track codecs
// when decoding a Mesh index buffer or Anim channel into its normalized
// form. Each decode takes exactly one slice per index buffer/channel, so a
// pool matters for callers decoding many meshes or tracks in a loop.
var (
	float32SlicePool = sync.Pool{
		New: func() any { return &[]float32{} },
	}
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
)

// GetFloat32Slice retrieves a float32 slice of exact length size from the
// pool, allocating a new one if the pooled slice is too small. The caller
// must invoke the returned cleanup function (typically via defer) once done.
func GetFloat32Slice(size int) ([]float32, func()) {
	ptr, _ := float32SlicePool.Get().(*[]float32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float32SlicePool.Put(ptr) }
}

// GetUint32Slice retrieves a uint32 slice of exact length size from the
// pool, allocating a new one if the pooled slice is too small. Used for
// Mesh index buffers decoded from a 16- or 32-bit on-disk representation.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint32SlicePool.Put(ptr) }
}
