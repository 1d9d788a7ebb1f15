package schema

import (
	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/layout"
)

// AttributeDescriptor locates one vertex attribute stream within a Mesh
// object's raw vertex buffers: which buffer, the byte offset of the first
// vector, the byte stride between vectors, and how to interpret each
// vector's components. This is the raw, binary-layout-facing sibling of
// data.MeshAttribute, which is decoded/encoded from it.
type AttributeDescriptor struct {
	Name          string
	Semantic      format.AttributeSemantic
	SubIndex      int32
	BufferIndex   uint8
	BufferOffset  uint32
	Stride        uint32
	ComponentType format.ComponentType
	ComponentCount uint8
}

const attributeDescriptorSize = 8 + (1 + 3) + 4 + (1 + 3) + 4 + 4 + (1 + 3) + (1 + 3)

func (AttributeDescriptor) SizeInBytes() int { return attributeDescriptorSize }

// MeshObject is one sub-mesh: a name, a vertex count, an index count, the
// attribute descriptors locating its vertex streams, the raw vertex
// buffers those descriptors index into, and the raw index buffer.
type MeshObject struct {
	Name          string
	SubIndex      int64
	VertexCount   uint32
	IndexCount    uint32
	Attributes    []AttributeDescriptor
	VertexBuffers [][]byte
	IndexBuffer   []byte
	DrawElementType uint32 // 0 = uint16, 1 = uint32
}

// Mesh is the mesh record, versions 1.8, 1.9, and 1.10. The three
// versions share this schema; they differ only in how
// data.MeshData.ToMesh chooses interleaved-vs-separate buffer layout (see
// data/mesh_data.go).
type Mesh struct {
	Objects []MeshObject
}

func ReadMesh(r *layout.Reader, v format.Version) (*Mesh, error) {
	m := &Mesh{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		o, err := readMeshObject(r, v)
		if err != nil {
			return err
		}
		m.Objects = append(m.Objects, o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func readMeshObject(r *layout.Reader, v format.Version) (MeshObject, error) {
	var o MeshObject
	var err error

	if o.Name, _, err = r.ReadString(); err != nil {
		return o, err
	}
	if o.SubIndex, err = r.ReadI64(); err != nil {
		return o, err
	}
	if o.VertexCount, err = r.ReadU32(); err != nil {
		return o, err
	}
	if o.IndexCount, err = r.ReadU32(); err != nil {
		return o, err
	}
	if o.DrawElementType, err = r.ReadU32(); err != nil {
		return o, err
	}
	if _, err = r.ReadBytes(4); err != nil { // pad
		return o, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		a, err := readAttributeDescriptor(r)
		if err != nil {
			return err
		}
		o.Attributes = append(o.Attributes, a)
		return nil
	})
	if err != nil {
		return o, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		buf, err := r.ReadByteArray()
		if err != nil {
			return err
		}
		o.VertexBuffers = append(o.VertexBuffers, buf)
		return nil
	})
	if err != nil {
		return o, err
	}

	o.IndexBuffer, err = r.ReadByteArray()

	return o, err
}

func readAttributeDescriptor(r *layout.Reader) (AttributeDescriptor, error) {
	var a AttributeDescriptor
	var err error

	if a.Name, _, err = r.ReadString(); err != nil {
		return a, err
	}

	semantic, err := r.ReadU8()
	if err != nil {
		return a, err
	}
	a.Semantic = format.AttributeSemantic(semantic)
	if _, err = r.ReadBytes(3); err != nil {
		return a, err
	}

	if a.SubIndex, err = r.ReadI32(); err != nil {
		return a, err
	}

	bufIdx, err := r.ReadU8()
	if err != nil {
		return a, err
	}
	a.BufferIndex = bufIdx
	if _, err = r.ReadBytes(3); err != nil {
		return a, err
	}

	if a.BufferOffset, err = r.ReadU32(); err != nil {
		return a, err
	}
	if a.Stride, err = r.ReadU32(); err != nil {
		return a, err
	}

	ct, err := r.ReadU8()
	if err != nil {
		return a, err
	}
	a.ComponentType = format.ComponentType(ct)
	if _, err = r.ReadBytes(3); err != nil {
		return a, err
	}

	cc, err := r.ReadU8()
	if err != nil {
		return a, err
	}
	a.ComponentCount = cc
	_, err = r.ReadBytes(3)

	return a, err
}

// meshObjectSize is MeshObject's fixed inline footprint: a string
// pointer, the i64 SubIndex, three u32 fields plus padding, and three
// array descriptors
// (Attributes, VertexBuffers, IndexBuffer).
const meshObjectSize = 8 + 8 + 4 + 4 + 4 + 4 + 16 + 16 + 16

func WriteMesh(w *layout.Writer, m *Mesh, v format.Version) error {
	objects := m.Objects
	return w.WriteRecord(16, func(w *layout.Writer) error {
		return w.WriteArray(layout.DefaultAlignment, len(objects), meshObjectSize, func(w *layout.Writer, i int) error {
			return writeMeshObject(w, objects[i], v)
		})
	})
}

func writeMeshObject(w *layout.Writer, o MeshObject, v format.Version) error {
	name := o.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	w.WriteI64(o.SubIndex)
	w.WriteU32(o.VertexCount)
	w.WriteU32(o.IndexCount)
	w.WriteU32(o.DrawElementType)
	w.WriteZero(4)

	attrs := o.Attributes
	err := w.WriteArray(layout.DefaultAlignment, len(attrs), attributeDescriptorSize, func(w *layout.Writer, i int) error {
		return writeAttributeDescriptor(w, attrs[i])
	})
	if err != nil {
		return err
	}

	buffers := o.VertexBuffers
	err = w.WriteArray(layout.DefaultAlignment, len(buffers), 16, func(w *layout.Writer, i int) error {
		return w.WriteByteArray(layout.DefaultAlignment, buffers[i])
	})
	if err != nil {
		return err
	}

	return w.WriteByteArray(layout.DefaultAlignment, o.IndexBuffer)
}

func writeAttributeDescriptor(w *layout.Writer, a AttributeDescriptor) error {
	name := a.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}

	w.WriteU8(uint8(a.Semantic))
	w.WriteZero(3)
	w.WriteI32(a.SubIndex)
	w.WriteU8(a.BufferIndex)
	w.WriteZero(3)
	w.WriteU32(a.BufferOffset)
	w.WriteU32(a.Stride)
	w.WriteU8(uint8(a.ComponentType))
	w.WriteZero(3)
	w.WriteU8(a.ComponentCount)
	w.WriteZero(3)

	return nil
}
