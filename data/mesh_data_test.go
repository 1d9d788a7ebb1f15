package data

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/schema"
)

// buildInterleavedPositionNormal builds a raw Mesh 1.9 object with Position
// and Normal attributes interleaved into a single vertex buffer, matching
// how 1.8/1.9 share buffer 0 for that group.
func buildInterleavedPositionNormal() *schema.Mesh {
	buf := make([]byte, 0, 2*6*4)
	writeF32 := func(v float32) {
		bits := floatToBits(v)
		buf = append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	vertices := [][2][3]float32{
		{{0, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {0, 1, 0}},
	}
	for _, v := range vertices {
		for _, c := range v[0] {
			writeF32(c)
		}
		for _, c := range v[1] {
			writeF32(c)
		}
	}

	return &schema.Mesh{
		Objects: []schema.MeshObject{
			{
				Name:        "body",
				VertexCount: 2,
				IndexCount:  3,
				Attributes: []schema.AttributeDescriptor{
					{Name: "Position0", Semantic: format.AttributePosition, BufferIndex: 0, BufferOffset: 0, Stride: 24, ComponentType: format.ComponentFloat32, ComponentCount: 3},
					{Name: "Normal0", Semantic: format.AttributeNormal, BufferIndex: 0, BufferOffset: 12, Stride: 24, ComponentType: format.ComponentFloat32, ComponentCount: 3},
				},
				VertexBuffers:   [][]byte{buf},
				IndexBuffer:     []byte{0, 0, 1, 0, 2, 0},
				DrawElementType: 0,
			},
		},
	}
}

func TestNewMeshDataDecodesInterleavedAttributes(t *testing.T) {
	mesh := buildInterleavedPositionNormal()

	md, err := NewMeshData(mesh)
	require.NoError(t, err)
	require.Len(t, md.Objects, 1)

	obj := md.Objects[0]
	require.Equal(t, "body", obj.Name)
	require.Len(t, obj.Attributes, 2)

	var pos, norm *MeshAttribute
	for i := range obj.Attributes {
		switch obj.Attributes[i].Semantic {
		case format.AttributePosition:
			pos = &obj.Attributes[i]
		case format.AttributeNormal:
			norm = &obj.Attributes[i]
		}
	}
	require.NotNil(t, pos)
	require.NotNil(t, norm)
	require.Equal(t, [][]float32{{0, 0, 0}, {1, 0, 0}}, pos.Vectors)
	require.Equal(t, [][]float32{{0, 1, 0}, {0, 1, 0}}, norm.Vectors)
	require.Equal(t, []uint32{0, 1, 2}, obj.Indices)
}

func TestMeshDataInterleaveToSeparateReEncode(t *testing.T) {
	// spec scenario 6: decode a 1.9-style interleaved mesh, then re-encode
	// as 1.10 (one buffer per attribute) and verify the normalized view is
	// unchanged — only the physical buffer layout differs.
	mesh := buildInterleavedPositionNormal()

	md, err := NewMeshData(mesh)
	require.NoError(t, err)

	separated, err := md.ToMesh(format.Version{Major: 1, Minor: 10})
	require.NoError(t, err)
	require.Len(t, separated.Objects[0].VertexBuffers, 2, "1.10 keeps Position and Normal in distinct buffers")

	md2, err := NewMeshData(separated)
	require.NoError(t, err)

	require.Equal(t, len(md.Objects[0].Attributes), len(md2.Objects[0].Attributes))
	for _, a := range md.Objects[0].Attributes {
		var b *MeshAttribute
		for i := range md2.Objects[0].Attributes {
			if md2.Objects[0].Attributes[i].Semantic == a.Semantic {
				b = &md2.Objects[0].Attributes[i]
			}
		}
		require.NotNil(t, b, "missing semantic %s after re-encode", a.Semantic)
		require.Equal(t, a.Vectors, b.Vectors, "semantic %s vectors changed across re-encode", a.Semantic)
	}
	require.Equal(t, md.Objects[0].Indices, md2.Objects[0].Indices)
}

func TestDecodeAttributeOutOfBoundsBufferIndex(t *testing.T) {
	mesh := &schema.Mesh{
		Objects: []schema.MeshObject{
			{
				Name:        "broken",
				VertexCount: 1,
				Attributes: []schema.AttributeDescriptor{
					{Semantic: format.AttributePosition, BufferIndex: 5, ComponentType: format.ComponentFloat32, ComponentCount: 3},
				},
				VertexBuffers: [][]byte{{0, 0, 0, 0}},
			},
		},
	}

	_, err := NewMeshData(mesh)
	require.Error(t, err)
}

func TestDecodeAttributeUnknownSemantic(t *testing.T) {
	mesh := &schema.Mesh{
		Objects: []schema.MeshObject{
			{
				Name:        "broken",
				VertexCount: 1,
				Attributes: []schema.AttributeDescriptor{
					{Semantic: format.AttributeUnknown, ComponentType: format.ComponentFloat32, ComponentCount: 3},
				},
				VertexBuffers: [][]byte{{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			},
		},
	}

	_, err := NewMeshData(mesh)
	require.Error(t, err)
}

func TestMeshDataZeroVertexAttributeNoPanic(t *testing.T) {
	md := &MeshData{
		Objects: []MeshObjectData{
			{
				Name: "empty",
				Attributes: []MeshAttribute{
					{Semantic: format.AttributePosition, Vectors: nil},
				},
			},
		},
	}

	require.NotPanics(t, func() {
		_, err := md.ToMesh(format.Version{Major: 1, Minor: 10})
		require.NoError(t, err)
	})
}

func TestToMeshUnsupportedVersion(t *testing.T) {
	md := &MeshData{}
	_, err := md.ToMesh(format.Version{Major: 9, Minor: 9})
	require.Error(t, err)
}

func TestToMeshWithOptionsForceSeparateBuffers(t *testing.T) {
	mesh := buildInterleavedPositionNormal()
	md, err := NewMeshData(mesh)
	require.NoError(t, err)

	opts, err := NewMeshEncodeOptions(WithForceSeparateBuffers(true))
	require.NoError(t, err)

	// 1.9 would normally interleave Position+Normal into one buffer; the
	// option forces them apart even though the target version hasn't changed.
	separated, err := md.ToMeshWithOptions(format.Version{Major: 1, Minor: 9}, opts)
	require.NoError(t, err)
	require.Len(t, separated.Objects[0].VertexBuffers, 2)
}
