// Package data implements the higher-level, format-version-aware codecs
// spec §4.7/§4.8 describe: a vertex-buffer codec that normalizes Mesh's
// raw interleaved-or-separate attribute streams into a uniform
// attribute-centric view, and an animation-track codec that
// quantizes/dequantizes Anim's bit-packed keyframe streams. Both
// directions are lossy by design (spec §9 "Lossy normalization") — the
// data layer never promises byte-identical round-trips, only semantic
// equality.
package data

import (
	"fmt"

	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/internal/errs"
	"github.com/smashforge/ssbh/internal/options"
	"github.com/smashforge/ssbh/internal/pool"
	"github.com/smashforge/ssbh/schema"
)

// MeshEncodeOptions controls lossy re-encoding choices ToMesh cannot infer
// from MeshData alone.
type MeshEncodeOptions struct {
	// ForceSeparateBuffers re-encodes with the 1.10 one-buffer-per-attribute
	// policy regardless of the target version. Some tools expect every
	// attribute in its own buffer even on older versions that would
	// otherwise interleave; this trades a larger file for simpler patching.
	ForceSeparateBuffers bool
}

// MeshEncodeOption configures a MeshEncodeOptions value.
type MeshEncodeOption = options.Option[*MeshEncodeOptions]

// WithForceSeparateBuffers sets MeshEncodeOptions.ForceSeparateBuffers.
func WithForceSeparateBuffers(v bool) MeshEncodeOption {
	return options.NoError(func(o *MeshEncodeOptions) {
		o.ForceSeparateBuffers = v
	})
}

// NewMeshEncodeOptions builds a MeshEncodeOptions from zero or more
// MeshEncodeOption values, applied in order.
func NewMeshEncodeOptions(opts ...MeshEncodeOption) (MeshEncodeOptions, error) {
	o := MeshEncodeOptions{}
	if err := options.Apply(&o, opts...); err != nil {
		return MeshEncodeOptions{}, err
	}

	return o, nil
}

// MeshAttribute is one normalized vertex attribute stream: a semantic
// role, a disambiguating subindex (the format allows more than one stream
// per semantic, e.g. two UV sets), and a dense per-vertex vector list.
// Every vector has the same component count, stored as float32 regardless
// of the on-disk component type — ComponentByte values are normalized to
// [0,1], matching how the renderer consumes them.
type MeshAttribute struct {
	Semantic  format.AttributeSemantic
	SubIndex  int32
	Name      string
	Vectors   [][]float32 // len(Vectors) == vertex count; each entry has ComponentCount components
}

// MeshObjectData is one normalized sub-mesh.
type MeshObjectData struct {
	Name       string
	SubIndex   int64
	Attributes []MeshAttribute
	Indices    []uint32
}

// MeshData is the normalized, version-independent view over a Mesh
// record.
type MeshData struct {
	Objects []MeshObjectData
}

// NewMeshData decodes mesh's raw attribute streams into normalized form,
// per spec §4.7: "for each declared attribute, read (offset, stride,
// component-type, component-count) from the Mesh header; extract count
// vectors by strided reads from the corresponding buffer."
func NewMeshData(mesh *schema.Mesh) (*MeshData, error) {
	d := &MeshData{}

	for _, obj := range mesh.Objects {
		od := MeshObjectData{Name: obj.Name, SubIndex: obj.SubIndex}

		for _, attr := range obj.Attributes {
			vecs, err := decodeAttribute(obj, attr)
			if err != nil {
				return nil, err
			}

			od.Attributes = append(od.Attributes, MeshAttribute{
				Semantic: attr.Semantic,
				SubIndex: attr.SubIndex,
				Name:     attr.Name,
				Vectors:  vecs,
			})
		}

		od.Indices = decodeIndices(obj)
		d.Objects = append(d.Objects, od)
	}

	return d, nil
}

func decodeAttribute(obj schema.MeshObject, attr schema.AttributeDescriptor) ([][]float32, error) {
	if int(attr.BufferIndex) >= len(obj.VertexBuffers) {
		return nil, fmt.Errorf("%w: buffer index %d", errs.ErrAttributeOutOfBounds, attr.BufferIndex)
	}
	if attr.Semantic == format.AttributeUnknown {
		return nil, fmt.Errorf("%w: raw value on %s", errs.ErrUnknownAttributeSemantic, attr.Name)
	}

	buf := obj.VertexBuffers[attr.BufferIndex]
	compSize := componentByteSize(attr.ComponentType)
	count := int(obj.VertexCount)
	componentCount := int(attr.ComponentCount)

	vecs := make([][]float32, count)
	for i := 0; i < count; i++ {
		start := int(attr.BufferOffset) + i*int(attr.Stride)
		end := start + componentCount*compSize
		if end > len(buf) {
			return nil, fmt.Errorf("%w: object %s attribute %s vertex %d", errs.ErrAttributeOutOfBounds, obj.Name, attr.Name, i)
		}

		vec := make([]float32, componentCount)
		for c := 0; c < componentCount; c++ {
			off := start + c*compSize
			vec[c] = decodeComponent(attr.ComponentType, buf[off:off+compSize])
		}
		vecs[i] = vec
	}

	return vecs, nil
}

func componentByteSize(t format.ComponentType) int {
	switch t {
	case format.ComponentFloat32:
		return 4
	case format.ComponentByte:
		return 1
	case format.ComponentHalfFloat:
		return 2
	default:
		return 4
	}
}

func decodeComponent(t format.ComponentType, b []byte) float32 {
	switch t {
	case format.ComponentByte:
		return float32(b[0]) / 255
	case format.ComponentHalfFloat:
		bits := uint16(b[0]) | uint16(b[1])<<8
		return halfToFloat(bits)
	default:
		bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return float32FromBits(bits)
	}
}

func decodeIndices(obj schema.MeshObject) []uint32 {
	if obj.DrawElementType == 1 {
		count := len(obj.IndexBuffer) / 4
		scratch, release := pool.GetUint32Slice(count)
		defer release()

		for i := 0; i < count; i++ {
			off := i * 4
			scratch[i] = uint32(obj.IndexBuffer[off]) | uint32(obj.IndexBuffer[off+1])<<8 |
				uint32(obj.IndexBuffer[off+2])<<16 | uint32(obj.IndexBuffer[off+3])<<24
		}

		out := make([]uint32, count)
		copy(out, scratch)

		return out
	}

	count := len(obj.IndexBuffer) / 2
	scratch, release := pool.GetUint32Slice(count)
	defer release()

	for i := 0; i < count; i++ {
		off := i * 2
		scratch[i] = uint32(uint16(obj.IndexBuffer[off]) | uint16(obj.IndexBuffer[off+1])<<8)
	}

	out := make([]uint32, count)
	copy(out, scratch)

	return out
}

// interleavedGroups lists the sets of semantics packed into one vertex
// buffer together. Mesh 1.8/1.9 interleave position/normal/tangent into buffer 0
// and color/texcoord into buffer 1; 1.10 gives every attribute its own
// buffer. bone indices/weights are always their own buffer, at every
// version, since they have a distinct stride (u8 vs f32 components).
var interleavedGroups = [][]format.AttributeSemantic{
	{format.AttributePosition, format.AttributeNormal, format.AttributeTangent},
	{format.AttributeColor, format.AttributeTexCoord},
	{format.AttributeBoneIndices},
	{format.AttributeBoneWeights},
}

// ToMesh re-encodes the normalized data back to a versioned Mesh record,
// per spec §4.7: "choose an interleaving policy ... assign byte strides,
// and write out the binary buffers." The stride/component-count choice
// is deterministic given (version, attribute list), so re-encoding the
// output of NewMeshData(ToMesh(...)) is idempotent.
func (d *MeshData) ToMesh(version format.Version) (*schema.Mesh, error) {
	return d.ToMeshWithOptions(version, MeshEncodeOptions{})
}

// ToMeshWithOptions is ToMesh with caller-controlled re-encoding choices;
// see MeshEncodeOptions.
func (d *MeshData) ToMeshWithOptions(version format.Version, opts MeshEncodeOptions) (*schema.Mesh, error) {
	switch version {
	case format.Version{Major: 1, Minor: 8}, format.Version{Major: 1, Minor: 9}, format.Version{Major: 1, Minor: 10}:
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedMeshVersion, version)
	}

	m := &schema.Mesh{}

	for _, obj := range d.Objects {
		so := schema.MeshObject{
			Name:        obj.Name,
			SubIndex:    obj.SubIndex,
			VertexCount: vertexCount(obj),
			IndexCount:  uint32(len(obj.Indices)),
		}

		groups := attributeGroups(version, opts.ForceSeparateBuffers)
		bufferOf := map[format.AttributeSemantic]int{}
		for bufIdx, group := range groups {
			bufferOf[group[0]] = bufIdx
			for _, sem := range group[1:] {
				bufferOf[sem] = bufIdx
			}
		}

		buffers := make([][]byte, len(groups))
		strides := make([]uint32, len(groups))
		offsets := make([]uint32, len(obj.Attributes)) // by index into obj.Attributes

		for bufIdx, group := range groups {
			var attrsInGroup []int
			for _, sem := range group {
				for i, a := range obj.Attributes {
					if a.Semantic == sem {
						attrsInGroup = append(attrsInGroup, i)
					}
				}
			}
			if len(attrsInGroup) == 0 {
				continue
			}

			stride := uint32(0)
			for _, i := range attrsInGroup {
				a := obj.Attributes[i]
				offsets[i] = stride
				stride += uint32(componentWidth(a)) * uint32(componentByteSize(componentTypeFor(a)))
			}
			strides[bufIdx] = stride

			count := len(obj.Attributes[attrsInGroup[0]].Vectors)
			buf := make([]byte, count*int(stride))
			for _, i := range attrsInGroup {
				a := obj.Attributes[i]
				writeAttributeVectors(buf, a, offsets[i], stride, componentTypeFor(a))
			}
			buffers[bufIdx] = buf
		}

		// Empty groups are dropped from VertexBuffers below, so a group's
		// buffer index is the number of non-empty groups before it.
		physical := make([]int, len(buffers))
		next := 0
		for i, buf := range buffers {
			physical[i] = next
			if buf != nil {
				next++
			}
		}

		for i, a := range obj.Attributes {
			bufIdx := bufferOf[a.Semantic]
			so.Attributes = append(so.Attributes, schema.AttributeDescriptor{
				Name:           attributeName(a),
				Semantic:       a.Semantic,
				SubIndex:       a.SubIndex,
				BufferIndex:    uint8(physical[bufIdx]),
				BufferOffset:   offsets[i],
				Stride:         strides[bufIdx],
				ComponentType:  componentTypeFor(a),
				ComponentCount: uint8(componentWidth(a)),
			})
		}

		for _, buf := range buffers {
			if buf != nil {
				so.VertexBuffers = append(so.VertexBuffers, buf)
			}
		}

		so.DrawElementType = 1
		so.IndexBuffer = make([]byte, 0, len(obj.Indices)*4)
		for _, idx := range obj.Indices {
			so.IndexBuffer = append(so.IndexBuffer,
				byte(idx), byte(idx>>8), byte(idx>>16), byte(idx>>24))
		}

		m.Objects = append(m.Objects, so)
	}

	return m, nil
}

// componentWidth returns an attribute's per-vertex component count,
// guarding the zero-vertex edge case where Vectors has no first element
// to measure.
func componentWidth(a MeshAttribute) int {
	if len(a.Vectors) == 0 {
		return 0
	}

	return len(a.Vectors[0])
}

func vertexCount(obj MeshObjectData) uint32 {
	for _, a := range obj.Attributes {
		return uint32(len(a.Vectors))
	}

	return 0
}

// attributeGroups returns the interleave policy for version: 1.8/1.9 share
// interleavedGroups; 1.10 separates every attribute into its own buffer
// (spec §4.7's worked scenario 6). forceSeparate overrides the version check
// to always use the one-buffer-per-attribute policy.
func attributeGroups(version format.Version, forceSeparate bool) [][]format.AttributeSemantic {
	if forceSeparate || version.AtLeast(format.Version{Major: 1, Minor: 10}) {
		return [][]format.AttributeSemantic{
			{format.AttributePosition},
			{format.AttributeNormal},
			{format.AttributeTangent},
			{format.AttributeColor},
			{format.AttributeTexCoord},
			{format.AttributeBoneIndices},
			{format.AttributeBoneWeights},
		}
	}

	return interleavedGroups
}

func componentTypeFor(a MeshAttribute) format.ComponentType {
	switch a.Semantic {
	case format.AttributeBoneIndices:
		return format.ComponentByte
	case format.AttributeColor:
		return format.ComponentByte
	default:
		return format.ComponentFloat32
	}
}

func attributeName(a MeshAttribute) string {
	if a.Name != "" {
		return a.Name
	}

	return a.Semantic.String()
}

func writeAttributeVectors(buf []byte, a MeshAttribute, offset, stride uint32, ct format.ComponentType) {
	compSize := componentByteSize(ct)
	for i, vec := range a.Vectors {
		start := int(offset) + i*int(stride)
		for c, v := range vec {
			off := start + c*compSize
			encodeComponent(ct, buf[off:off+compSize], v)
		}
	}
}

func encodeComponent(t format.ComponentType, dst []byte, v float32) {
	switch t {
	case format.ComponentByte:
		clamped := v
		if clamped < 0 {
			clamped = 0
		}
		if clamped > 1 {
			clamped = 1
		}
		dst[0] = byte(clamped*255 + 0.5)
	case format.ComponentHalfFloat:
		bits := floatToHalf(v)
		dst[0] = byte(bits)
		dst[1] = byte(bits >> 8)
	default:
		bits := floatToBits(v)
		dst[0] = byte(bits)
		dst[1] = byte(bits >> 8)
		dst[2] = byte(bits >> 16)
		dst[3] = byte(bits >> 24)
	}
}
