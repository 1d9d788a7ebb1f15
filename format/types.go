// Package format enumerates the on-disk vocabulary shared by every SSBH
// schema: magic numbers, (major, minor) version pairs, vertex attribute
// semantics, and vertex component types. It plays the same role the
// teacher's format package plays for EncodingType/CompressionType: a small,
// dependency-free set of typed constants with String() methods that every
// other package imports.
package format

import "fmt"

// Magic identifies a file's record family from its first four bytes.
// SSBH files all begin with "HBSS"; MeshEx and Adj are non-SSBH siblings
// with their own magics.
type Magic [4]byte

// Known magic values. SSBH container files share the single HBSS magic;
// the format that follows is determined by a second, per-record magic read
// immediately after the container header (see dispatch in schema/ssbh.go).
var (
	MagicHBSS   = Magic{'H', 'B', 'S', 'S'}
	MagicMeshEx = Magic{'N', 'U', 'M', 'S'} // "NUMSHEXB" stream, first 4 bytes
	MagicAdj    = Magic{'A', 'D', 'J', 0}   // Adj has no fixed 4-byte magic in the wild; see schema/adj.go
)

func (m Magic) String() string {
	return string(m[:])
}

// Version is a (major, minor) pair gating which fields a record variant
// carries and which case of the schema package's dispatch handles a file.
type Version struct {
	Major uint16
	Minor uint16
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Less reports whether v sorts before other by (major, minor).
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}

	return v.Minor < other.Minor
}

// AtLeast reports whether v >= other.
func (v Version) AtLeast(other Version) bool {
	return !v.Less(other)
}

// InRange reports whether min <= v <= max. Used for version-gated fields
// (spec §4.5: "fields present only in certain (major,minor) combinations").
func (v Version) InRange(min, max Version) bool {
	return !v.Less(min) && !max.Less(v)
}

// RecordKind identifies which of the twelve schema families a record
// belongs to, independent of its version.
type RecordKind uint8

const (
	KindUnknown RecordKind = iota
	KindHlpb
	KindMatl
	KindModl
	KindMesh
	KindSkel
	KindAnim
	KindNlst
	KindNrpd
	KindNufx
	KindShdr
	KindMeshEx
	KindAdj
)

func (k RecordKind) String() string {
	switch k {
	case KindHlpb:
		return "Hlpb"
	case KindMatl:
		return "Matl"
	case KindModl:
		return "Modl"
	case KindMesh:
		return "Mesh"
	case KindSkel:
		return "Skel"
	case KindAnim:
		return "Anim"
	case KindNlst:
		return "Nlst"
	case KindNrpd:
		return "Nrpd"
	case KindNufx:
		return "Nufx"
	case KindShdr:
		return "Shdr"
	case KindMeshEx:
		return "MeshEx"
	case KindAdj:
		return "Adj"
	default:
		return "Unknown"
	}
}

// AttributeSemantic names a Mesh vertex attribute's role, independent of
// how many bytes or components it occupies on disk.
type AttributeSemantic uint8

const (
	AttributeUnknown AttributeSemantic = iota
	AttributePosition
	AttributeNormal
	AttributeTangent
	AttributeColor
	AttributeTexCoord
	AttributeBoneIndices
	AttributeBoneWeights
)

func (a AttributeSemantic) String() string {
	switch a {
	case AttributePosition:
		return "Position"
	case AttributeNormal:
		return "Normal"
	case AttributeTangent:
		return "Tangent"
	case AttributeColor:
		return "Color"
	case AttributeTexCoord:
		return "Texcoord"
	case AttributeBoneIndices:
		return "BoneIndices"
	case AttributeBoneWeights:
		return "BoneWeights"
	default:
		return "Unknown"
	}
}

// ComponentType is the on-disk representation of a single vertex attribute
// component stream.
type ComponentType uint8

const (
	ComponentUnknown ComponentType = iota
	ComponentFloat32
	ComponentByte
	ComponentHalfFloat
)

func (c ComponentType) String() string {
	switch c {
	case ComponentFloat32:
		return "Float32"
	case ComponentByte:
		return "Byte"
	case ComponentHalfFloat:
		return "HalfFloat"
	default:
		return "Unknown"
	}
}

// TrackType names the semantic kind of an Anim track's channel group,
// which determines how many channels it has and whether it packs a
// quaternion (see data.AnimData).
type TrackType uint8

const (
	TrackUnknown TrackType = iota
	TrackTransform
	TrackVisibility
	TrackVector4
	TrackFloat
	TrackBoolean
)

func (t TrackType) String() string {
	switch t {
	case TrackTransform:
		return "Transform"
	case TrackVisibility:
		return "Visibility"
	case TrackVector4:
		return "Vector4"
	case TrackFloat:
		return "Float"
	case TrackBoolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}
