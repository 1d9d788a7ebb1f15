package schema

import (
	"fmt"

	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/internal/errs"
	"github.com/smashforge/ssbh/layout"
)

// MeshExEntry names one mesh object for the extended-data sidecar and
// records the full-detail/LOD bounding-sphere radius used by the
// renderer's distance culling.
type MeshExEntry struct {
	MeshObjectFullName string
	BoundingSphereRadius float32
}

// MeshEx is the non-SSBH "NUMSHEXB" sidecar format: a flat stream (no
// relative-offset tree — spec §4.3 notes it shares the primitive codec
// and primitive codec only, not the pointer-chasing reader) of entries
// naming mesh objects and their culling radii.
type MeshEx struct {
	Entries []MeshExEntry
}

// ReadMeshEx parses a MeshEx stream directly off the primitive codec: no
// pointer chasing, since the format is a flat repeated record, not a
// relative-offset tree.
func ReadMeshEx(data []byte) (*MeshEx, error) {
	r := layout.NewReader(data)

	var magic [4]byte
	if err := r.ReadFixed(magic[:]); err != nil {
		return nil, err
	}
	if magic != [4]byte(format.MagicMeshEx) {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownMagic, magic[:])
	}

	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	m := &MeshEx{}
	for i := uint32(0); i < count; i++ {
		var e MeshExEntry

		nameBytes, err := r.ReadBytes(64)
		if err != nil {
			return nil, err
		}
		e.MeshObjectFullName = trimNul(nameBytes)

		if e.BoundingSphereRadius, err = r.ReadF32(); err != nil {
			return nil, err
		}

		m.Entries = append(m.Entries, e)
	}

	return m, nil
}

// WriteMeshEx serializes m back to the flat MeshEx stream.
func WriteMeshEx(m *MeshEx) ([]byte, error) {
	w := layout.NewWriter()
	defer w.Release()

	w.WriteBytes(format.MagicMeshEx[:])
	w.WriteU32(uint32(len(m.Entries)))

	for _, e := range m.Entries {
		nameBytes := make([]byte, 64)
		copy(nameBytes, e.MeshObjectFullName)
		w.WriteBytes(nameBytes)
		w.WriteF32(e.BoundingSphereRadius)
	}

	out := make([]byte, len(w.Bytes()))
	copy(out, w.Bytes())

	return out, nil
}

func trimNul(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
