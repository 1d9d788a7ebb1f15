package schema

import "github.com/smashforge/ssbh/layout"

// AdjEntry lists the vertex indices adjacent to one mesh vertex, used by
// silhouette-dependent effects (outline rendering, stroke shaders) that
// need a vertex's neighborhood without rebuilding it from the index
// buffer at runtime.
type AdjEntry struct {
	VertexIndex     uint32
	AdjacentIndices []uint32
}

// Adj is the non-SSBH vertex-adjacency sidecar format: like MeshEx, a
// flat stream rather than a relative-offset tree (spec §4.3), so it is
// read and written directly off the primitive codec.
type Adj struct {
	Entries []AdjEntry
}

// ReadAdj parses an Adj stream: a u32 entry count, then per entry a
// vertex index, a u32 adjacency count, and that many adjacent indices.
func ReadAdj(data []byte) (*Adj, error) {
	r := layout.NewReader(data)

	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	a := &Adj{}
	for i := uint32(0); i < count; i++ {
		var e AdjEntry

		if e.VertexIndex, err = r.ReadU32(); err != nil {
			return nil, err
		}

		n, err := r.ReadU32()
		if err != nil {
			return nil, err
		}

		for j := uint32(0); j < n; j++ {
			v, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			e.AdjacentIndices = append(e.AdjacentIndices, v)
		}

		a.Entries = append(a.Entries, e)
	}

	return a, nil
}

// WriteAdj serializes a back to the flat Adj stream.
func WriteAdj(a *Adj) ([]byte, error) {
	w := layout.NewWriter()
	defer w.Release()

	w.WriteU32(uint32(len(a.Entries)))

	for _, e := range a.Entries {
		w.WriteU32(e.VertexIndex)
		w.WriteU32(uint32(len(e.AdjacentIndices)))
		for _, v := range e.AdjacentIndices {
			w.WriteU32(v)
		}
	}

	out := make([]byte, len(w.Bytes()))
	copy(out, w.Bytes())

	return out, nil
}
