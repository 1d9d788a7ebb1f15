package data

import "github.com/smashforge/ssbh/schema"

// ModlBinding pairs one mesh object (by name and subindex) with the
// material label it renders with.
type ModlBinding struct {
	MeshObjectName string
	SubIndex       int64
	MaterialLabel  string
}

// ModlData is the normalized view over a Modl record: file references
// plus the mesh-to-material bindings, decoupled from the wire layout.
type ModlData struct {
	SkeletonFileName  string
	MeshFileName      string
	MaterialFileNames []string
	Bindings          []ModlBinding
}

// NewModlData converts a parsed Modl record to its normalized form.
func NewModlData(m *schema.Modl) (*ModlData, error) {
	d := &ModlData{
		SkeletonFileName:  m.SkeletonFileName,
		MeshFileName:      m.MeshFileName,
		MaterialFileNames: append([]string(nil), m.MaterialFileNames...),
		Bindings:          make([]ModlBinding, len(m.Entries)),
	}
	for i, e := range m.Entries {
		d.Bindings[i] = ModlBinding{
			MeshObjectName: e.MeshObjectName,
			SubIndex:       e.SubIndex,
			MaterialLabel:  e.MaterialLabel,
		}
	}

	return d, nil
}

// ToModl converts normalized model data back to a Modl record.
func (d *ModlData) ToModl() (*schema.Modl, error) {
	m := &schema.Modl{
		SkeletonFileName:  d.SkeletonFileName,
		MeshFileName:      d.MeshFileName,
		MaterialFileNames: append([]string(nil), d.MaterialFileNames...),
		Entries:           make([]schema.ModlEntry, len(d.Bindings)),
	}
	for i, b := range d.Bindings {
		m.Entries[i] = schema.ModlEntry{
			MeshObjectName: b.MeshObjectName,
			SubIndex:       b.SubIndex,
			MaterialLabel:  b.MaterialLabel,
		}
	}

	return m, nil
}
