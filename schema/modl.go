package schema

import "github.com/smashforge/ssbh/layout"

// ModlEntry binds one mesh object's name to the material it should be
// rendered with.
type ModlEntry struct {
	MeshObjectName string
	SubIndex       int64
	MaterialLabel  string
}

const modlEntrySize = 8 + 8 + 8

func (ModlEntry) SizeInBytes() int { return modlEntrySize }

// Modl is the model record (format version 1.7): a skeleton reference, a
// mesh file reference, a material file reference list, and the mesh-to-
// material bindings.
type Modl struct {
	SkeletonFileName string
	MeshFileName     string
	MaterialFileNames []string
	Entries           []ModlEntry
}

func ReadModl(r *layout.Reader) (*Modl, error) {
	m := &Modl{}
	var err error

	if m.SkeletonFileName, _, err = r.ReadString(); err != nil {
		return nil, err
	}
	if m.MeshFileName, _, err = r.ReadString(); err != nil {
		return nil, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		s, _, err := r.ReadString()
		if err != nil {
			return err
		}
		m.MaterialFileNames = append(m.MaterialFileNames, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		e, err := readModlEntry(r)
		if err != nil {
			return err
		}
		m.Entries = append(m.Entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func readModlEntry(r *layout.Reader) (ModlEntry, error) {
	var e ModlEntry
	var err error

	if e.MeshObjectName, _, err = r.ReadString(); err != nil {
		return e, err
	}
	if e.SubIndex, err = r.ReadI64(); err != nil {
		return e, err
	}
	if e.MaterialLabel, _, err = r.ReadString(); err != nil {
		return e, err
	}

	return e, nil
}

func WriteModl(w *layout.Writer, m *Modl) error {
	return w.WriteRecord(8+8+16+16 /*two strings, two arrays*/, func(w *layout.Writer) error {
		return writeModlFields(w, m)
	})
}

func writeModlFields(w *layout.Writer, m *Modl) error {
	skel := m.SkeletonFileName
	if err := w.WriteString(layout.DefaultAlignment, &skel); err != nil {
		return err
	}
	mesh := m.MeshFileName
	if err := w.WriteString(layout.DefaultAlignment, &mesh); err != nil {
		return err
	}

	names := m.MaterialFileNames
	err := w.WriteArray(layout.DefaultAlignment, len(names), 8, func(w *layout.Writer, i int) error {
		s := names[i]
		return w.WriteString(layout.DefaultAlignment, &s)
	})
	if err != nil {
		return err
	}

	entries := m.Entries
	return w.WriteArray(layout.DefaultAlignment, len(entries), modlEntrySize, func(w *layout.Writer, i int) error {
		return writeModlEntry(w, entries[i])
	})
}

func writeModlEntry(w *layout.Writer, e ModlEntry) error {
	name := e.MeshObjectName
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	w.WriteI64(e.SubIndex)
	label := e.MaterialLabel
	return w.WriteString(layout.DefaultAlignment, &label)
}
