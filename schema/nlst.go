package schema

import "github.com/smashforge/ssbh/layout"

// Nlst is a flat name list (format version 1.0) used to carry string
// tables referenced by index from other formats.
type Nlst struct {
	Names []string
}

func ReadNlst(r *layout.Reader) (*Nlst, error) {
	n := &Nlst{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		s, _, err := r.ReadString()
		if err != nil {
			return err
		}
		n.Names = append(n.Names, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

func WriteNlst(w *layout.Writer, n *Nlst) error {
	names := n.Names
	return w.WriteRecord(16, func(w *layout.Writer) error {
		return w.WriteArray(layout.DefaultAlignment, len(names), 8, func(w *layout.Writer, i int) error {
			s := names[i]
			return w.WriteString(layout.DefaultAlignment, &s)
		})
	})
}
