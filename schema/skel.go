package schema

import "github.com/smashforge/ssbh/layout"

// Bone is one entry in a Skel 1.0 skeleton: a name, a parent index (-1 for
// root), and the two transforms every renderer needs — the bone's local
// transform and its inverse world-bind transform.
type Bone struct {
	Name           string
	ParentIndex    int16
	Transform      [16]float32
	WorldTransform [16]float32
}

const boneSize = 8 + 2 + 6 /*pad*/ + 16*4 + 16*4

func (Bone) SizeInBytes() int { return boneSize }

// Skel is the skeleton record (format version 1.0): a flat bone list in
// parent-before-child order. Each bone carries both of its transforms as
// fields; there is no separate transform array.
type Skel struct {
	Bones []Bone
}

func ReadSkel(r *layout.Reader) (*Skel, error) {
	s := &Skel{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		b, err := readBone(r)
		if err != nil {
			return err
		}
		s.Bones = append(s.Bones, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func readBone(r *layout.Reader) (Bone, error) {
	var b Bone
	var err error

	if b.Name, _, err = r.ReadString(); err != nil {
		return b, err
	}
	if b.ParentIndex, err = r.ReadI16(); err != nil {
		return b, err
	}
	if _, err = r.ReadBytes(6); err != nil { // padding to 8-byte boundary
		return b, err
	}
	for i := range b.Transform {
		if b.Transform[i], err = r.ReadF32(); err != nil {
			return b, err
		}
	}
	for i := range b.WorldTransform {
		if b.WorldTransform[i], err = r.ReadF32(); err != nil {
			return b, err
		}
	}

	return b, nil
}

func WriteSkel(w *layout.Writer, s *Skel) error {
	bones := s.Bones
	return w.WriteRecord(16, func(w *layout.Writer) error {
		return w.WriteArray(layout.DefaultAlignment, len(bones), boneSize, func(w *layout.Writer, i int) error {
			return writeBone(w, bones[i])
		})
	})
}

func writeBone(w *layout.Writer, b Bone) error {
	name := b.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	w.WriteI16(b.ParentIndex)
	w.WriteZero(6)
	for _, v := range b.Transform {
		w.WriteF32(v)
	}
	for _, v := range b.WorldTransform {
		w.WriteF32(v)
	}

	return nil
}
