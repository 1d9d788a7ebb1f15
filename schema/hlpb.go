package schema

import "github.com/smashforge/ssbh/layout"

// AimConstraint makes one bone aim at a target bone around a free axis,
// the "helper bone" pattern the Hlpb format exists to describe.
type AimConstraint struct {
	Name           string
	AimBoneName    string
	TargetBoneName string
	AimVector      [3]float32
	UpVector       [3]float32
}

// aimConstraintSize is the fixed on-disk size: three string pointers (8
// bytes each) plus two inline 3-float vectors (12 bytes each).
const aimConstraintSize = 3*8 + 2*12

func (AimConstraint) SizeInBytes() int { return aimConstraintSize }

// OrientConstraint orients a bone to match another bone's rotation,
// optionally blended, within a per-axis angular range.
type OrientConstraint struct {
	Name           string
	ParentBoneName string
	SourceBoneName string
	TargetBoneName string
	Quat1          [4]float32
	Quat2          [4]float32
	Range          [3]float32
}

const orientConstraintSize = 4*8 + 2*16 + 12

func (OrientConstraint) SizeInBytes() int { return orientConstraintSize }

// Hlpb is the helper-bone constraint record (format version 1.1): a list
// of aim constraints, a list of orient constraints, and two parallel
// index/type arrays describing evaluation order.
type Hlpb struct {
	AimConstraints    []AimConstraint
	OrientConstraints []OrientConstraint
	ConstraintIndices []int32
	ConstraintTypes   []int32
}

// ReadHlpbV1_1 reads the four top-level arrays in declaration order.
func ReadHlpbV1_1(r *layout.Reader) (*Hlpb, error) {
	h := &Hlpb{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		c, err := readAimConstraint(r)
		if err != nil {
			return err
		}
		h.AimConstraints = append(h.AimConstraints, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		c, err := readOrientConstraint(r)
		if err != nil {
			return err
		}
		h.OrientConstraints = append(h.OrientConstraints, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		v, err := r.ReadI32()
		if err != nil {
			return err
		}
		h.ConstraintIndices = append(h.ConstraintIndices, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		v, err := r.ReadI32()
		if err != nil {
			return err
		}
		h.ConstraintTypes = append(h.ConstraintTypes, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}

func readAimConstraint(r *layout.Reader) (AimConstraint, error) {
	var c AimConstraint
	var err error

	if c.Name, _, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.AimBoneName, _, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.TargetBoneName, _, err = r.ReadString(); err != nil {
		return c, err
	}
	for i := range c.AimVector {
		if c.AimVector[i], err = r.ReadF32(); err != nil {
			return c, err
		}
	}
	for i := range c.UpVector {
		if c.UpVector[i], err = r.ReadF32(); err != nil {
			return c, err
		}
	}

	return c, nil
}

func readOrientConstraint(r *layout.Reader) (OrientConstraint, error) {
	var c OrientConstraint
	var err error

	if c.Name, _, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.ParentBoneName, _, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.SourceBoneName, _, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.TargetBoneName, _, err = r.ReadString(); err != nil {
		return c, err
	}
	for i := range c.Quat1 {
		if c.Quat1[i], err = r.ReadF32(); err != nil {
			return c, err
		}
	}
	for i := range c.Quat2 {
		if c.Quat2[i], err = r.ReadF32(); err != nil {
			return c, err
		}
	}
	for i := range c.Range {
		if c.Range[i], err = r.ReadF32(); err != nil {
			return c, err
		}
	}

	return c, nil
}

// WriteHlpbV1_1 writes the four top-level arrays in the same declaration
// order ReadHlpbV1_1 reads them, per the order-preservation invariant.
func WriteHlpbV1_1(w *layout.Writer, h *Hlpb) error {
	return w.WriteRecord(4*16 /*four array descriptors*/, func(w *layout.Writer) error {
		return writeHlpbFields(w, h)
	})
}

func writeHlpbFields(w *layout.Writer, h *Hlpb) error {
	aims := h.AimConstraints
	err := w.WriteArray(layout.DefaultAlignment, len(aims), aimConstraintSize, func(w *layout.Writer, i int) error {
		return writeAimConstraint(w, aims[i])
	})
	if err != nil {
		return err
	}

	orients := h.OrientConstraints
	err = w.WriteArray(layout.DefaultAlignment, len(orients), orientConstraintSize, func(w *layout.Writer, i int) error {
		return writeOrientConstraint(w, orients[i])
	})
	if err != nil {
		return err
	}

	idx := h.ConstraintIndices
	err = w.WriteArray(layout.DefaultAlignment, len(idx), 4, func(w *layout.Writer, i int) error {
		w.WriteI32(idx[i])
		return nil
	})
	if err != nil {
		return err
	}

	types := h.ConstraintTypes
	return w.WriteArray(layout.DefaultAlignment, len(types), 4, func(w *layout.Writer, i int) error {
		w.WriteI32(types[i])
		return nil
	})
}

func writeAimConstraint(w *layout.Writer, c AimConstraint) error {
	name := c.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	aimBone := c.AimBoneName
	if err := w.WriteString(layout.DefaultAlignment, &aimBone); err != nil {
		return err
	}
	targetBone := c.TargetBoneName
	if err := w.WriteString(layout.DefaultAlignment, &targetBone); err != nil {
		return err
	}
	for _, v := range c.AimVector {
		w.WriteF32(v)
	}
	for _, v := range c.UpVector {
		w.WriteF32(v)
	}

	return nil
}

func writeOrientConstraint(w *layout.Writer, c OrientConstraint) error {
	name := c.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	parent := c.ParentBoneName
	if err := w.WriteString(layout.DefaultAlignment, &parent); err != nil {
		return err
	}
	source := c.SourceBoneName
	if err := w.WriteString(layout.DefaultAlignment, &source); err != nil {
		return err
	}
	target := c.TargetBoneName
	if err := w.WriteString(layout.DefaultAlignment, &target); err != nil {
		return err
	}
	for _, v := range c.Quat1 {
		w.WriteF32(v)
	}
	for _, v := range c.Quat2 {
		w.WriteF32(v)
	}
	for _, v := range c.Range {
		w.WriteF32(v)
	}

	return nil
}
