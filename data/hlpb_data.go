package data

import "github.com/smashforge/ssbh/schema"

// HlpbData is the normalized view over an Hlpb record: same shape as
// schema.Hlpb, decoupled from the wire layout.
type HlpbData struct {
	AimConstraints    []schema.AimConstraint
	OrientConstraints []schema.OrientConstraint
	ConstraintIndices []int32
	ConstraintTypes   []int32
}

// NewHlpbData converts a parsed Hlpb record to its normalized form.
func NewHlpbData(h *schema.Hlpb) (*HlpbData, error) {
	return &HlpbData{
		AimConstraints:    append([]schema.AimConstraint(nil), h.AimConstraints...),
		OrientConstraints: append([]schema.OrientConstraint(nil), h.OrientConstraints...),
		ConstraintIndices: append([]int32(nil), h.ConstraintIndices...),
		ConstraintTypes:   append([]int32(nil), h.ConstraintTypes...),
	}, nil
}

// ToHlpb converts normalized helper-bone data back to an Hlpb record.
func (d *HlpbData) ToHlpb() (*schema.Hlpb, error) {
	return &schema.Hlpb{
		AimConstraints:    append([]schema.AimConstraint(nil), d.AimConstraints...),
		OrientConstraints: append([]schema.OrientConstraint(nil), d.OrientConstraints...),
		ConstraintIndices: append([]int32(nil), d.ConstraintIndices...),
		ConstraintTypes:   append([]int32(nil), d.ConstraintTypes...),
	}, nil
}
