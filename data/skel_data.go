package data

import "github.com/smashforge/ssbh/schema"

// BoneData is a normalized skeleton bone: same shape as schema.Bone, but
// decoupled from the wire layout so callers don't import schema just to
// walk a skeleton.
type BoneData struct {
	Name           string
	ParentIndex    int16
	Transform      [16]float32
	WorldTransform [16]float32
}

// SkelData is the normalized view over a Skel record. Skel has no
// compressed payload to decode, so this is a direct field-for-field
// mapping (spec §6: "similarly for SkelData").
type SkelData struct {
	Bones []BoneData
}

// NewSkelData converts a parsed Skel record to its normalized form.
func NewSkelData(s *schema.Skel) (*SkelData, error) {
	d := &SkelData{Bones: make([]BoneData, len(s.Bones))}
	for i, b := range s.Bones {
		d.Bones[i] = BoneData{
			Name:           b.Name,
			ParentIndex:    b.ParentIndex,
			Transform:      b.Transform,
			WorldTransform: b.WorldTransform,
		}
	}

	return d, nil
}

// ToSkel converts normalized bone data back to a Skel record.
func (d *SkelData) ToSkel() (*schema.Skel, error) {
	s := &schema.Skel{Bones: make([]schema.Bone, len(d.Bones))}
	for i, b := range d.Bones {
		s.Bones[i] = schema.Bone{
			Name:           b.Name,
			ParentIndex:    b.ParentIndex,
			Transform:      b.Transform,
			WorldTransform: b.WorldTransform,
		}
	}

	return s, nil
}
