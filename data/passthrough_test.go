package data

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/schema"
)

func TestSkelDataRoundTrip(t *testing.T) {
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	s := &schema.Skel{Bones: []schema.Bone{
		{Name: "Hip", ParentIndex: -1, Transform: identity, WorldTransform: identity},
	}}

	d, err := NewSkelData(s)
	require.NoError(t, err)
	require.Equal(t, "Hip", d.Bones[0].Name)

	got, err := d.ToSkel()
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestModlDataRoundTrip(t *testing.T) {
	m := &schema.Modl{
		SkeletonFileName:  "model.nusktb",
		MeshFileName:      "model.numshb",
		MaterialFileNames: []string{"model.numatb"},
		Entries: []schema.ModlEntry{
			{MeshObjectName: "body", SubIndex: 0, MaterialLabel: "mat_skin"},
		},
	}

	d, err := NewModlData(m)
	require.NoError(t, err)

	got, err := d.ToModl()
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestMatlDataRoundTrip(t *testing.T) {
	m := &schema.Matl{Entries: []schema.MatlEntry{
		{
			MaterialName: "mat_skin",
			ShaderLabel:  "SFX_PBS",
			Params: []schema.MatlParam{
				{ParamID: 1, Kind: schema.MatlParamFloat, Float: 0.5},
				{ParamID: 2, Kind: schema.MatlParamVector4, Vector4: [4]float32{1, 2, 3, 4}},
				{ParamID: 3, Kind: schema.MatlParamTextureName, Text: "col.nutexb"},
			},
		},
	}}

	d, err := NewMatlData(m)
	require.NoError(t, err)
	require.Equal(t, float32(0.5), d.Entries[0].Params[0].Value)

	got, err := d.ToMatl(format.Version{Major: 1, Minor: 6})
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestMatlDataEntryByName(t *testing.T) {
	d := &MatlData{Entries: []MatlEntryData{
		{MaterialName: "mat_skin", ShaderLabel: "SFX_PBS"},
		{MaterialName: "mat_eye", ShaderLabel: "SFX_PBS"},
	}}

	e, ok := d.EntryByName("mat_eye")
	require.True(t, ok)
	require.Equal(t, "SFX_PBS", e.ShaderLabel)

	_, ok = d.EntryByName("missing")
	require.False(t, ok)
}

func TestHlpbDataRoundTrip(t *testing.T) {
	h := &schema.Hlpb{
		AimConstraints: []schema.AimConstraint{
			{Name: "aim", AimBoneName: "a", TargetBoneName: "b", AimVector: [3]float32{0, 1, 0}, UpVector: [3]float32{0, 0, 1}},
		},
		ConstraintIndices: []int32{0},
		ConstraintTypes:   []int32{1},
	}

	d, err := NewHlpbData(h)
	require.NoError(t, err)

	got, err := d.ToHlpb()
	require.NoError(t, err)
	require.Equal(t, h, got)
}
