package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/layout"
)

func TestReadMatlParamUnknownKindRejected(t *testing.T) {
	buf := make([]byte, matlParamSize)
	buf[8] = 99 // kind field, an unrecognized MatlParamKind

	r := layout.NewReader(buf)
	_, err := readMatlParam(r, format.Version{Major: 1, Minor: 6})
	require.Error(t, err)
}

func TestMatlRoundTripV1_5AndV1_6(t *testing.T) {
	m := &Matl{
		Entries: []MatlEntry{
			{
				MaterialName: "mat_skin",
				ShaderLabel:  "SFX_PBS_0100000000000080_opaque",
				Params: []MatlParam{
					{ParamID: 1, Kind: MatlParamFloat, Float: 0.5},
					{ParamID: 2, Kind: MatlParamBoolean, Boolean: true},
					{ParamID: 3, Kind: MatlParamVector4, Vector4: [4]float32{1, 2, 3, 4}},
					{ParamID: 4, Kind: MatlParamTextureName, Text: "skin_col.nutexb"},
					{ParamID: 5, Kind: MatlParamRasterizerState, Raster: RasterizerState{FillMode: 1, CullMode: 2, DepthBias: 0.1}},
					{ParamID: 6, Kind: MatlParamSamplerState, Sampler: SamplerState{WrapS: 1, WrapT: 1, WrapR: 1, MinFilter: 2, MagFilter: 2, BorderColor: [4]float32{0, 0, 0, 1}}},
				},
			},
		},
	}

	for _, v := range []format.Version{{Major: 1, Minor: 5}, {Major: 1, Minor: 6}} {
		m.Entries[0].Params = append(m.Entries[0].Params, MatlParam{
			ParamID: 7,
			Kind:    MatlParamBlendState,
			Blend:   BlendState{SourceColor: 1, DestinationColor: 2, BlendFactor: [4]float32{1, 1, 1, 1}, AlphaSampleToCoverage: v.AtLeast(format.Version{Major: 1, Minor: 6})},
		})

		w := layout.NewWriter()
		err := WriteMatl(w, m, v)
		require.NoError(t, err)

		r := layout.NewReader(w.Bytes())
		got, err := ReadMatl(r, v)
		w.Release()
		require.NoError(t, err)
		require.Equal(t, m.Entries[0].MaterialName, got.Entries[0].MaterialName)
		require.Equal(t, m.Entries[0].Params, got.Entries[0].Params)

		m.Entries[0].Params = m.Entries[0].Params[:6]
	}
}

func TestAnimRoundTripV1_2And2_0And2_1(t *testing.T) {
	for _, v := range []format.Version{{Major: 1, Minor: 2}, {Major: 2, Minor: 0}, {Major: 2, Minor: 1}} {
		a := &Anim{
			Name:       "a_fighter_wait",
			FrameCount: 2,
			Groups: []TrackGroup{
				{
					Name: "Hip",
					Tracks: []Track{
						{
							Name:            "Transform",
							Type:            format.TrackTransform,
							FrameCount:      2,
							CompensateScale: true,
							Channels: []TrackChannel{
								{Min: 0, Max: 1, BitWidth: 0, Bits: nil},
							},
						},
					},
				},
			},
		}

		w := layout.NewWriter()
		require.NoError(t, WriteAnim(w, a, v))

		r := layout.NewReader(w.Bytes())
		got, err := ReadAnim(r, v)
		w.Release()
		require.NoError(t, err)

		require.Equal(t, a.Name, got.Name)
		require.Equal(t, a.FrameCount, got.FrameCount)

		wantCompensateScale := v.AtLeast(format.Version{Major: 2, Minor: 0})
		require.Equal(t, wantCompensateScale, got.Groups[0].Tracks[0].CompensateScale,
			"CompensateScale for version %s", v)
	}
}

func TestAnimCompensateScaleForcedFalseUnder1_2OnWrite(t *testing.T) {
	a := &Anim{
		Name: "a_fighter_wait",
		Groups: []TrackGroup{
			{
				Name: "Hip",
				Tracks: []Track{
					{Name: "Transform", Type: format.TrackTransform, CompensateScale: true},
				},
			},
		},
	}

	v := format.Version{Major: 1, Minor: 2}
	w := layout.NewWriter()
	require.NoError(t, WriteAnim(w, a, v))

	r := layout.NewReader(w.Bytes())
	got, err := ReadAnim(r, v)
	w.Release()
	require.NoError(t, err)
	require.False(t, got.Groups[0].Tracks[0].CompensateScale,
		"1.2 must never round-trip CompensateScale=true, even if the in-memory value was set")
}

func TestModlRoundTrip(t *testing.T) {
	m := &Modl{
		SkeletonFileName:  "model.nusktb",
		MeshFileName:      "model.numshb",
		MaterialFileNames: []string{"model.numatb"},
		Entries: []ModlEntry{
			{MeshObjectName: "body", SubIndex: 0, MaterialLabel: "mat_skin"},
			{MeshObjectName: "body", SubIndex: 1, MaterialLabel: "mat_eyes"},
		},
	}

	w := layout.NewWriter()
	require.NoError(t, WriteModl(w, m))

	r := layout.NewReader(w.Bytes())
	got, err := ReadModl(r)
	w.Release()
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestSkelRoundTrip(t *testing.T) {
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	s := &Skel{
		Bones: []Bone{
			{Name: "Hip", ParentIndex: -1, Transform: identity, WorldTransform: identity},
			{Name: "Spine", ParentIndex: 0, Transform: identity, WorldTransform: identity},
		},
	}

	w := layout.NewWriter()
	require.NoError(t, WriteSkel(w, s))

	r := layout.NewReader(w.Bytes())
	got, err := ReadSkel(r)
	w.Release()
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestNlstRoundTrip(t *testing.T) {
	n := &Nlst{Names: []string{"alpha", "beta", ""}}

	w := layout.NewWriter()
	require.NoError(t, WriteNlst(w, n))

	r := layout.NewReader(w.Bytes())
	got, err := ReadNlst(r)
	w.Release()
	require.NoError(t, err)
	require.Equal(t, n, got)
}

func TestNrpdRoundTrip(t *testing.T) {
	n := &Nrpd{
		FrameBufferNames: []string{"color", "depth"},
		Passes: []RenderPass{
			{
				Name:              "opaque",
				InputAttachments:  []string{"depth"},
				OutputAttachments: []string{"color"},
				Width:             1920,
				Height:            1080,
			},
		},
	}

	w := layout.NewWriter()
	require.NoError(t, WriteNrpd(w, n))

	r := layout.NewReader(w.Bytes())
	got, err := ReadNrpd(r)
	w.Release()
	require.NoError(t, err)
	require.Equal(t, n, got)
}

func TestNufxRoundTripV1_0AndV1_1(t *testing.T) {
	for _, v := range []format.Version{{Major: 1, Minor: 0}, {Major: 1, Minor: 1}} {
		n := &Nufx{
			Programs: []ShaderProgram{
				{
					Name:               "opaque_program",
					RenderPassName:     "opaque",
					VertexShaderName:   "vs_opaque",
					PixelShaderName:    "ps_opaque",
					MaterialParameters: []uint64{1, 2, 3},
				},
			},
		}
		if v.AtLeast(format.Version{Major: 1, Minor: 1}) {
			n.Programs[0].ComputeShaderName = "cs_opaque"
			n.Programs[0].GeometryShaderName = "gs_opaque"
		}

		w := layout.NewWriter()
		require.NoError(t, WriteNufx(w, n, v))

		r := layout.NewReader(w.Bytes())
		got, err := ReadNufx(r, v)
		w.Release()
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestShdrRoundTrip(t *testing.T) {
	s := &Shdr{
		Blobs: []ShaderBlob{
			{Name: "vs_opaque", Data: []byte{1, 2, 3, 4}},
			{Name: "empty_blob", Data: nil},
		},
	}

	w := layout.NewWriter()
	require.NoError(t, WriteShdr(w, s))

	r := layout.NewReader(w.Bytes())
	got, err := ReadShdr(r)
	w.Release()
	require.NoError(t, err)
	require.Equal(t, s.Blobs[0].Name, got.Blobs[0].Name)
	require.Equal(t, s.Blobs[0].Data, got.Blobs[0].Data)
	require.Equal(t, s.Blobs[1].Name, got.Blobs[1].Name)
	require.Empty(t, got.Blobs[1].Data)
}
