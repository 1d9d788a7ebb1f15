package schema

import (
	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/layout"
)

// MatlParamKind discriminates a material parameter's payload, per spec
// §4.5's tagged-union schema feature.
type MatlParamKind uint8

const (
	MatlParamFloat MatlParamKind = iota
	MatlParamBoolean
	MatlParamVector4
	MatlParamTextureName
	MatlParamSamplerState
	MatlParamBlendState
	MatlParamRasterizerState
)

// matlParamKindNames maps every known discriminant value to its variant
// name, so an unrecognized kind fails fast via layout.Discriminant instead
// of silently decoding as a zero-valued parameter (spec §4.3).
var matlParamKindNames = map[MatlParamKind]string{
	MatlParamFloat:           "Float",
	MatlParamBoolean:         "Boolean",
	MatlParamVector4:         "Vector4",
	MatlParamTextureName:     "TextureName",
	MatlParamSamplerState:    "SamplerState",
	MatlParamBlendState:      "BlendState",
	MatlParamRasterizerState: "RasterizerState",
}

// MatlParam is one tagged material parameter: a known parameter ID, a
// discriminant, and exactly one populated payload field.
type MatlParam struct {
	ParamID  uint64
	Kind     MatlParamKind
	Float    float32
	Boolean  bool
	Vector4  [4]float32
	Text     string
	Blend    BlendState
	Raster   RasterizerState
	Sampler  SamplerState
}

// BlendState configures alpha blending for one material entry. Present in
// Matl 1.5/1.6 alike; v1.6 adds the alpha-sample-to-coverage flag.
type BlendState struct {
	SourceColor       uint32
	DestinationColor  uint32
	BlendFactor       [4]float32
	AlphaSampleToCoverage bool // version-gated: Matl 1.6 only
}

// RasterizerState configures fill mode, cull mode, and depth bias.
type RasterizerState struct {
	FillMode  uint32
	CullMode  uint32
	DepthBias float32
}

// SamplerState configures texture filtering and wrap modes.
type SamplerState struct {
	WrapS, WrapT, WrapR uint32
	MinFilter, MagFilter uint32
	BorderColor          [4]float32
}

const (
	blendStateSize      = 4 + 4 + 16 + 4 + 4 /*pad*/
	rasterizerStateSize = 4 + 4 + 4 + 4 /*pad*/
	samplerStateSize     = 4*5 + 16 + 4 /*pad*/
)

// matlParamSize is the fixed slot size: ID + discriminant + the widest
// payload (SamplerState at 40 bytes, larger than BlendState's 32,
// Vector4's 16 or a string pointer's 8), matching how a tagged union's size is "the size of the
// selected variant" but a homogeneous array of unions must reserve room
// for the widest.
const matlParamSize = 8 + 8 /*kind+pad*/ + samplerStateSize

// MatlEntry is one material (one shader assignment plus its parameter
// list).
type MatlEntry struct {
	MaterialName  string
	ShaderLabel   string
	Params        []MatlParam
}

// Matl is the material record, versions 1.5 and 1.6.
type Matl struct {
	Entries []MatlEntry
}

func ReadMatl(r *layout.Reader, v format.Version) (*Matl, error) {
	m := &Matl{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		e, err := readMatlEntry(r, v)
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

func readMatlEntry(r *layout.Reader, v format.Version) (MatlEntry, error) {
	var e MatlEntry
	var err error

	if e.MaterialName, _, err = r.ReadString(); err != nil {
		return e, err
	}
	if e.ShaderLabel, _, err = r.ReadString(); err != nil {
		return e, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		p, err := readMatlParam(r, v)
		if err != nil {
			return err
		}
		e.Params = append(e.Params, p)
		return nil
	})

	return e, err
}

func readMatlParam(r *layout.Reader, v format.Version) (MatlParam, error) {
	var p MatlParam

	paramID, err := r.ReadU64()
	if err != nil {
		return p, err
	}
	kind, err := r.ReadU64()
	if err != nil {
		return p, err
	}
	p.ParamID = paramID
	p.Kind = MatlParamKind(kind)

	if _, err := layout.Discriminant(p.Kind, matlParamKindNames); err != nil {
		return p, err
	}

	switch p.Kind {
	case MatlParamFloat:
		if p.Float, err = r.ReadF32(); err != nil {
			return p, err
		}
		_, err = r.ReadBytes(samplerStateSize - 4)
	case MatlParamBoolean:
		var b uint32
		if b, err = r.ReadU32(); err != nil {
			return p, err
		}
		p.Boolean = b != 0
		_, err = r.ReadBytes(samplerStateSize - 4)
	case MatlParamVector4:
		for i := range p.Vector4 {
			if p.Vector4[i], err = r.ReadF32(); err != nil {
				return p, err
			}
		}
		_, err = r.ReadBytes(samplerStateSize - 16)
	case MatlParamTextureName:
		if p.Text, _, err = r.ReadString(); err != nil {
			return p, err
		}
		_, err = r.ReadBytes(samplerStateSize - 8)
	case MatlParamBlendState:
		p.Blend, err = readBlendState(r, v)
		if err == nil {
			_, err = r.ReadBytes(samplerStateSize - blendStateSize)
		}
	case MatlParamRasterizerState:
		p.Raster, err = readRasterizerState(r)
		if err == nil {
			_, err = r.ReadBytes(samplerStateSize - rasterizerStateSize)
		}
	case MatlParamSamplerState:
		p.Sampler, err = readSamplerState(r)
	}

	return p, err
}

func readBlendState(r *layout.Reader, v format.Version) (BlendState, error) {
	var b BlendState
	var err error

	if b.SourceColor, err = r.ReadU32(); err != nil {
		return b, err
	}
	if b.DestinationColor, err = r.ReadU32(); err != nil {
		return b, err
	}
	for i := range b.BlendFactor {
		if b.BlendFactor[i], err = r.ReadF32(); err != nil {
			return b, err
		}
	}

	if v.AtLeast(format.Version{Major: 1, Minor: 6}) {
		flag, err := r.ReadU32()
		if err != nil {
			return b, err
		}
		b.AlphaSampleToCoverage = flag != 0
		if _, err := r.ReadBytes(4); err != nil { // pad
			return b, err
		}
	} else {
		if _, err := r.ReadBytes(8); err != nil { // reserved in 1.5
			return b, err
		}
	}

	return b, nil
}

func readRasterizerState(r *layout.Reader) (RasterizerState, error) {
	var s RasterizerState
	var err error

	if s.FillMode, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.CullMode, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.DepthBias, err = r.ReadF32(); err != nil {
		return s, err
	}
	_, err = r.ReadBytes(4)

	return s, err
}

func readSamplerState(r *layout.Reader) (SamplerState, error) {
	var s SamplerState
	var err error

	if s.WrapS, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.WrapT, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.WrapR, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.MinFilter, err = r.ReadU32(); err != nil {
		return s, err
	}
	if s.MagFilter, err = r.ReadU32(); err != nil {
		return s, err
	}
	for i := range s.BorderColor {
		if s.BorderColor[i], err = r.ReadF32(); err != nil {
			return s, err
		}
	}
	_, err = r.ReadBytes(4)

	return s, err
}

func WriteMatl(w *layout.Writer, m *Matl, v format.Version) error {
	entries := m.Entries
	return w.WriteRecord(16, func(w *layout.Writer) error {
		return w.WriteArray(layout.DefaultAlignment, len(entries), matlEntrySize(v), func(w *layout.Writer, i int) error {
			return writeMatlEntry(w, entries[i], v)
		})
	})
}

// matlEntrySize is MatlEntry's fixed inline footprint: two string
// pointers (8 bytes each) and one array descriptor (16 bytes) for Params.
// Params itself is variable-length, but that length lives out-of-line in
// the array's count field, not in the entry's own inline size.
func matlEntrySize(format.Version) int { return 8 + 8 + 16 }

func (MatlEntry) SizeInBytes() int { return 8 + 8 + 16 }

func writeMatlEntry(w *layout.Writer, e MatlEntry, v format.Version) error {
	name := e.MaterialName
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	label := e.ShaderLabel
	if err := w.WriteString(layout.DefaultAlignment, &label); err != nil {
		return err
	}

	params := e.Params
	return w.WriteArray(layout.DefaultAlignment, len(params), matlParamSize, func(w *layout.Writer, i int) error {
		return writeMatlParam(w, params[i], v)
	})
}

func writeMatlParam(w *layout.Writer, p MatlParam, v format.Version) error {
	w.WriteU64(p.ParamID)
	w.WriteU64(uint64(p.Kind))

	switch p.Kind {
	case MatlParamFloat:
		w.WriteF32(p.Float)
		w.WriteZero(samplerStateSize - 4)
	case MatlParamBoolean:
		if p.Boolean {
			w.WriteU32(1)
		} else {
			w.WriteU32(0)
		}
		w.WriteZero(samplerStateSize - 4)
	case MatlParamVector4:
		for _, c := range p.Vector4 {
			w.WriteF32(c)
		}
		w.WriteZero(samplerStateSize - 16)
	case MatlParamTextureName:
		text := p.Text
		if err := w.WriteString(layout.DefaultAlignment, &text); err != nil {
			return err
		}
		w.WriteZero(samplerStateSize - 8)
	case MatlParamBlendState:
		writeBlendState(w, p.Blend, v)
		w.WriteZero(samplerStateSize - blendStateSize)
	case MatlParamRasterizerState:
		writeRasterizerState(w, p.Raster)
		w.WriteZero(samplerStateSize - rasterizerStateSize)
	case MatlParamSamplerState:
		writeSamplerState(w, p.Sampler)
	}

	return nil
}

func writeBlendState(w *layout.Writer, b BlendState, v format.Version) {
	w.WriteU32(b.SourceColor)
	w.WriteU32(b.DestinationColor)
	for _, c := range b.BlendFactor {
		w.WriteF32(c)
	}

	if v.AtLeast(format.Version{Major: 1, Minor: 6}) {
		if b.AlphaSampleToCoverage {
			w.WriteU32(1)
		} else {
			w.WriteU32(0)
		}
		w.WriteZero(4)
	} else {
		w.WriteZero(8)
	}
}

func writeRasterizerState(w *layout.Writer, s RasterizerState) {
	w.WriteU32(s.FillMode)
	w.WriteU32(s.CullMode)
	w.WriteF32(s.DepthBias)
	w.WriteZero(4)
}

func writeSamplerState(w *layout.Writer, s SamplerState) {
	w.WriteU32(s.WrapS)
	w.WriteU32(s.WrapT)
	w.WriteU32(s.WrapR)
	w.WriteU32(s.MinFilter)
	w.WriteU32(s.MagFilter)
	for _, c := range s.BorderColor {
		w.WriteF32(c)
	}
	w.WriteZero(4)
}
