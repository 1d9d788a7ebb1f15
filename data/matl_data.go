package data

import (
	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/schema"
)

// MatlParamData is a normalized material parameter: the tagged union
// collapsed to a single `any` payload (one of float32, bool, [4]float32,
// string, schema.BlendState, schema.RasterizerState, schema.SamplerState),
// so callers don't need to switch on MatlParamKind to read a value they
// already know the type of.
type MatlParamData struct {
	ParamID uint64
	Value   any
}

// MatlEntryData is one normalized material.
type MatlEntryData struct {
	MaterialName string
	ShaderLabel  string
	Params       []MatlParamData
}

// MatlData is the normalized view over a Matl record.
type MatlData struct {
	Entries []MatlEntryData
}

// NewMatlData converts a parsed Matl record to its normalized form.
func NewMatlData(m *schema.Matl) (*MatlData, error) {
	d := &MatlData{Entries: make([]MatlEntryData, len(m.Entries))}

	for i, e := range m.Entries {
		ed := MatlEntryData{MaterialName: e.MaterialName, ShaderLabel: e.ShaderLabel}

		for _, p := range e.Params {
			ed.Params = append(ed.Params, MatlParamData{ParamID: p.ParamID, Value: paramValue(p)})
		}

		d.Entries[i] = ed
	}

	return d, nil
}

// EntryByName returns the first material entry with the given name, since
// unlike Mesh objects, Matl entries carry no disambiguating subindex.
func (d *MatlData) EntryByName(name string) (*MatlEntryData, bool) {
	for i := range d.Entries {
		if d.Entries[i].MaterialName == name {
			return &d.Entries[i], true
		}
	}

	return nil, false
}

func paramValue(p schema.MatlParam) any {
	switch p.Kind {
	case schema.MatlParamFloat:
		return p.Float
	case schema.MatlParamBoolean:
		return p.Boolean
	case schema.MatlParamVector4:
		return p.Vector4
	case schema.MatlParamTextureName:
		return p.Text
	case schema.MatlParamBlendState:
		return p.Blend
	case schema.MatlParamRasterizerState:
		return p.Raster
	case schema.MatlParamSamplerState:
		return p.Sampler
	default:
		return nil
	}
}

// ToMatl converts normalized material data back to a Matl record for the
// given version.
func (d *MatlData) ToMatl(version format.Version) (*schema.Matl, error) {
	m := &schema.Matl{Entries: make([]schema.MatlEntry, len(d.Entries))}

	for i, e := range d.Entries {
		se := schema.MatlEntry{MaterialName: e.MaterialName, ShaderLabel: e.ShaderLabel}

		for _, p := range e.Params {
			sp := schema.MatlParam{ParamID: p.ParamID}

			switch v := p.Value.(type) {
			case float32:
				sp.Kind = schema.MatlParamFloat
				sp.Float = v
			case bool:
				sp.Kind = schema.MatlParamBoolean
				sp.Boolean = v
			case [4]float32:
				sp.Kind = schema.MatlParamVector4
				sp.Vector4 = v
			case string:
				sp.Kind = schema.MatlParamTextureName
				sp.Text = v
			case schema.BlendState:
				sp.Kind = schema.MatlParamBlendState
				sp.Blend = v
			case schema.RasterizerState:
				sp.Kind = schema.MatlParamRasterizerState
				sp.Raster = v
			case schema.SamplerState:
				sp.Kind = schema.MatlParamSamplerState
				sp.Sampler = v
			}

			se.Params = append(se.Params, sp)
		}

		m.Entries[i] = se
	}

	return m, nil
}
