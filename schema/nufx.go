package schema

import (
	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/layout"
)

// ShaderProgram binds named shader stages (vertex, pixel, compute,
// geometry) into one pipeline program and lists the material parameters
// it expects.
type ShaderProgram struct {
	Name                string
	RenderPassName      string
	VertexShaderName    string
	PixelShaderName     string
	ComputeShaderName   string // version-gated: Nufx 1.1 only
	GeometryShaderName  string // version-gated: Nufx 1.1 only
	MaterialParameters  []uint64
}

// Nufx is the shader-pipeline descriptor record (versions 1.0 and 1.1):
// a list of named shader programs.
type Nufx struct {
	Programs []ShaderProgram
}

func ReadNufx(r *layout.Reader, v format.Version) (*Nufx, error) {
	n := &Nufx{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		p, err := readShaderProgram(r, v)
		if err != nil {
			return err
		}
		n.Programs = append(n.Programs, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

func readShaderProgram(r *layout.Reader, v format.Version) (ShaderProgram, error) {
	var p ShaderProgram
	var err error

	if p.Name, _, err = r.ReadString(); err != nil {
		return p, err
	}
	if p.RenderPassName, _, err = r.ReadString(); err != nil {
		return p, err
	}
	if p.VertexShaderName, _, err = r.ReadString(); err != nil {
		return p, err
	}
	if p.PixelShaderName, _, err = r.ReadString(); err != nil {
		return p, err
	}

	if v.AtLeast(format.Version{Major: 1, Minor: 1}) {
		if p.ComputeShaderName, _, err = r.ReadString(); err != nil {
			return p, err
		}
		if p.GeometryShaderName, _, err = r.ReadString(); err != nil {
			return p, err
		}
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		id, err := r.ReadU64()
		if err != nil {
			return err
		}
		p.MaterialParameters = append(p.MaterialParameters, id)
		return nil
	})

	return p, err
}

func WriteNufx(w *layout.Writer, n *Nufx, v format.Version) error {
	programs := n.Programs
	return w.WriteRecord(16, func(w *layout.Writer) error {
		return w.WriteArray(layout.DefaultAlignment, len(programs), shaderProgramSize(v), func(w *layout.Writer, i int) error {
			return writeShaderProgram(w, programs[i], v)
		})
	})
}

// shaderProgramSize is four or six string pointers (8 bytes each)
// depending on version, plus one array descriptor (16 bytes).
func shaderProgramSize(v format.Version) int {
	if v.AtLeast(format.Version{Major: 1, Minor: 1}) {
		return 6*8 + 16
	}

	return 4*8 + 16
}

func writeShaderProgram(w *layout.Writer, p ShaderProgram, v format.Version) error {
	name := p.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	pass := p.RenderPassName
	if err := w.WriteString(layout.DefaultAlignment, &pass); err != nil {
		return err
	}
	vs := p.VertexShaderName
	if err := w.WriteString(layout.DefaultAlignment, &vs); err != nil {
		return err
	}
	ps := p.PixelShaderName
	if err := w.WriteString(layout.DefaultAlignment, &ps); err != nil {
		return err
	}

	if v.AtLeast(format.Version{Major: 1, Minor: 1}) {
		cs := p.ComputeShaderName
		if err := w.WriteString(layout.DefaultAlignment, &cs); err != nil {
			return err
		}
		gs := p.GeometryShaderName
		if err := w.WriteString(layout.DefaultAlignment, &gs); err != nil {
			return err
		}
	}

	params := p.MaterialParameters
	return w.WriteArray(layout.DefaultAlignment, len(params), 8, func(w *layout.Writer, i int) error {
		w.WriteU64(params[i])
		return nil
	})
}
