package schema

import "github.com/smashforge/ssbh/layout"

// RenderPass describes one pass of the render pipeline: which attachments
// it reads and writes, named by frame-buffer label.
type RenderPass struct {
	Name             string
	InputAttachments  []string
	OutputAttachments []string
	Width, Height     uint32
}

// Nrpd is the render-pipeline descriptor record (format version 1.6): a
// named list of frame-buffer attachment descriptors and the render passes
// that reference them.
type Nrpd struct {
	FrameBufferNames []string
	Passes           []RenderPass
}

func ReadNrpd(r *layout.Reader) (*Nrpd, error) {
	n := &Nrpd{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		s, _, err := r.ReadString()
		if err != nil {
			return err
		}
		n.FrameBufferNames = append(n.FrameBufferNames, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		p, err := readRenderPass(r)
		if err != nil {
			return err
		}
		n.Passes = append(n.Passes, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

func readRenderPass(r *layout.Reader) (RenderPass, error) {
	var p RenderPass
	var err error

	if p.Name, _, err = r.ReadString(); err != nil {
		return p, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		s, _, err := r.ReadString()
		if err != nil {
			return err
		}
		p.InputAttachments = append(p.InputAttachments, s)
		return nil
	})
	if err != nil {
		return p, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		s, _, err := r.ReadString()
		if err != nil {
			return err
		}
		p.OutputAttachments = append(p.OutputAttachments, s)
		return nil
	})
	if err != nil {
		return p, err
	}

	if p.Width, err = r.ReadU32(); err != nil {
		return p, err
	}
	if p.Height, err = r.ReadU32(); err != nil {
		return p, err
	}

	return p, nil
}

func WriteNrpd(w *layout.Writer, n *Nrpd) error {
	return w.WriteRecord(16+16 /*two arrays*/, func(w *layout.Writer) error {
		return writeNrpdFields(w, n)
	})
}

func writeNrpdFields(w *layout.Writer, n *Nrpd) error {
	names := n.FrameBufferNames
	err := w.WriteArray(layout.DefaultAlignment, len(names), 8, func(w *layout.Writer, i int) error {
		s := names[i]
		return w.WriteString(layout.DefaultAlignment, &s)
	})
	if err != nil {
		return err
	}

	passes := n.Passes
	return w.WriteArray(layout.DefaultAlignment, len(passes), renderPassSize, func(w *layout.Writer, i int) error {
		return writeRenderPass(w, passes[i])
	})
}

// renderPassSize is RenderPass's inline footprint: a string pointer (8),
// two array descriptors (16 each), and two u32 fields (4 each).
const renderPassSize = 8 + 16 + 16 + 4 + 4

func (RenderPass) SizeInBytes() int { return renderPassSize }

func writeRenderPass(w *layout.Writer, p RenderPass) error {
	name := p.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}

	in := p.InputAttachments
	err := w.WriteArray(layout.DefaultAlignment, len(in), 8, func(w *layout.Writer, i int) error {
		s := in[i]
		return w.WriteString(layout.DefaultAlignment, &s)
	})
	if err != nil {
		return err
	}

	out := p.OutputAttachments
	err = w.WriteArray(layout.DefaultAlignment, len(out), 8, func(w *layout.Writer, i int) error {
		s := out[i]
		return w.WriteString(layout.DefaultAlignment, &s)
	})
	if err != nil {
		return err
	}

	w.WriteU32(p.Width)
	w.WriteU32(p.Height)

	return nil
}
