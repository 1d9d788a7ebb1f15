package schema

import "github.com/smashforge/ssbh/layout"

// ShaderBlob is one compiled shader binary with its stage-independent
// label and the raw bytes a graphics backend compiles or loads directly.
type ShaderBlob struct {
	Name string
	Data []byte
}

const shaderBlobSize = 8 + 16 // name pointer + byte-array descriptor

func (ShaderBlob) SizeInBytes() int { return shaderBlobSize }

// Shdr is the shader blob record (format version 1.2): a named list of
// opaque compiled-shader byte runs.
type Shdr struct {
	Blobs []ShaderBlob
}

func ReadShdr(r *layout.Reader) (*Shdr, error) {
	s := &Shdr{}

	_, err := r.ReadArray(func(r *layout.Reader, _ int) error {
		b, err := readShaderBlob(r)
		if err != nil {
			return err
		}
		s.Blobs = append(s.Blobs, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func readShaderBlob(r *layout.Reader) (ShaderBlob, error) {
	var b ShaderBlob
	var err error

	if b.Name, _, err = r.ReadString(); err != nil {
		return b, err
	}

	b.Data, err = r.ReadByteArray()

	return b, err
}

func WriteShdr(w *layout.Writer, s *Shdr) error {
	blobs := s.Blobs
	return w.WriteRecord(16, func(w *layout.Writer) error {
		return w.WriteArray(layout.DefaultAlignment, len(blobs), shaderBlobSize, func(w *layout.Writer, i int) error {
			return writeShaderBlob(w, blobs[i])
		})
	})
}

func writeShaderBlob(w *layout.Writer, b ShaderBlob) error {
	name := b.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}

	return w.WriteByteArray(layout.DefaultAlignment, b.Data)
}
