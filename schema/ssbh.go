// Package schema holds the per-format record definitions built on the
// generic layout engine: one file per format family, mirroring how the
// teacher splits NumericHeader/NumericIndexEntry from TextHeader/
// TextIndexEntry rather than sharing one generic header type.
//
// Field-by-field schemas are explicitly out of spec scope ("mechanical...
// lives in the schema surface, not in this spec"); what matters is that
// every schema here plugs into layout.Reader/layout.Writer the same way,
// which is what the round-trip and invariant tests in this package verify.
package schema

import (
	"fmt"

	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/internal/errs"
	"github.com/smashforge/ssbh/layout"
)

// innerMagic identifies which record family follows the SSBH container
// header, distinct from the four-byte HBSS container magic itself.
type innerMagic [4]byte

var (
	magicHlpb = innerMagic{'H', 'l', 'p', 'b'}
	magicMatl = innerMagic{'M', 'a', 't', 'l'}
	magicModl = innerMagic{'M', 'o', 'd', 'l'}
	magicMesh = innerMagic{'M', 'e', 's', 'h'}
	magicSkel = innerMagic{'S', 'k', 'e', 'l'}
	magicAnim = innerMagic{'A', 'n', 'i', 'm'}
	magicNlst = innerMagic{'N', 'l', 's', 't'}
	magicNrpd = innerMagic{'N', 'r', 'p', 'd'}
	magicNufx = innerMagic{'N', 'u', 'f', 'x'}
	magicShdr = innerMagic{'S', 'h', 'd', 'r'}
)

// Ssbh is the top-level container every SSBH file decodes to: a record
// kind, a version, and the decoded record itself as an `any` that callers
// type-assert to the concrete schema type (*Hlpb, *Mesh, *Anim, ...).
//
// This mirrors spec §4.6's format dispatch: the container's only job is to
// identify magic + version and route to the matching schema.
type Ssbh struct {
	Kind    format.RecordKind
	Version format.Version
	Record  any
}

// ssbhHeaderSize is the fixed container header: 4-byte "HBSS" magic, an
// 8-byte reserved field (kept zero; the inner magic that follows starts at
// offset 12), 4-byte inner magic, and a (major,minor) version pair.
// 4 + 8 + 4 + 2 + 2 = 20 bytes.
const ssbhHeaderSize = 20

// ReadSsbh parses a complete SSBH file, dispatching on magic and version
// per spec §4.6. The returned Diagnostics carries a non-fatal
// TrailingGarbage warning when bytes remain after the last reachable
// record.
func ReadSsbh(data []byte) (*Ssbh, Diagnostics, error) {
	return ReadSsbhWithOptions(data, layout.ReaderOptions{})
}

// ReadSsbhWithOptions is ReadSsbh with caller-controlled strictness: when
// opts.StrictTrailingGarbage is set, a non-empty TrailingGarbage diagnostic
// is returned as an error instead of a warning.
func ReadSsbhWithOptions(data []byte, opts layout.ReaderOptions) (*Ssbh, Diagnostics, error) {
	r := layout.NewReader(data)

	var magic [4]byte
	if err := r.ReadFixed(magic[:]); err != nil {
		return nil, Diagnostics{}, err
	}
	if magic != [4]byte(format.MagicHBSS) {
		return nil, Diagnostics{}, fmt.Errorf("%w: %q", errs.ErrUnknownMagic, magic[:])
	}

	if _, err := r.ReadBytes(8); err != nil { // reserved
		return nil, Diagnostics{}, err
	}

	var inner innerMagic
	if err := r.ReadFixed(inner[:]); err != nil {
		return nil, Diagnostics{}, err
	}

	majorU, err := r.ReadU16()
	if err != nil {
		return nil, Diagnostics{}, err
	}
	minorU, err := r.ReadU16()
	if err != nil {
		return nil, Diagnostics{}, err
	}
	version := format.Version{Major: majorU, Minor: minorU}

	kind, record, err := dispatch(inner, version, r)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	n, has := r.TrailingGarbage()
	diag := Diagnostics{}
	if has {
		garbageErr := fmt.Errorf("%w: %d byte(s)", errs.ErrTrailingGarbage, n)
		if opts.StrictTrailingGarbage {
			return nil, Diagnostics{}, garbageErr
		}
		diag.Warnings = append(diag.Warnings, garbageErr)
	}

	return &Ssbh{Kind: kind, Version: version, Record: record}, diag, nil
}

// dispatch routes to the schema matching (inner, version). Unknown magic
// or version fails fast, per spec §4.3/§4.6.
func dispatch(inner innerMagic, v format.Version, r *layout.Reader) (format.RecordKind, any, error) {
	switch inner {
	case magicHlpb:
		if v != (format.Version{Major: 1, Minor: 1}) {
			return 0, nil, unsupportedVersion(v)
		}

		rec, err := ReadHlpbV1_1(r)
		return format.KindHlpb, rec, err

	case magicMatl:
		switch v {
		case format.Version{Major: 1, Minor: 5}, format.Version{Major: 1, Minor: 6}:
			rec, err := ReadMatl(r, v)
			return format.KindMatl, rec, err
		default:
			return 0, nil, unsupportedVersion(v)
		}

	case magicModl:
		if v != (format.Version{Major: 1, Minor: 7}) {
			return 0, nil, unsupportedVersion(v)
		}

		rec, err := ReadModl(r)
		return format.KindModl, rec, err

	case magicMesh:
		switch v {
		case format.Version{Major: 1, Minor: 8}, format.Version{Major: 1, Minor: 9}, format.Version{Major: 1, Minor: 10}:
			rec, err := ReadMesh(r, v)
			return format.KindMesh, rec, err
		default:
			return 0, nil, unsupportedVersion(v)
		}

	case magicSkel:
		if v != (format.Version{Major: 1, Minor: 0}) {
			return 0, nil, unsupportedVersion(v)
		}

		rec, err := ReadSkel(r)
		return format.KindSkel, rec, err

	case magicAnim:
		switch v {
		case format.Version{Major: 1, Minor: 2}, format.Version{Major: 2, Minor: 0}, format.Version{Major: 2, Minor: 1}:
			rec, err := ReadAnim(r, v)
			return format.KindAnim, rec, err
		default:
			return 0, nil, unsupportedVersion(v)
		}

	case magicNlst:
		if v != (format.Version{Major: 1, Minor: 0}) {
			return 0, nil, unsupportedVersion(v)
		}

		rec, err := ReadNlst(r)
		return format.KindNlst, rec, err

	case magicNrpd:
		if v != (format.Version{Major: 1, Minor: 6}) {
			return 0, nil, unsupportedVersion(v)
		}

		rec, err := ReadNrpd(r)
		return format.KindNrpd, rec, err

	case magicNufx:
		switch v {
		case format.Version{Major: 1, Minor: 0}, format.Version{Major: 1, Minor: 1}:
			rec, err := ReadNufx(r, v)
			return format.KindNufx, rec, err
		default:
			return 0, nil, unsupportedVersion(v)
		}

	case magicShdr:
		if v != (format.Version{Major: 1, Minor: 2}) {
			return 0, nil, unsupportedVersion(v)
		}

		rec, err := ReadShdr(r)
		return format.KindShdr, rec, err

	default:
		return 0, nil, fmt.Errorf("%w: %q", errs.ErrUnknownMagic, inner[:])
	}
}

func unsupportedVersion(v format.Version) error {
	return fmt.Errorf("%w: %s", errs.ErrUnsupportedVersion, v)
}

// WriteSsbh serializes s back to its container + inner-record bytes.
func WriteSsbh(s *Ssbh) ([]byte, error) {
	w := layout.NewWriter()
	defer w.Release()

	w.WriteBytes(format.MagicHBSS[:])
	w.WriteZero(8)

	var inner innerMagic
	switch s.Kind {
	case format.KindHlpb:
		inner = magicHlpb
	case format.KindMatl:
		inner = magicMatl
	case format.KindModl:
		inner = magicModl
	case format.KindMesh:
		inner = magicMesh
	case format.KindSkel:
		inner = magicSkel
	case format.KindAnim:
		inner = magicAnim
	case format.KindNlst:
		inner = magicNlst
	case format.KindNrpd:
		inner = magicNrpd
	case format.KindNufx:
		inner = magicNufx
	case format.KindShdr:
		inner = magicShdr
	default:
		return nil, fmt.Errorf("%w: record kind %s", errs.ErrUnknownMagic, s.Kind)
	}
	w.WriteBytes(inner[:])
	w.WriteU16(s.Version.Major)
	w.WriteU16(s.Version.Minor)

	var err error
	switch rec := s.Record.(type) {
	case *Hlpb:
		err = WriteHlpbV1_1(w, rec)
	case *Matl:
		err = WriteMatl(w, rec, s.Version)
	case *Modl:
		err = WriteModl(w, rec)
	case *Mesh:
		err = WriteMesh(w, rec, s.Version)
	case *Skel:
		err = WriteSkel(w, rec)
	case *Anim:
		err = WriteAnim(w, rec, s.Version)
	case *Nlst:
		err = WriteNlst(w, rec)
	case *Nrpd:
		err = WriteNrpd(w, rec)
	case *Nufx:
		err = WriteNufx(w, rec, s.Version)
	case *Shdr:
		err = WriteShdr(w, rec)
	default:
		return nil, fmt.Errorf("unsupported record type %T", s.Record)
	}
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(w.Bytes()))
	copy(out, w.Bytes())

	return out, nil
}

// Diagnostics carries non-fatal warnings produced alongside a successful
// read, per spec §7's policy that TrailingGarbage is the sole warning:
// "yields a value and a diagnostic."
type Diagnostics struct {
	Warnings []error
}

// HasWarnings reports whether any diagnostic was recorded.
func (d Diagnostics) HasWarnings() bool { return len(d.Warnings) > 0 }
