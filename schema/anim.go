package schema

import (
	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/layout"
)

// TrackChannel is one quantized scalar channel of a track's compressed
// keyframe stream: the dequantization range and the bit width each frame's
// value is packed at, followed by the packed bits themselves. data/anim_data.go
// decodes/encodes this against data.AnimData's dense per-frame view.
type TrackChannel struct {
	Min, Max float32
	BitWidth uint8
	Bits     []byte // bit-packed; length = ceil(frameCount*BitWidth/8)
}

const trackChannelHeaderSize = 4 + 4 + 1 + 3 /*pad*/ + 16 /*bits array descriptor*/

func readTrackChannel(r *layout.Reader) (TrackChannel, error) {
	var c TrackChannel
	var err error

	if c.Min, err = r.ReadF32(); err != nil {
		return c, err
	}
	if c.Max, err = r.ReadF32(); err != nil {
		return c, err
	}

	bw, err := r.ReadU8()
	if err != nil {
		return c, err
	}
	c.BitWidth = bw
	if _, err = r.ReadBytes(3); err != nil {
		return c, err
	}

	c.Bits, err = r.ReadByteArray()

	return c, err
}

func writeTrackChannel(w *layout.Writer, c TrackChannel) error {
	w.WriteF32(c.Min)
	w.WriteF32(c.Max)
	w.WriteU8(c.BitWidth)
	w.WriteZero(3)

	return w.WriteByteArray(layout.DefaultAlignment, c.Bits)
}

// Track is one animated property of one bone or material/visibility
// target: a name, a type discriminant, a frame count, the
// CompensateScale flag (stored only from version 2.0 on, see
// animCompensateScaleVersion), and the per-component channels.
type Track struct {
	Name            string
	Type            format.TrackType
	FrameCount      uint32
	CompensateScale bool
	Channels        []TrackChannel
}

const trackHeaderSize = 8 + 1 + 1 + 2 /*pad*/ + 4 + 16

func readTrack(r *layout.Reader, supportsCompensateScale bool) (Track, error) {
	var t Track
	var err error

	if t.Name, _, err = r.ReadString(); err != nil {
		return t, err
	}

	kind, err := r.ReadU8()
	if err != nil {
		return t, err
	}
	t.Type = format.TrackType(kind)

	comp, err := r.ReadU8()
	if err != nil {
		return t, err
	}
	t.CompensateScale = comp != 0 && supportsCompensateScale
	if _, err = r.ReadBytes(2); err != nil {
		return t, err
	}

	if t.FrameCount, err = r.ReadU32(); err != nil {
		return t, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		c, err := readTrackChannel(r)
		if err != nil {
			return err
		}
		t.Channels = append(t.Channels, c)
		return nil
	})

	return t, err
}

func writeTrack(w *layout.Writer, t Track, supportsCompensateScale bool) error {
	name := t.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}

	w.WriteU8(uint8(t.Type))
	if t.CompensateScale && supportsCompensateScale {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
	w.WriteZero(2)
	w.WriteU32(t.FrameCount)

	channels := t.Channels
	return w.WriteArray(layout.DefaultAlignment, len(channels), trackChannelHeaderSize, func(w *layout.Writer, i int) error {
		return writeTrackChannel(w, channels[i])
	})
}

// TrackGroup is one bone's (or material's) set of tracks, grouped the way
// the format groups per-target tracks under one named owner (e.g. all of
// a bone's Transform/Visibility tracks under the bone's name).
type TrackGroup struct {
	Name   string
	Tracks []Track
}

const trackGroupSize = 8 + 16

func readTrackGroup(r *layout.Reader, supportsCompensateScale bool) (TrackGroup, error) {
	var g TrackGroup
	var err error

	if g.Name, _, err = r.ReadString(); err != nil {
		return g, err
	}

	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		t, err := readTrack(r, supportsCompensateScale)
		if err != nil {
			return err
		}
		g.Tracks = append(g.Tracks, t)
		return nil
	})

	return g, err
}

func writeTrackGroup(w *layout.Writer, g TrackGroup, supportsCompensateScale bool) error {
	name := g.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}

	tracks := g.Tracks
	return w.WriteArray(layout.DefaultAlignment, len(tracks), trackHeaderSize, func(w *layout.Writer, i int) error {
		return writeTrack(w, tracks[i], supportsCompensateScale)
	})
}

// animCompensateScaleVersion is the first version whose tracks support a
// per-track CompensateScale flag; 1.2 files always decode it false.
var animCompensateScaleVersion = format.Version{Major: 2, Minor: 0}

// Anim is the animation record, versions 1.2, 2.0, and 2.1. The versions
// share this schema; 2.0/2.1 additionally support the CompensateScale flag
// per track (1.2 files always decode it false), enforced directly by
// ReadAnim/WriteAnim via the version they're given.
type Anim struct {
	Name       string
	FrameCount uint32
	Groups     []TrackGroup
}

func ReadAnim(r *layout.Reader, v format.Version) (*Anim, error) {
	a := &Anim{}
	var err error

	if a.Name, _, err = r.ReadString(); err != nil {
		return nil, err
	}
	if a.FrameCount, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if _, err = r.ReadBytes(4); err != nil { // pad
		return nil, err
	}

	supportsCompensateScale := v.AtLeast(animCompensateScaleVersion)
	_, err = r.ReadArray(func(r *layout.Reader, _ int) error {
		g, err := readTrackGroup(r, supportsCompensateScale)
		if err != nil {
			return err
		}
		a.Groups = append(a.Groups, g)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

func WriteAnim(w *layout.Writer, a *Anim, v format.Version) error {
	return w.WriteRecord(8+4+4+16 /*name, frame count, pad, array*/, func(w *layout.Writer) error {
		return writeAnimFields(w, a, v)
	})
}

func writeAnimFields(w *layout.Writer, a *Anim, v format.Version) error {
	name := a.Name
	if err := w.WriteString(layout.DefaultAlignment, &name); err != nil {
		return err
	}
	w.WriteU32(a.FrameCount)
	w.WriteZero(4)

	supportsCompensateScale := v.AtLeast(animCompensateScaleVersion)
	groups := a.Groups
	return w.WriteArray(layout.DefaultAlignment, len(groups), trackGroupSize, func(w *layout.Writer, i int) error {
		return writeTrackGroup(w, groups[i], supportsCompensateScale)
	})
}
