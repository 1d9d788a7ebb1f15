package data

import (
	"fmt"
	"math"

	"github.com/smashforge/ssbh/format"
	"github.com/smashforge/ssbh/internal/bitpack"
	"github.com/smashforge/ssbh/internal/errs"
	"github.com/smashforge/ssbh/internal/options"
	"github.com/smashforge/ssbh/internal/pool"
	"github.com/smashforge/ssbh/schema"
)

// quantizationErrorThreshold is the default per spec §4.8: the largest
// acceptable dequantized error when choosing a channel's bit width.
const quantizationErrorThreshold = 0.000002

// transformChannelCount is the fixed channel layout of a Transform track:
// translate (x,y,z), rotation (x,y,z) plus a 1-bit W-reconstruction sign,
// and scale (x,y,z).
const (
	chanTransX = iota
	chanTransY
	chanTransZ
	chanRotX
	chanRotY
	chanRotZ
	chanRotWSign
	chanScaleX
	chanScaleY
	chanScaleZ
	transformChannelCount
)

// TrackData is one track's decoded values, one entry per frame: a dense list
// of component values whose meaning depends on the track's Type (spec §3:
// "a dense list of keyframes with explicit time indices" — the index
// into Values is the time index).
type TrackData struct {
	Name       string
	Type       format.TrackType
	FrameCount int

	// Values holds one entry per frame. For TrackTransform each entry is
	// {tx,ty,tz, rx,ry,rz,rw, sx,sy,sz} (10 values, rotation already
	// reconstructed to a unit quaternion). For TrackVector4 each entry is
	// {x,y,z,w}. For TrackFloat/TrackVisibility/TrackBoolean each entry is
	// a single value.
	Values [][]float32

	// CompensateScale carries the format's per-track flag through
	// normalization; it affects skeleton evaluation downstream, not the
	// codec itself.
	CompensateScale bool
}

// AnimGroupData is one bone's (or material's) normalized track set.
type AnimGroupData struct {
	Name   string
	Tracks []TrackData
}

// AnimData is the normalized, version-independent view over an Anim
// record.
type AnimData struct {
	Name       string
	FrameCount int
	Groups     []AnimGroupData
}

// AnimEncodeOptions controls lossy re-encoding choices not recoverable
// from AnimData alone (spec §9: "the data layer deliberately loses
// original animation quantization choices").
type AnimEncodeOptions struct {
	// ErrorThreshold overrides quantizationErrorThreshold; zero means use
	// the default.
	ErrorThreshold float64
}

// AnimEncodeOption configures AnimEncodeOptions through the functional
// options pattern, for callers building options up from several optional
// sources rather than one struct literal.
type AnimEncodeOption = options.Option[*AnimEncodeOptions]

// WithErrorThreshold overrides the quantization error threshold ToAnim
// uses when choosing a channel's bit width.
func WithErrorThreshold(threshold float64) AnimEncodeOption {
	return options.New(func(o *AnimEncodeOptions) error {
		if threshold < 0 {
			return fmt.Errorf("ssbh: error threshold must be non-negative, got %f", threshold)
		}
		o.ErrorThreshold = threshold

		return nil
	})
}

// NewAnimEncodeOptions builds an AnimEncodeOptions from zero or more
// AnimEncodeOption values, applied in order.
func NewAnimEncodeOptions(opts ...AnimEncodeOption) (AnimEncodeOptions, error) {
	o := AnimEncodeOptions{}
	if err := options.Apply(&o, opts...); err != nil {
		return AnimEncodeOptions{}, err
	}

	return o, nil
}

// NewAnimData decodes anim's bit-packed channels into dense per-frame
// values, per spec §4.8: "for each frame extract bit_width bits,
// dequantize to min + (bits / (2^bit_width - 1)) * (max - min)."
func NewAnimData(anim *schema.Anim) (*AnimData, error) {
	d := &AnimData{Name: anim.Name, FrameCount: int(anim.FrameCount)}

	for _, g := range anim.Groups {
		gd := AnimGroupData{Name: g.Name}

		for _, t := range g.Tracks {
			td, err := decodeTrack(t, int(anim.FrameCount))
			if err != nil {
				return nil, err
			}
			gd.Tracks = append(gd.Tracks, td)
		}

		d.Groups = append(d.Groups, gd)
	}

	return d, nil
}

func decodeTrack(t schema.Track, frameCount int) (TrackData, error) {
	td := TrackData{Name: t.Name, Type: t.Type, FrameCount: frameCount, CompensateScale: t.CompensateScale}

	decoded := make([][]float32, len(t.Channels))
	for i, ch := range t.Channels {
		vals, err := decodeChannel(ch, frameCount)
		if err != nil {
			return td, err
		}
		decoded[i] = vals
	}

	td.Values = make([][]float32, frameCount)

	switch t.Type {
	case format.TrackTransform:
		for f := 0; f < frameCount; f++ {
			rx, ry, rz := channelAt(decoded, chanRotX, f), channelAt(decoded, chanRotY, f), channelAt(decoded, chanRotZ, f)
			sign := float32(1)
			if channelAt(decoded, chanRotWSign, f) != 0 {
				sign = -1
			}
			rw := reconstructW(rx, ry, rz, sign)

			td.Values[f] = []float32{
				channelAt(decoded, chanTransX, f), channelAt(decoded, chanTransY, f), channelAt(decoded, chanTransZ, f),
				rx, ry, rz, rw,
				channelAt(decoded, chanScaleX, f), channelAt(decoded, chanScaleY, f), channelAt(decoded, chanScaleZ, f),
			}
		}
	default:
		for f := 0; f < frameCount; f++ {
			frame := make([]float32, len(decoded))
			for c := range decoded {
				frame[c] = channelAt(decoded, c, f)
			}
			td.Values[f] = frame
		}
	}

	return td, nil
}

func channelAt(decoded [][]float32, idx, frame int) float32 {
	if idx >= len(decoded) || frame >= len(decoded[idx]) {
		return 0
	}

	return decoded[idx][frame]
}

// reconstructW derives a unit quaternion's W component from X, Y, Z and a
// stored sign bit, per spec §4.8: "the W component reconstructed from
// X²+Y²+Z²+W²=1 using a stored sign bit."
func reconstructW(x, y, z, sign float32) float32 {
	sumSq := float64(x)*float64(x) + float64(y)*float64(y) + float64(z)*float64(z)
	rem := 1 - sumSq
	if rem < 0 {
		rem = 0
	}

	return sign * float32(math.Sqrt(rem))
}

// decodeChannel dequantizes one channel's bit-packed stream using a
// pooled scratch slice sized to the frame count, matching how the vertex
// codec draws from the same pool family for its index decode buffer.
func decodeChannel(ch schema.TrackChannel, frameCount int) ([]float32, error) {
	scratch, release := pool.GetFloat32Slice(frameCount)
	defer release()

	if ch.BitWidth == 0 {
		for i := range scratch {
			scratch[i] = ch.Min
		}
	} else {
		r := bitpack.NewReader(ch.Bits)
		maxCode := float64((uint64(1) << ch.BitWidth) - 1)

		for i := 0; i < frameCount; i++ {
			bits, ok := r.ReadBits(int(ch.BitWidth))
			if !ok {
				return nil, fmt.Errorf("%w: channel ran out of bits at frame %d", errs.ErrEof, i)
			}

			t := float64(bits) / maxCode
			scratch[i] = ch.Min + float32(t)*(ch.Max-ch.Min)
		}
	}

	result := make([]float32, frameCount)
	copy(result, scratch)

	return result, nil
}

// ToAnim re-encodes normalized track data back into a versioned Anim
// record, per spec §4.8: "compute per-channel (min,max), choose the
// smallest bit_width whose max quantization error over the sample set is
// below a fixed threshold ... bit-pack."
func (d *AnimData) ToAnim(version format.Version, opts AnimEncodeOptions) (*schema.Anim, error) {
	switch version {
	case format.Version{Major: 1, Minor: 2}, format.Version{Major: 2, Minor: 0}, format.Version{Major: 2, Minor: 1}:
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedVersion, version)
	}

	threshold := opts.ErrorThreshold
	if threshold == 0 {
		threshold = quantizationErrorThreshold
	}

	a := &schema.Anim{Name: d.Name, FrameCount: uint32(d.FrameCount)}

	for _, g := range d.Groups {
		sg := schema.TrackGroup{Name: g.Name}

		for _, t := range g.Tracks {
			st, err := encodeTrack(t, threshold)
			if err != nil {
				return nil, err
			}
			if !version.AtLeast(format.Version{Major: 2, Minor: 0}) {
				st.CompensateScale = false // 1.2 has no CompensateScale field
			}
			sg.Tracks = append(sg.Tracks, st)
		}

		a.Groups = append(a.Groups, sg)
	}

	return a, nil
}

func encodeTrack(t TrackData, threshold float64) (schema.Track, error) {
	st := schema.Track{Name: t.Name, Type: t.Type, FrameCount: uint32(t.FrameCount), CompensateScale: t.CompensateScale}

	switch t.Type {
	case format.TrackTransform:
		samples := make([][]float32, transformChannelCount)
		for c := range samples {
			samples[c] = make([]float32, t.FrameCount)
		}

		for f, v := range t.Values {
			if len(v) != 10 {
				return st, fmt.Errorf("ssbh: transform track %q frame %d has %d values, want 10", t.Name, f, len(v))
			}

			rw := v[6]
			if err := checkUnitQuaternion(v[3], v[4], v[5], rw); err != nil {
				return st, err
			}

			samples[chanTransX][f], samples[chanTransY][f], samples[chanTransZ][f] = v[0], v[1], v[2]
			samples[chanRotX][f], samples[chanRotY][f], samples[chanRotZ][f] = v[3], v[4], v[5]
			if rw < 0 {
				samples[chanRotWSign][f] = 1
			}
			samples[chanScaleX][f], samples[chanScaleY][f], samples[chanScaleZ][f] = v[7], v[8], v[9]
		}

		for c := range samples {
			ch, err := encodeChannel(samples[c], threshold, c == chanRotWSign)
			if err != nil {
				return st, err
			}
			st.Channels = append(st.Channels, ch)
		}

	default:
		width := channelWidth(t.Type)
		samples := make([][]float32, width)
		for c := range samples {
			samples[c] = make([]float32, t.FrameCount)
		}

		for f, v := range t.Values {
			for c := 0; c < width && c < len(v); c++ {
				samples[c][f] = v[c]
			}
		}

		for c := range samples {
			ch, err := encodeChannel(samples[c], threshold, t.Type == format.TrackBoolean || t.Type == format.TrackVisibility)
			if err != nil {
				return st, err
			}
			st.Channels = append(st.Channels, ch)
		}
	}

	return st, nil
}

func channelWidth(t format.TrackType) int {
	switch t {
	case format.TrackVector4:
		return 4
	default:
		return 1
	}
}

func checkUnitQuaternion(x, y, z, w float32) error {
	sumSq := float64(x)*float64(x) + float64(y)*float64(y) + float64(z)*float64(z) + float64(w)*float64(w)
	if math.Abs(sumSq-1) > 1e-3 {
		return fmt.Errorf("%w: |q|^2=%f", errs.ErrNonUnitQuaternion, sumSq)
	}

	return nil
}

// encodeChannel picks the smallest bit width (0..32) whose quantization
// error stays under threshold and packs samples at that width. A channel
// whose values are all equal (or, for boolean channels, that behaves as a
// single bit) naturally resolves to bit_width 0 or 1.
func encodeChannel(samples []float32, threshold float64, boolean bool) (schema.TrackChannel, error) {
	min, max := samples[0], samples[0]
	for _, v := range samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return schema.TrackChannel{Min: min, Max: max, BitWidth: 0}, nil
	}

	maxWidth := 32
	if boolean {
		maxWidth = 1
	}

	for width := 1; width <= maxWidth; width++ {
		if quantizationError(samples, min, max, width) <= threshold {
			bits, err := packChannel(samples, min, max, width)
			if err != nil {
				return schema.TrackChannel{}, err
			}

			return schema.TrackChannel{Min: min, Max: max, BitWidth: uint8(width), Bits: bits}, nil
		}
	}

	return schema.TrackChannel{}, fmt.Errorf("%w: channel range [%f,%f]", errs.ErrTrackBitWidthTooSmall, min, max)
}

func quantizationError(samples []float32, min, max float32, width int) float64 {
	maxCode := float64((uint64(1) << uint(width)) - 1)
	worst := 0.0

	for _, v := range samples {
		code := math.Round(float64(v-min) / float64(max-min) * maxCode)
		dequant := min + float32(code/maxCode)*(max-min)
		e := math.Abs(float64(v - dequant))
		if e > worst {
			worst = e
		}
	}

	return worst
}

func packChannel(samples []float32, min, max float32, width int) ([]byte, error) {
	buf := pool.Get()
	defer pool.Put(buf)

	w := bitpack.NewWriter(buf)
	maxCode := float64((uint64(1) << uint(width)) - 1)

	for _, v := range samples {
		code := uint64(math.Round(float64(v-min) / float64(max-min) * maxCode))
		w.WriteBits(code, width)
	}
	w.Flush()

	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())

	return out, nil
}
