package data

import (
	"math"

	"github.com/smashforge/ssbh/layout"
)

func float32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }

func floatToBits(v float32) uint32 { return math.Float32bits(v) }

func halfToFloat(bits uint16) float32 { return layout.Float16ToFloat32(bits) }

func floatToHalf(v float32) uint16 { return layout.Float32ToFloat16(v) }
