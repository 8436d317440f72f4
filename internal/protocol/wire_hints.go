package protocol

import "math"

// WireHints is the minimal subset of capability.WireHints a codec needs to
// convert between a control's semantic value and its wire encoding. It is
// a parallel, dependency-free struct (internal/protocol does not import
// internal/capability) so the codec packages stay leaf packages.
type WireHints struct {
	ScaleFactor float64
	Offset      float64
}

// EncodeWireValue applies the scale_factor/offset transform from spec §4.2:
// wire = round((value - offset) * scale_factor).
func EncodeWireValue(h WireHints, value float64) int64 {
	scale := h.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	return int64(math.Round((value - h.Offset) * scale))
}

// DecodeWireValue is EncodeWireValue's inverse: value = wire/scale_factor + offset.
func DecodeWireValue(h WireHints, wire int64) float64 {
	scale := h.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	return float64(wire)/scale + h.Offset
}
