package controller

import (
	"github.com/marinecore/radarcore/internal/capability"
	"github.com/marinecore/radarcore/internal/protocol"
)

// ToProtocolWireHints narrows a capability.ControlDefinition's WireHints
// down to the scale/offset pair the codec packages need to encode a
// semantic value onto the wire (protocol is a leaf package and does not
// import capability, so this conversion lives on the controller side).
func ToProtocolWireHints(def capability.ControlDefinition) protocol.WireHints {
	if def.WireHints == nil {
		return protocol.WireHints{ScaleFactor: 1}
	}
	scale := def.WireHints.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	return protocol.WireHints{ScaleFactor: scale, Offset: def.WireHints.Offset}
}

// EncodeControlValue computes the wire-integer representation of value
// for def, per spec §4.2: wire = round((value - offset) * scale_factor).
func EncodeControlValue(def capability.ControlDefinition, value float64) int64 {
	return protocol.EncodeWireValue(ToProtocolWireHints(def), value)
}

// SendAlways reports whether def must be re-transmitted even when its
// value matches the store's cached value (some radars require a refresh
// send after a related control changes, spec §4.7).
func SendAlways(def capability.ControlDefinition) bool {
	return def.WireHints != nil && def.WireHints.SendAlways
}
