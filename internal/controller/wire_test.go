package controller

import (
	"testing"

	"github.com/marinecore/radarcore/internal/capability"
)

func TestToProtocolWireHintsDefaultsScaleToOneWithoutHints(t *testing.T) {
	def := capability.ControlDefinition{ID: "gain"}
	h := ToProtocolWireHints(def)
	if h.ScaleFactor != 1 || h.Offset != 0 {
		t.Errorf("expected a unit scale with no offset, got %+v", h)
	}
}

func TestToProtocolWireHintsCarriesScaleAndOffset(t *testing.T) {
	def := capability.ControlDefinition{
		ID:        "range",
		WireHints: &capability.WireHints{ScaleFactor: 10, Offset: -5},
	}
	h := ToProtocolWireHints(def)
	if h.ScaleFactor != 10 || h.Offset != -5 {
		t.Errorf("expected scale=10 offset=-5, got %+v", h)
	}
}

func TestEncodeControlValueAppliesScaleAndOffset(t *testing.T) {
	def := capability.ControlDefinition{
		ID:        "bearingAlignment",
		WireHints: &capability.WireHints{ScaleFactor: 10, Offset: 0},
	}
	if got := EncodeControlValue(def, 12.3); got != 123 {
		t.Errorf("EncodeControlValue(12.3) = %d, want 123", got)
	}
}

func TestSendAlwaysReflectsWireHintsFlag(t *testing.T) {
	plain := capability.ControlDefinition{ID: "gain", WireHints: &capability.WireHints{ScaleFactor: 1}}
	if SendAlways(plain) {
		t.Error("expected SendAlways false without the flag set")
	}

	forced := capability.ControlDefinition{ID: "interferenceRejection", WireHints: &capability.WireHints{ScaleFactor: 1, SendAlways: true}}
	if !SendAlways(forced) {
		t.Error("expected SendAlways true when the flag is set")
	}

	noHints := capability.ControlDefinition{ID: "mode"}
	if SendAlways(noHints) {
		t.Error("expected SendAlways false with nil WireHints")
	}
}
