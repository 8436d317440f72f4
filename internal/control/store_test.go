package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinecore/radarcore/internal/capability"
	"github.com/marinecore/radarcore/internal/models"
)

func TestConstraintEvaluationS5(t *testing.T) {
	// HALO24: presetMode + gain + interferenceRejection present.
	d := capability.Discovery{Brand: models.Navico, Model: "HALO24"}
	manifest := capability.Build(d, "1", nil)
	store := NewStore(manifest)

	if err := store.SetInternal("presetMode", 0, ""); err != nil { // harbor
		t.Fatalf("internal preset write failed: %v", err)
	}

	err := store.Set("gain", 50, "")
	var ce *ControlError
	if !errors.As(err, &ce) || ce.Kind != ErrConstraintViolated {
		t.Fatalf("expected ConstraintViolated, got %v", err)
	}
	if ce.Message != "Controlled by preset mode" {
		t.Errorf("unexpected reason: %q", ce.Message)
	}

	if err := store.SetString("presetMode", "custom"); err != nil {
		t.Fatalf("set presetMode custom: %v", err)
	}
	if err := store.Set("gain", 50, ""); err != nil {
		t.Fatalf("expected gain set to succeed after preset=custom, got %v", err)
	}
}

func TestRangeBoundaryAcceptsLowestRejectsBelow(t *testing.T) {
	d := capability.Discovery{Brand: models.Furuno, Model: "DRS4D-NXT"}
	manifest := capability.Build(d, "1", nil)
	store := NewStore(manifest)

	if err := store.Set("range", 116, ""); err != nil {
		t.Fatalf("expected lowest range value accepted, got %v", err)
	}
	if err := store.Set("range", 115, ""); err == nil {
		t.Fatal("expected one meter below lowest range to be rejected")
	}
}

func TestEnumSettableIndices(t *testing.T) {
	manifest := capability.Manifest{
		Controls: []capability.ControlDefinition{
			{
				ID:   "mode",
				Type: capability.TypeEnum,
				Values: []capability.EnumValue{
					{Label: "a", Value: 0}, {Label: "b", Value: 1}, {Label: "c", Value: 2},
				},
				WireHints: &capability.WireHints{SettableIndices: []int{0, 2}},
			},
		},
	}
	store := NewStore(manifest)
	if err := store.Set("mode", 1, ""); err == nil {
		t.Fatal("expected index 1 to be rejected as NotSettable")
	}
	if err := store.Set("mode", 2, ""); err != nil {
		t.Fatalf("expected index 2 accepted, got %v", err)
	}
}

func TestCompoundGainAutoRetainsValue(t *testing.T) {
	manifest := capability.Manifest{
		Controls: []capability.ControlDefinition{
			{ID: "gain", Type: capability.TypeCompound, Range: &capability.RangeSpec{Min: 0, Max: 100}, Modes: []string{"auto"}},
		},
	}
	store := NewStore(manifest)
	require.NoError(t, store.Set("gain", 50, ModeOn))
	v, _ := store.Get("gain")
	assert.Equal(t, ModeOn, v.Auto)
	assert.Equal(t, 50.0, v.Value)

	require.NoError(t, store.Set("gain", 50, ModeOff))
	v, _ = store.Get("gain")
	assert.Equal(t, ModeOff, v.Auto)
	assert.Equal(t, 50.0, v.Value)
}

func TestReadOnlyControlRejectsExternalSet(t *testing.T) {
	manifest := capability.Manifest{
		Controls: []capability.ControlDefinition{
			{ID: "operatingHours", Type: capability.TypeNumber, ReadOnly: true, Range: &capability.RangeSpec{Min: 0, Max: 1e7}},
		},
	}
	store := NewStore(manifest)
	if err := store.Set("operatingHours", 120, ""); err == nil {
		t.Fatal("expected external set of read-only control to fail")
	}
	if err := store.SetInternal("operatingHours", 120, ""); err != nil {
		t.Fatalf("internal numeric write should bypass read-only: %v", err)
	}
	v, _ := store.Get("operatingHours")
	if v.Value != 120 {
		t.Fatalf("expected operatingHours=120 after internal write, got %+v", v)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	manifest := capability.Manifest{
		Controls: []capability.ControlDefinition{{ID: "gain", Type: capability.TypeCompound, Range: &capability.RangeSpec{Min: 0, Max: 100}}},
	}
	store := NewStore(manifest)
	_ = store.Set("gain", 10, "")
	snap := store.Snapshot()
	snap["gain"] = Value{ControlID: "gain", Value: 999}
	v, _ := store.Get("gain")
	if v.Value == 999 {
		t.Fatal("mutating snapshot must not affect the store")
	}
}

func TestRestrictedWhenDualRangeLimitsRangeToActivePair(t *testing.T) {
	d := capability.Discovery{Brand: models.Navico, Model: "HALO24"}
	manifest := capability.Build(d, "1", nil)
	store := NewStore(manifest)

	dr := NewDualRangeController(22224, []uint32{
		50, 75, 100, 231, 463, 926, 1389, 1852, 2778, 3704,
		5556, 7408, 11112, 14816, 22224,
	})
	store.SetDualRangeController(dr)

	// Dual-range disabled: range is freely settable across the table.
	if err := store.Set("range", 3704, ""); err != nil {
		t.Fatalf("expected range settable while dual-range disabled, got %v", err)
	}

	dr.ApplyConfig(DualRangeConfig{Enabled: true, SecondaryRange: 926})
	if !dr.State().Enabled {
		t.Fatalf("expected dual-range enabled after ApplyConfig")
	}

	if err := store.Set("range", dr.State().PrimaryRange, ""); err != nil {
		t.Errorf("expected the primary range to remain settable while dual-range is engaged, got %v", err)
	}
	if err := store.Set("range", dr.State().SecondaryRange, ""); err != nil {
		t.Errorf("expected the secondary range to remain settable while dual-range is engaged, got %v", err)
	}

	err := store.Set("range", 1389, "")
	var ce *ControlError
	if !errors.As(err, &ce) || ce.Kind != ErrConstraintViolated {
		t.Fatalf("expected ErrConstraintViolated for a range outside the active pair, got %v", err)
	}
}

func TestRestrictedWhenNotEvaluatedForInternalWrites(t *testing.T) {
	d := capability.Discovery{Brand: models.Navico, Model: "HALO24"}
	manifest := capability.Build(d, "1", nil)
	store := NewStore(manifest)

	dr := NewDualRangeController(22224, []uint32{1852, 926, 463})
	store.SetDualRangeController(dr)
	dr.ApplyConfig(DualRangeConfig{Enabled: true, SecondaryRange: 926})

	if err := store.SetInternal("range", 463, ""); err != nil {
		t.Fatalf("expected an internal write to bypass the RestrictedWhen check, got %v", err)
	}
}

func TestSubscribeReceivesUpdate(t *testing.T) {
	manifest := capability.Manifest{
		Controls: []capability.ControlDefinition{{ID: "gain", Type: capability.TypeCompound, Range: &capability.RangeSpec{Min: 0, Max: 100}}},
	}
	store := NewStore(manifest)
	sub := store.Subscribe()
	defer store.Unsubscribe(sub)

	if err := store.Set("gain", 42, ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	select {
	case u := <-sub.C():
		if u.Kind != UpdateControlValue || u.Control.Value != 42 {
			t.Fatalf("unexpected update: %+v", u)
		}
	default:
		t.Fatal("expected an update to be published synchronously")
	}
}
