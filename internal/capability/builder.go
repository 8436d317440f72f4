package capability

import "github.com/marinecore/radarcore/internal/models"

// Discovery is the minimal slice of a radar discovery record the builder
// needs; locator.Discovery satisfies this shape without creating an import
// cycle between internal/locator and internal/capability.
type Discovery struct {
	Brand               models.Brand
	Model               string // "" if not yet known
	SerialNumber        string // "" if not yet known
	SpokesPerRevolution uint16
	MaxSpokeLength      uint16
}

// Build assembles a capability manifest from a discovery record, looking
// up the model database (falling back to models.UnknownModel) and
// following the same control/constraint assembly as BuildFromModel.
func Build(d Discovery, radarID string, supportedFeatures []SupportedFeature) Manifest {
	model, _ := models.GetModel(d.Brand, d.Model)
	spokes := d.SpokesPerRevolution
	if spokes == 0 {
		spokes = model.SpokesPerRevolution
	}
	maxLen := d.MaxSpokeLength
	if maxLen == 0 {
		maxLen = model.MaxSpokeLength
	}
	return Manifest{
		ID:                radarID,
		Make:              d.Brand.String(),
		Model:             model.Model,
		ModelFamily:       model.Family,
		SerialNumber:      d.SerialNumber,
		Characteristics:   modelToCharacteristics(model, spokes, maxLen),
		Controls:          buildControls(model, d.SerialNumber != ""),
		Constraints:       buildConstraints(model),
		SupportedFeatures: supportedFeatures,
	}
}

// BuildFromModel builds a manifest directly from a known ModelInfo, for
// callers that already hold a ModelInfo (cmd/radarctl passes
// models.UnknownModel) rather than a raw discovery record.
func BuildFromModel(model models.ModelInfo, radarID string, supportedFeatures []SupportedFeature) Manifest {
	return Manifest{
		ID:                radarID,
		Make:              model.Brand.String(),
		Model:             model.Model,
		ModelFamily:       model.Family,
		Characteristics:   modelToCharacteristics(model, model.SpokesPerRevolution, model.MaxSpokeLength),
		Controls:          buildControls(model, false),
		Constraints:       buildConstraints(model),
		SupportedFeatures: supportedFeatures,
	}
}

// BuildFromModelWithSpokes is BuildFromModel but with runtime-observed
// spoke geometry overriding the model database's nominal values.
func BuildFromModelWithSpokes(model models.ModelInfo, radarID string, supportedFeatures []SupportedFeature, spokesPerRevolution, maxSpokeLength uint16) Manifest {
	m := BuildFromModel(model, radarID, supportedFeatures)
	m.Characteristics.SpokesPerRevolution = spokesPerRevolution
	m.Characteristics.MaxSpokeLength = maxSpokeLength
	return m
}

func buildControls(model models.ModelInfo, hasSerialNumber bool) []ControlDefinition {
	controls := make([]ControlDefinition, 0, 20)

	controls = append(controls,
		controlPower(),
		controlRange(model.RangeTable),
		controlGain(),
		controlSea(),
		controlRain(),
		controlFirmwareVersion(),
		controlOperatingHours(),
		controlTransmitHours(),
	)
	if hasSerialNumber {
		controls = append(controls, controlSerialNumber())
	}

	// Installation-category controls (bearingAlignment, antennaHeight) are
	// included as read/write controls: Set stores their values in the
	// control store, but no controller sends a wire command for them.
	for _, id := range model.Controls {
		switch {
		case id == "noTransmitZones":
			if def, ok := getExtendedControlWithZones(id, model.NoTransmitZones); ok {
				controls = append(controls, def)
			}
		case id == "interferenceRejection" && model.Brand == models.Furuno:
			controls = append(controls, controlInterferenceRejectionFurunoBoolean())
		case id == "scanSpeed" && model.Brand == models.Furuno:
			controls = append(controls, controlScanSpeedFuruno())
		default:
			if def, ok := getExtendedControl(id); ok {
				controls = append(controls, def)
			}
		}
	}
	return controls
}

func buildConstraints(model models.ModelInfo) []ControlConstraint {
	var constraints []ControlConstraint

	if model.HasControl("presetMode") {
		lockedControls := []string{"gain", "sea", "rain", "interferenceRejection"}
		for _, id := range lockedControls {
			if id == "interferenceRejection" && !model.HasControl("interferenceRejection") {
				continue
			}
			readOnly := true
			constraints = append(constraints, ControlConstraint{
				ControlID: id,
				Condition: ConstraintCondition{
					Type:      ReadOnlyWhen,
					DependsOn: "presetMode",
					Operator:  "!=",
					Value:     "custom",
				},
				Effect: ConstraintEffect{
					ReadOnly: &readOnly,
					Reason:   "Controlled by preset mode",
				},
			})
		}
	}

	// Dual-range engagement restricts the range control to the
	// primary/secondary pair currently in effect — the RestrictedWhen
	// case the reference declares but never exercises (SPEC_FULL
	// supplemented feature #2).
	if model.HasDualRange && model.MaxDualRange > 0 {
		constraints = append(constraints, ControlConstraint{
			ControlID: "range",
			Condition: ConstraintCondition{
				Type:      RestrictedWhen,
				DependsOn: "dualRange.enabled",
				Operator:  "==",
				Value:     "true",
			},
			Effect: ConstraintEffect{
				Reason: "Range is limited to the primary/secondary pair while dual-range is engaged",
			},
		})
	}

	return constraints
}
