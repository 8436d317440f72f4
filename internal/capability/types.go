// Package capability builds the declarative, per-radar capability
// manifest: the control schema and constraints a radar exposes, resolved
// from the model database and the live discovery record. The manifest is
// the single source of truth for control schema; internal/control holds
// only live values against it.
package capability

import "github.com/marinecore/radarcore/internal/models"

// ControlType enumerates the value shapes a control can take.
type ControlType string

const (
	TypeNumber   ControlType = "number"
	TypeEnum     ControlType = "enum"
	TypeBoolean  ControlType = "boolean"
	TypeCompound ControlType = "compound"
	TypeString   ControlType = "string"
)

// Category classifies a control for UI grouping and constraint scope.
type Category string

const (
	CategoryBase         Category = "base"
	CategoryExtended     Category = "extended"
	CategoryInfo         Category = "info"
	CategoryInstallation Category = "installation"
)

// RangeSpec is a numeric control's legal span.
type RangeSpec struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit,omitempty"`
}

// EnumValue is one label/value pair of an enum control. Values need not be
// contiguous.
type EnumValue struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// WireHints describes how a semantic control value maps onto the brand's
// wire encoding.
type WireHints struct {
	ScaleFactor      float64 `json:"scaleFactor,omitempty"`
	Offset           float64 `json:"offset,omitempty"`
	Step             float64 `json:"step,omitempty"`
	HasEnabled       bool    `json:"hasEnabled,omitempty"`
	SendAlways       bool    `json:"sendAlways,omitempty"`
	HasAutoAdjustable bool   `json:"hasAutoAdjustable,omitempty"`
	AutoAdjustMin    float64 `json:"autoAdjustMin,omitempty"`
	AutoAdjustMax    float64 `json:"autoAdjustMax,omitempty"`
	SettableIndices  []int   `json:"settableIndices,omitempty"`
}

// PropertyDefinition describes one named sub-range of a Compound control.
type PropertyDefinition struct {
	Range RangeSpec `json:"range"`
}

// ControlDefinition is the declarative schema for one control id.
type ControlDefinition struct {
	ID         string                        `json:"id"`
	Type       ControlType                   `json:"type"`
	Range      *RangeSpec                    `json:"range,omitempty"`
	Values     []EnumValue                   `json:"values,omitempty"`
	Modes      []string                      `json:"modes,omitempty"`
	Properties map[string]PropertyDefinition `json:"properties,omitempty"`
	WireHints  *WireHints                    `json:"wireHints,omitempty"`
	ReadOnly   bool                          `json:"readOnly"`
	Category   Category                      `json:"category"`
}

// HasMode reports whether mode (e.g. "auto") is declared on the control.
func (d ControlDefinition) HasMode(mode string) bool {
	for _, m := range d.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// ConstraintType enumerates the ways a constraint can affect a control.
type ConstraintType string

const (
	ReadOnlyWhen   ConstraintType = "ReadOnlyWhen"
	DisabledWhen   ConstraintType = "DisabledWhen"
	RestrictedWhen ConstraintType = "RestrictedWhen"
)

// ConstraintCondition names the control this constraint depends on and the
// comparison that activates it.
type ConstraintCondition struct {
	Type      ConstraintType `json:"type"`
	DependsOn string         `json:"dependsOn"`
	Operator  string         `json:"operator"`
	Value     string         `json:"value"`
}

// ConstraintEffect is what happens to the constrained control when the
// condition holds.
type ConstraintEffect struct {
	Disabled      *bool    `json:"disabled,omitempty"`
	ReadOnly      *bool    `json:"readOnly,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

// ControlConstraint is a declarative rule evaluated by the control store
// against the live state of another control.
type ControlConstraint struct {
	ControlID string              `json:"controlId"`
	Condition ConstraintCondition `json:"condition"`
	Effect    ConstraintEffect    `json:"effect"`
}

// SupportedFeature names an optional API surface a host provider
// implements (declared, not enforced, by the core).
type SupportedFeature string

const (
	FeatureArpa       SupportedFeature = "arpa"
	FeatureGuardZones SupportedFeature = "guardZones"
	FeatureTrails     SupportedFeature = "trails"
)

// Characteristics summarizes a radar's hardware capability, copied from
// its ModelInfo at manifest-build time.
type Characteristics struct {
	MaxRange            uint32   `json:"maxRange"`
	MinRange            uint32   `json:"minRange"`
	SupportedRanges     []uint32 `json:"supportedRanges"`
	SpokesPerRevolution uint16   `json:"spokesPerRevolution"`
	MaxSpokeLength      uint16   `json:"maxSpokeLength"`
	HasDoppler          bool     `json:"hasDoppler"`
	HasDualRange        bool     `json:"hasDualRange"`
	MaxDualRange        uint32   `json:"maxDualRange"`
	NoTransmitZoneCount uint8    `json:"noTransmitZoneCount"`
}

// Manifest is the full per-radar capability document.
type Manifest struct {
	ID               string              `json:"id"`
	Make             string              `json:"make"`
	Model            string              `json:"model"`
	ModelFamily      string              `json:"modelFamily,omitempty"`
	SerialNumber     string              `json:"serialNumber,omitempty"`
	FirmwareVersion  string              `json:"firmwareVersion,omitempty"`
	Characteristics  Characteristics     `json:"characteristics"`
	Controls         []ControlDefinition `json:"controls"`
	Constraints      []ControlConstraint `json:"constraints"`
	SupportedFeatures []SupportedFeature `json:"supportedFeatures"`
}

// modelToCharacteristics copies a ModelInfo's hardware fields, optionally
// overriding the spoke geometry with runtime-observed values (used when a
// discovery reports different spoke counts than the model database, e.g.
// a lower-resolution firmware).
func modelToCharacteristics(m models.ModelInfo, spokesPerRevolution, maxSpokeLength uint16) Characteristics {
	return Characteristics{
		MaxRange:            m.MaxRange,
		MinRange:            m.MinRange,
		SupportedRanges:     append([]uint32(nil), m.RangeTable...),
		SpokesPerRevolution: spokesPerRevolution,
		MaxSpokeLength:      maxSpokeLength,
		HasDoppler:          m.HasDoppler,
		HasDualRange:        m.HasDualRange,
		MaxDualRange:        m.MaxDualRange,
		NoTransmitZoneCount: m.NoTransmitZones,
	}
}
