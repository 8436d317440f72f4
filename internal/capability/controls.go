package capability

// Factory functions for standard control definitions (base and extended),
// grounded in the control id vocabulary of spec §6.

func controlPower() ControlDefinition {
	return ControlDefinition{
		ID:   "power",
		Type: TypeEnum,
		Values: []EnumValue{
			{Label: "off", Value: 0},
			{Label: "standby", Value: 1},
			{Label: "transmit", Value: 2},
		},
		Category: CategoryBase,
	}
}

func controlRange(rangeTable []uint32) ControlDefinition {
	values := make([]EnumValue, 0, len(rangeTable))
	for i, r := range rangeTable {
		values = append(values, EnumValue{Label: meterLabel(r), Value: int(r)})
		_ = i
	}
	return ControlDefinition{
		ID:       "range",
		Type:     TypeNumber,
		Range:    &RangeSpec{Min: float64(rangeTable[0]), Max: float64(rangeTable[len(rangeTable)-1]), Unit: "m"},
		Values:   values,
		WireHints: &WireHints{SettableIndices: allIndices(len(rangeTable))},
		Category: CategoryBase,
	}
}

func meterLabel(m uint32) string {
	if m%1852 == 0 {
		nm := m / 1852
		return itoa(int(nm)) + "nm"
	}
	return itoa(int(m)) + "m"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func controlGain() ControlDefinition {
	return ControlDefinition{
		ID:        "gain",
		Type:      TypeCompound,
		Range:     &RangeSpec{Min: 0, Max: 100, Unit: "%"},
		Modes:     []string{"auto"},
		WireHints: &WireHints{ScaleFactor: 1, HasAutoAdjustable: true},
		Category:  CategoryBase,
	}
}

func controlSea() ControlDefinition {
	return ControlDefinition{
		ID:        "sea",
		Type:      TypeCompound,
		Range:     &RangeSpec{Min: 0, Max: 100, Unit: "%"},
		Modes:     []string{"auto"},
		WireHints: &WireHints{ScaleFactor: 1, HasAutoAdjustable: true},
		Category:  CategoryBase,
	}
}

func controlRain() ControlDefinition {
	return ControlDefinition{
		ID:        "rain",
		Type:      TypeNumber,
		Range:     &RangeSpec{Min: 0, Max: 100, Unit: "%"},
		WireHints: &WireHints{ScaleFactor: 1},
		Category:  CategoryBase,
	}
}

func controlFirmwareVersion() ControlDefinition {
	return ControlDefinition{ID: "firmwareVersion", Type: TypeString, ReadOnly: true, Category: CategoryInfo}
}

func controlOperatingHours() ControlDefinition {
	return ControlDefinition{ID: "operatingHours", Type: TypeNumber, ReadOnly: true, Range: &RangeSpec{Min: 0, Max: 1e7, Unit: "h"}, Category: CategoryInfo}
}

func controlTransmitHours() ControlDefinition {
	return ControlDefinition{ID: "transmitHours", Type: TypeNumber, ReadOnly: true, Range: &RangeSpec{Min: 0, Max: 1e7, Unit: "h"}, Category: CategoryInfo}
}

func controlSerialNumber() ControlDefinition {
	return ControlDefinition{ID: "serialNumber", Type: TypeString, ReadOnly: true, Category: CategoryInfo}
}

// extendedControlCatalog holds the shared (brand-independent) definition
// for every extended control id referenced by the model database.
// Brand-specific overrides are applied in builder.go before falling back
// to this catalog.
var extendedControlCatalog = map[string]ControlDefinition{
	"interferenceRejection": {
		ID: "interferenceRejection", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"medium", 2}, {"high", 3}},
	},
	"localInterferenceRejection": {
		ID: "localInterferenceRejection", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"medium", 2}, {"high", 3}},
	},
	"sidelobeSuppression": {
		ID: "sidelobeSuppression", Type: TypeCompound, Category: CategoryExtended,
		Range: &RangeSpec{Min: 0, Max: 100, Unit: "%"}, Modes: []string{"auto"},
	},
	"noiseRejection": {
		ID: "noiseRejection", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"medium", 2}, {"high", 3}},
	},
	"noiseReduction": {
		ID: "noiseReduction", Type: TypeBoolean, Category: CategoryExtended,
	},
	"targetBoost": {
		ID: "targetBoost", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"high", 2}},
	},
	"targetExpansion": {
		ID: "targetExpansion", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"high", 2}},
	},
	"targetSeparation": {
		ID: "targetSeparation", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"medium", 2}, {"high", 3}},
	},
	"scanSpeed": {
		ID: "scanSpeed", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"normal", 0}, {"fast", 1}, {"auto", 2}},
	},
	"beamSharpening": {
		ID: "beamSharpening", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"medium", 2}, {"high", 3}},
	},
	"dopplerMode": {
		ID: "dopplerMode", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"approaching", 1}, {"both", 2}},
	},
	"dopplerSpeed": {
		ID: "dopplerSpeed", Type: TypeNumber, Category: CategoryExtended,
		Range: &RangeSpec{Min: 0, Max: 20, Unit: "kn"},
	},
	"dopplerAutoTrack": {
		ID: "dopplerAutoTrack", Type: TypeBoolean, Category: CategoryExtended,
	},
	"dopplerTrailsOnly": {
		ID: "dopplerTrailsOnly", Type: TypeBoolean, Category: CategoryExtended,
	},
	"birdMode": {
		ID: "birdMode", Type: TypeBoolean, Category: CategoryExtended,
	},
	"seaState": {
		ID: "seaState", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"calm", 0}, {"moderate", 1}, {"rough", 2}},
	},
	"presetMode": {
		ID: "presetMode", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"harbor", 0}, {"offshore", 1}, {"weather", 2}, {"custom", 3}},
	},
	"mode": {
		ID: "mode", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"custom", 0}, {"harbor", 1}, {"offshore", 2}, {"weather", 3}, {"buoy", 4}},
	},
	"accentLight": {
		ID: "accentLight", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"off", 0}, {"low", 1}, {"medium", 2}, {"high", 3}},
	},
	"mainBangSuppression": {
		ID: "mainBangSuppression", Type: TypeBoolean, Category: CategoryExtended,
	},
	"bearingAlignment": {
		ID: "bearingAlignment", Type: TypeNumber, Category: CategoryInstallation,
		Range: &RangeSpec{Min: -180, Max: 180, Unit: "deg"},
	},
	"antennaHeight": {
		ID: "antennaHeight", Type: TypeNumber, Category: CategoryInstallation,
		Range: &RangeSpec{Min: 0, Max: 50, Unit: "m"},
	},
	"autoAcquire": {
		ID: "autoAcquire", Type: TypeBoolean, Category: CategoryExtended,
	},
	"txChannel": {
		ID: "txChannel", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"a", 0}, {"b", 1}},
	},
	"colorGain": {
		ID: "colorGain", Type: TypeNumber, Category: CategoryExtended,
		Range: &RangeSpec{Min: 0, Max: 100, Unit: "%"},
	},
	"ftc": {
		ID: "ftc", Type: TypeNumber, Category: CategoryExtended,
		Range: &RangeSpec{Min: 0, Max: 100, Unit: "%"},
	},
	"tune": {
		ID: "tune", Type: TypeCompound, Category: CategoryExtended,
		Range: &RangeSpec{Min: 0, Max: 100, Unit: "%"}, Modes: []string{"auto"},
	},
	"rotationSpeed": {
		ID: "rotationSpeed", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"normal", 0}, {"fast", 1}},
	},
}

// getExtendedControl resolves the brand-independent definition for id, or
// ok=false if id is not in the shared catalog (e.g. noTransmitZones, which
// is built per-model via getExtendedControlWithZones).
func getExtendedControl(id string) (ControlDefinition, bool) {
	def, ok := extendedControlCatalog[id]
	return def, ok
}

// getExtendedControlWithZones builds the compound noTransmitZones
// definition with one {start, end} property pair per supported zone,
// following the "up to 4 pairs" vocabulary in spec §6.
func getExtendedControlWithZones(id string, zoneCount uint8) (ControlDefinition, bool) {
	if zoneCount == 0 {
		return ControlDefinition{}, false
	}
	props := make(map[string]PropertyDefinition, int(zoneCount)*2)
	for i := uint8(1); i <= zoneCount; i++ {
		props["noTransmitStart"+itoa(int(i))] = PropertyDefinition{Range: RangeSpec{Min: 0, Max: 359, Unit: "deg"}}
		props["noTransmitEnd"+itoa(int(i))] = PropertyDefinition{Range: RangeSpec{Min: 0, Max: 359, Unit: "deg"}}
	}
	return ControlDefinition{
		ID:         id,
		Type:       TypeCompound,
		Properties: props,
		Category:   CategoryExtended,
	}, true
}

// controlInterferenceRejectionFurunoBoolean overrides the shared enum
// interferenceRejection with Furuno's simple on/off variant.
func controlInterferenceRejectionFurunoBoolean() ControlDefinition {
	return ControlDefinition{ID: "interferenceRejection", Type: TypeBoolean, Category: CategoryExtended}
}

// controlScanSpeedFuruno overrides the shared scanSpeed enum with Furuno's
// two-valued 24RPM/Auto variant.
func controlScanSpeedFuruno() ControlDefinition {
	return ControlDefinition{
		ID: "scanSpeed", Type: TypeEnum, Category: CategoryExtended,
		Values: []EnumValue{{"24rpm", 0}, {"auto", 2}},
	}
}
