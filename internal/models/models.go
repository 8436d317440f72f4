package models

// ModelInfo is the immutable static description of one radar model.
type ModelInfo struct {
	Brand       Brand
	Model       string
	Family      string
	DisplayName string

	MaxRange            uint32
	MinRange             uint32
	RangeTable           []uint32
	SpokesPerRevolution  uint16
	MaxSpokeLength       uint16

	HasDoppler       bool
	HasDualRange     bool
	MaxDualRange     uint32
	NoTransmitZones  uint8

	// Controls lists the extended-control ids available on this model;
	// base controls (power, range, gain, sea, rain, ...) are always
	// present and are not repeated here.
	Controls []string
}

// HasControl reports whether id is present in m.Controls.
func (m *ModelInfo) HasControl(id string) bool {
	for _, c := range m.Controls {
		if c == id {
			return true
		}
	}
	return false
}

// UnknownModel is the conservative fallback used whenever a beacon or
// report names a model absent from the database. Brand is overwritten by
// the caller to the brand actually observed.
var UnknownModel = ModelInfo{
	Brand:       Furuno,
	Model:       "Unknown",
	Family:      "Unknown",
	DisplayName: "Unknown Radar",
	MaxRange:    74080,
	MinRange:    50,
	RangeTable: []uint32{
		50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000, 12000, 16000, 24000,
		36000, 48000, 64000, 74080,
	},
	SpokesPerRevolution: 2048,
	MaxSpokeLength:      512,
}

// GetModel looks up a model by brand and name. It returns (info, true) on
// a hit, or (UnknownModel-with-brand-set, false) otherwise so callers can
// use the result unconditionally while still detecting the miss.
func GetModel(brand Brand, model string) (ModelInfo, bool) {
	var table []ModelInfo
	switch brand {
	case Furuno:
		table = FurunoModels
	case Navico:
		table = NavicoModels
	case Raymarine:
		table = RaymarineModels
	case Garmin:
		table = GarminModels
	}
	for _, m := range table {
		if m.Model == model {
			return m, true
		}
	}
	fallback := UnknownModel
	fallback.Brand = brand
	return fallback, false
}

// GetAllRangesForBrand returns the deduplicated, sorted union of every
// model's range table for brand — used during discovery before a specific
// model is known.
func GetAllRangesForBrand(brand Brand) []uint32 {
	var table []ModelInfo
	switch brand {
	case Furuno:
		table = FurunoModels
	case Navico:
		table = NavicoModels
	case Raymarine:
		table = RaymarineModels
	case Garmin:
		table = GarminModels
	}
	seen := make(map[uint32]bool)
	var out []uint32
	for _, m := range table {
		for _, r := range m.RangeTable {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	// insertion sort; range tables are short (≤20 entries) and this keeps
	// the package free of an extra sort.Slice import for such a small N
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// InferModel returns the first model in brand's table whose hardware
// characteristics (spokes per revolution, max spoke length) match, for
// brands whose beacons omit the model name entirely.
func InferModel(brand Brand, spokesPerRevolution, maxSpokeLength uint16) (ModelInfo, bool) {
	var table []ModelInfo
	switch brand {
	case Furuno:
		table = FurunoModels
	case Navico:
		table = NavicoModels
	case Raymarine:
		table = RaymarineModels
	case Garmin:
		table = GarminModels
	}
	for _, m := range table {
		if m.SpokesPerRevolution == spokesPerRevolution && m.MaxSpokeLength == maxSpokeLength {
			return m, true
		}
	}
	fallback := UnknownModel
	fallback.Brand = brand
	return fallback, false
}
