package models

// Garmin's beacon/report protocol does not self-identify a model string
// the way Furuno and Raymarine beacons do (see internal/protocol/garmin);
// InferModel can match an xHD model from hardware characteristics
// instead. Range table and controls below are grounded in the shared
// control vocabulary (spec §6) and the dual-range note that some
// xHD2/xHD3 units support it.
var rangeTableXHD = []uint32{
	50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000,
	8000, 12000, 16000, 24000, 36000, 48000, 64000,
}

var controlsXHD3 = []string{
	"targetBoost", "interferenceRejection", "noTransmitZones", "bearingAlignment", "antennaHeight", "rotationSpeed",
}

var controlsXHD2 = []string{
	"interferenceRejection", "noTransmitZones", "bearingAlignment", "antennaHeight",
}

// GarminModels is the known Garmin xHD radar model database.
var GarminModels = []ModelInfo{
	{
		Brand: Garmin, Model: "GMR xHD3", Family: "xHD3", DisplayName: "Garmin GMR xHD3",
		MaxRange: 64000, MinRange: 50, RangeTable: rangeTableXHD,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		HasDualRange: true, MaxDualRange: 24000, NoTransmitZones: 2,
		Controls: controlsXHD3,
	},
	{
		Brand: Garmin, Model: "GMR xHD2", Family: "xHD2", DisplayName: "Garmin GMR xHD2",
		MaxRange: 48000, MinRange: 50, RangeTable: rangeTableXHD,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		NoTransmitZones: 1, Controls: controlsXHD2,
	},
}
