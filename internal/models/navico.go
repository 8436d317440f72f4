package models

// rangeTableHALO matches B&G chart plotter range steps for consistent UX.
var rangeTableHALO = []uint32{
	50, 75, 100, 231, 463, 926, 1389, 1852, 2778, 3704,
	5556, 7408, 11112, 14816, 22224, 29632, 44448, 66672, 88896,
}

var rangeTable4G = []uint32{
	50, 75, 100, 231, 463, 926, 1389, 1852, 2778, 3704,
	5556, 7408, 11112, 14816, 22224, 29632, 44448, 66672,
}

var controlsHALO = []string{
	"presetMode", "dopplerMode", "dopplerSpeed", "targetSeparation", "targetExpansion",
	"targetBoost", "seaState", "noiseRejection", "interferenceRejection",
	"localInterferenceRejection", "sidelobeSuppression", "birdMode", "noTransmitZones",
	"bearingAlignment", "antennaHeight", "scanSpeed", "accentLight",
}

var controls4G = []string{
	"presetMode", "targetSeparation", "targetExpansion", "targetBoost", "seaState",
	"noiseRejection", "interferenceRejection", "sidelobeSuppression", "noTransmitZones",
	"bearingAlignment", "antennaHeight",
}

// NavicoModels is the known Navico (Simrad/Lowrance/B&G) radar model
// database.
var NavicoModels = []ModelInfo{
	{
		Brand: Navico, Model: "HALO", Family: "HALO", DisplayName: "Navico HALO",
		MaxRange: 74080, MinRange: 50, RangeTable: rangeTableHALO,
		SpokesPerRevolution: 2048, MaxSpokeLength: 1024,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 24000, NoTransmitZones: 4,
		Controls: controlsHALO,
	},
	{
		Brand: Navico, Model: "HALO20+", Family: "HALO", DisplayName: "Navico HALO20+",
		MaxRange: 72000, MinRange: 50, RangeTable: rangeTableHALO,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 24000, NoTransmitZones: 2,
		Controls: controlsHALO,
	},
	{
		Brand: Navico, Model: "HALO24", Family: "HALO", DisplayName: "Navico HALO24",
		MaxRange: 96000, MinRange: 50, RangeTable: rangeTableHALO,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 24000, NoTransmitZones: 2,
		Controls: controlsHALO,
	},
	{
		Brand: Navico, Model: "HALO3", Family: "HALO", DisplayName: "Navico HALO3",
		MaxRange: 96000, MinRange: 50, RangeTable: rangeTableHALO,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 24000, NoTransmitZones: 2,
		Controls: controlsHALO,
	},
	{
		Brand: Navico, Model: "HALO4", Family: "HALO", DisplayName: "Navico HALO4",
		MaxRange: 96000, MinRange: 50, RangeTable: rangeTableHALO,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 24000, NoTransmitZones: 2,
		Controls: controlsHALO,
	},
	{
		Brand: Navico, Model: "HALO6", Family: "HALO", DisplayName: "Navico HALO6",
		MaxRange: 133344, MinRange: 50, RangeTable: rangeTableHALO,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 24000, NoTransmitZones: 2,
		Controls: controlsHALO,
	},
	{
		Brand: Navico, Model: "4G", Family: "4G", DisplayName: "Navico 4G",
		MaxRange: 64000, MinRange: 50, RangeTable: rangeTable4G,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		NoTransmitZones: 2, Controls: controls4G,
	},
	{
		Brand: Navico, Model: "3G", Family: "3G", DisplayName: "Navico 3G",
		MaxRange: 48000, MinRange: 50, RangeTable: rangeTable4G,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		NoTransmitZones: 2, Controls: controls4G,
	},
	{
		Brand: Navico, Model: "BR24", Family: "BR24", DisplayName: "Navico BR24",
		MaxRange: 44448, MinRange: 50, RangeTable: rangeTable4G,
		SpokesPerRevolution: 2048, MaxSpokeLength: 512,
		NoTransmitZones: 2, Controls: []string{"interferenceRejection", "bearingAlignment"},
	},
}
