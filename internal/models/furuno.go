package models

// Range table for the DRS-NXT series, in meters: 1/16 ... 48 NM.
var rangeTableNXT = []uint32{
	116, 231, 463, 926, 1389, 1852, 2778, 3704, 5556, 7408,
	11112, 14816, 22224, 29632, 44448, 59264, 66672, 88896,
}

var rangeTableDRS = []uint32{
	116, 231, 463, 926, 1389, 1852, 2778, 3704, 5556, 7408,
	11112, 14816, 22224, 29632, 44448, 59264, 66672,
}

var rangeTableFAR = []uint32{
	125, 250, 500, 750, 1500, 3000, 6000, 12000, 24000, 48000, 96000, 120000,
}

// controlsNXT; bearingAlignment and antennaHeight are installation values,
// stored by the control store but never sent to the radar.
var controlsNXT = []string{
	"beamSharpening", "dopplerMode", "birdMode", "interferenceRejection",
	"noiseReduction", "mainBangSuppression", "scanSpeed", "noTransmitZones",
	"autoAcquire", "txChannel", "bearingAlignment", "antennaHeight",
}

var controlsDRS = []string{
	"interferenceRejection", "scanSpeed", "noTransmitZones",
	"bearingAlignment", "antennaHeight",
}

var controlsFAR = []string{
	"interferenceRejection", "noTransmitZones", "txChannel",
	"bearingAlignment", "antennaHeight",
}

// FurunoModels is the known Furuno radar model database.
var FurunoModels = []ModelInfo{
	{
		Brand: Furuno, Model: "DRS4D-NXT", Family: "DRS-NXT", DisplayName: "Furuno DRS4D-NXT",
		MaxRange: 88896, MinRange: 116, RangeTable: rangeTableNXT,
		SpokesPerRevolution: 8192, MaxSpokeLength: 1024,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 22224, NoTransmitZones: 2,
		Controls: controlsNXT,
	},
	{
		Brand: Furuno, Model: "DRS6A-NXT", Family: "DRS-NXT", DisplayName: "Furuno DRS6A-NXT",
		MaxRange: 88896, MinRange: 116, RangeTable: rangeTableNXT,
		SpokesPerRevolution: 8192, MaxSpokeLength: 1024,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 22224, NoTransmitZones: 2,
		Controls: controlsNXT,
	},
	{
		Brand: Furuno, Model: "DRS12A-NXT", Family: "DRS-NXT", DisplayName: "Furuno DRS12A-NXT",
		MaxRange: 133344, MinRange: 116, RangeTable: rangeTableNXT,
		SpokesPerRevolution: 8192, MaxSpokeLength: 1024,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 22224, NoTransmitZones: 2,
		Controls: controlsNXT,
	},
	{
		Brand: Furuno, Model: "DRS25A-NXT", Family: "DRS-NXT", DisplayName: "Furuno DRS25A-NXT",
		MaxRange: 177792, MinRange: 116, RangeTable: rangeTableNXT,
		SpokesPerRevolution: 8192, MaxSpokeLength: 1024,
		HasDoppler: true, HasDualRange: true, MaxDualRange: 22224, NoTransmitZones: 2,
		Controls: controlsNXT,
	},
	{
		Brand: Furuno, Model: "DRS4D", Family: "DRS", DisplayName: "Furuno DRS4D",
		MaxRange: 66672, MinRange: 116, RangeTable: rangeTableDRS,
		SpokesPerRevolution: 8192, MaxSpokeLength: 512,
		Controls: controlsDRS, NoTransmitZones: 2,
	},
	{
		Brand: Furuno, Model: "DRS2D", Family: "DRS", DisplayName: "Furuno DRS2D",
		MaxRange: 44448, MinRange: 116, RangeTable: rangeTableDRS,
		SpokesPerRevolution: 8192, MaxSpokeLength: 512,
		Controls: controlsDRS, NoTransmitZones: 2,
	},
	{
		Brand: Furuno, Model: "DRS6A", Family: "DRS", DisplayName: "Furuno DRS6A",
		MaxRange: 66672, MinRange: 116, RangeTable: rangeTableDRS,
		SpokesPerRevolution: 8192, MaxSpokeLength: 512,
		Controls: controlsDRS, NoTransmitZones: 2,
	},
	{
		Brand: Furuno, Model: "DRS12A", Family: "DRS", DisplayName: "Furuno DRS12A",
		MaxRange: 133344, MinRange: 116, RangeTable: rangeTableDRS,
		SpokesPerRevolution: 8192, MaxSpokeLength: 512,
		Controls: controlsDRS, NoTransmitZones: 2,
	},
	{
		Brand: Furuno, Model: "DRS25A", Family: "DRS", DisplayName: "Furuno DRS25A",
		MaxRange: 177792, MinRange: 116, RangeTable: rangeTableDRS,
		SpokesPerRevolution: 8192, MaxSpokeLength: 512,
		Controls: controlsDRS, NoTransmitZones: 2,
	},
	{
		Brand: Furuno, Model: "FAR-1513", Family: "FAR", DisplayName: "Furuno FAR-1513",
		MaxRange: 120000, MinRange: 125, RangeTable: rangeTableFAR,
		SpokesPerRevolution: 8192, MaxSpokeLength: 1024,
		Controls: controlsFAR, NoTransmitZones: 4,
	},
	{
		Brand: Furuno, Model: "FAR-1518", Family: "FAR", DisplayName: "Furuno FAR-1518",
		MaxRange: 120000, MinRange: 125, RangeTable: rangeTableFAR,
		SpokesPerRevolution: 8192, MaxSpokeLength: 1024,
		Controls: controlsFAR, NoTransmitZones: 4,
	},
}
