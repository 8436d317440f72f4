package protocol

import "github.com/marinecore/radarcore/internal/ioprovider"

// Discovery is the wire-parsed result of a beacon packet: everything the
// locator (C6) needs to register a radar before any model-specific detail
// is known.
type Discovery struct {
	Model               string // "" if the beacon doesn't self-identify
	Name                string
	SerialNumber        string // "" if not present in the beacon
	ControlAddr         ioprovider.Addr
	DataAddr            ioprovider.Addr
	SpokesPerRevolution uint16
	MaxSpokeLength      uint16
	PixelBits           uint8

	// LastSeenMs is refreshed to the poller's clock on every beacon for
	// this radar, Discovered or Updated alike, so a host can apply its
	// own TTL/timeout policy without the locator tracking one itself.
	LastSeenMs uint64
}

// ReportKind tags which fields of Report are populated. Brand codecs
// return exactly one kind per parsed report, following the "tagged sum,
// not string-keyed map" design note: callers switch on Kind rather than
// probing which field is non-zero.
type ReportKind int

const (
	ReportPower ReportKind = iota
	ReportRange
	ReportGain
	ReportSea
	ReportRain
	ReportNoTransmitZone
	ReportScannerStatus
	ReportOperatingHours
	ReportTransmitHours
	ReportModel
	ReportExtendedControl
)

// CompoundValue carries a Compound control's value plus its auto flag, as
// reported by the radar (gain/sea/rain/tune on brands that support auto).
type CompoundValue struct {
	Value float64
	Auto  bool
}

// Report is the normalized result of parsing one status/report packet.
// Only the field matching Kind is meaningful; the rest are zero.
type Report struct {
	Kind ReportKind

	PowerOn  bool
	RangeM   uint32
	Gain     CompoundValue
	Sea      CompoundValue
	Rain     float64

	ZoneIndex int
	ZoneStart float64
	ZoneEnd   float64

	ScannerRunning bool

	Hours float64

	ModelName    string
	FirmwareVers string

	// ExtendedControlID/Value populate the generic path for controls that
	// don't warrant a dedicated ReportKind: each brand codec's ParseReport
	// returns ReportExtendedControl for any id other than
	// power/range/gain/sea/rain.
	ExtendedControlID string
	ExtendedValue      float64
}
