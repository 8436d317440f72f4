// Package raymarine implements the Raymarine Quantum/HD wire codec. Two
// beacon lengths distinguish the two product variants on the wire: a
// 36-byte beacon for Quantum (Wi-Fi, CHIRP solid-state) and a 56-byte
// beacon for the RD (magnetron HD) line, per spec §6.
package raymarine

import (
	"encoding/binary"
	"fmt"

	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/protocol"
)

// Variant distinguishes the two Raymarine product families, since beacon
// length alone determines which wire dialect to speak.
type Variant int

const (
	VariantQuantum Variant = iota
	VariantRD
)

func (v Variant) String() string {
	if v == VariantRD {
		return "RD"
	}
	return "Quantum"
}

const (
	quantumBeaconLen = 36
	rdBeaconLen      = 56
)

// DetectVariant classifies a beacon by length. Returns false if b matches
// neither known length.
func DetectVariant(b []byte) (Variant, bool) {
	switch len(b) {
	case quantumBeaconLen:
		return VariantQuantum, true
	case rdBeaconLen:
		return VariantRD, true
	default:
		return 0, false
	}
}

// IsBeaconResponse reports whether b is a recognized Raymarine beacon.
func IsBeaconResponse(b []byte) bool {
	_, ok := DetectVariant(b)
	return ok
}

// ParseBeaconResponse decodes a Quantum or RD beacon into a Discovery.
// Both variants share a common prefix: 2-byte data port, 4-byte data IP,
// 2-byte control port, 4-byte control IP, followed by a variant-specific
// tail carrying the model string.
func ParseBeaconResponse(b []byte, source ioprovider.Addr) (protocol.Discovery, error) {
	variant, ok := DetectVariant(b)
	if !ok {
		return protocol.Discovery{}, protocol.InvalidPacket(fmt.Sprintf("unrecognized beacon length %d", len(b)))
	}
	if len(b) < 12 {
		return protocol.Discovery{}, protocol.TooShort(12, len(b))
	}
	dataPort := binary.LittleEndian.Uint16(b[0:2])
	var dataIP [4]byte
	copy(dataIP[:], b[2:6])
	controlPort := binary.LittleEndian.Uint16(b[6:8])
	var controlIP [4]byte
	copy(controlIP[:], b[8:12])

	model, _ := protocol.CString(b[12:])

	d := protocol.Discovery{
		Model:        model,
		ControlAddr:  ioprovider.Addr{IP: controlIP, Port: controlPort},
		DataAddr:     ioprovider.Addr{IP: dataIP, Port: dataPort},
		PixelBits:    8,
	}
	switch variant {
	case VariantQuantum:
		d.Name = "Raymarine Quantum"
		d.SpokesPerRevolution = 2048
		d.MaxSpokeLength = 512
	case VariantRD:
		d.Name = "Raymarine RD"
		d.SpokesPerRevolution = 4096
		d.MaxSpokeLength = 1024
	}
	return d, nil
}

// controlCodes maps semantic control ids to Raymarine's wire command id.
// Grounded in spec §6's control vocabulary; Raymarine's own command set is
// a subset (no Doppler on the RD line, no scanSpeed on Quantum) enforced
// by the capability builder rather than by this codec.
var controlCodes = map[string]byte{
	"power":          0x01,
	"range":          0x02,
	"gain":           0x03,
	"sea":            0x04,
	"rain":           0x05,
	"mode":           0x06,
	"targetSeparation": 0x07,
	"ftc":            0x08,
}

// FormatSet builds a Raymarine command frame: 1-byte command id, 4-byte
// little-endian signed argument.
func FormatSet(id string, wireArg int64) ([]byte, error) {
	code, ok := controlCodes[id]
	if !ok {
		return nil, fmt.Errorf("raymarine: no wire command for control %q", id)
	}
	buf := make([]byte, 5)
	buf[0] = code
	binary.LittleEndian.PutUint32(buf[1:], uint32(wireArg))
	return buf, nil
}

// ParseReport parses one 5-byte command-shaped report frame (same framing
// as FormatSet's output) into a normalized Report.
func ParseReport(b []byte) (protocol.Report, error) {
	if len(b) < 5 {
		return protocol.Report{}, protocol.TooShort(5, len(b))
	}
	code := b[0]
	arg := int64(int32(binary.LittleEndian.Uint32(b[1:5])))

	id := codeToControl(code)
	switch id {
	case "power":
		return protocol.Report{Kind: protocol.ReportPower, PowerOn: arg != 0}, nil
	case "range":
		return protocol.Report{Kind: protocol.ReportRange, RangeM: uint32(arg)}, nil
	case "gain":
		return protocol.Report{Kind: protocol.ReportGain, Gain: protocol.CompoundValue{Value: float64(arg)}}, nil
	case "sea":
		return protocol.Report{Kind: protocol.ReportSea, Sea: protocol.CompoundValue{Value: float64(arg)}}, nil
	case "rain":
		return protocol.Report{Kind: protocol.ReportRain, Rain: float64(arg)}, nil
	default:
		return protocol.Report{Kind: protocol.ReportExtendedControl, ExtendedControlID: id, ExtendedValue: float64(arg)}, nil
	}
}

func codeToControl(code byte) string {
	for id, c := range controlCodes {
		if c == code {
			return id
		}
	}
	return fmt.Sprintf("unknown-%02x", code)
}
