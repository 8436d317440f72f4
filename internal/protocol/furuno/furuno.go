// Package furuno implements the Furuno DRS/FAR wire codec: a 32-byte UDP
// broadcast beacon, and a TCP control connection that speaks an ASCII
// line grammar of the form "$<Q|S|R><hex_id>,<arg>,...\r\n" for queries,
// sets, and replies (reports) respectively.
package furuno

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/protocol"
)

// beaconMagic identifies a Furuno discovery beacon; the remainder of the
// 32-byte packet is model (16 bytes), serial (8 bytes), host IP (4 bytes).
var beaconMagic = [4]byte{'F', 'U', 'R', 'D'}

const beaconLen = 32

// IsBeaconResponse reports whether b looks like a Furuno discovery beacon.
func IsBeaconResponse(b []byte) bool {
	return len(b) >= 4 && b[0] == beaconMagic[0] && b[1] == beaconMagic[1] && b[2] == beaconMagic[2] && b[3] == beaconMagic[3]
}

// ParseBeaconResponse decodes a 32-byte Furuno beacon into a Discovery.
func ParseBeaconResponse(b []byte, source ioprovider.Addr) (protocol.Discovery, error) {
	if len(b) < beaconLen {
		return protocol.Discovery{}, protocol.TooShort(beaconLen, len(b))
	}
	if !IsBeaconResponse(b) {
		return protocol.Discovery{}, protocol.InvalidHeader(beaconMagic[:], b[:4])
	}
	model, _ := protocol.CString(b[4:20])
	serial, _ := protocol.CString(b[20:28])
	var hostIP [4]byte
	copy(hostIP[:], b[28:32])

	return protocol.Discovery{
		Model:               model,
		Name:                "Furuno " + model,
		SerialNumber:        serial,
		ControlAddr:         ioprovider.Addr{IP: hostIP, Port: 10010},
		DataAddr:            ioprovider.Addr{IP: [4]byte{239, 255, 0, 2}, Port: 10024},
		SpokesPerRevolution: 8192,
		MaxSpokeLength:      1024,
		PixelBits:           8,
	}, nil
}

// controlCodes maps semantic control ids to the two-hex-digit wire command
// id used in the "$S<hex_id>,<arg>..." grammar (noiseReduction is
// command 0x67, mainBangSuppression command 0x83).
var controlCodes = map[string]byte{
	"power":                 0x01,
	"range":                 0x02,
	"gain":                  0x03,
	"sea":                   0x04,
	"rain":                  0x05,
	"interferenceRejection": 0x10,
	"scanSpeed":             0x11,
	"bearingAlignment":      0x20,
	"antennaHeight":         0x21,
	"noTransmitZones":       0x30,
	"beamSharpening":        0x40,
	"dopplerMode":           0x41,
	"birdMode":              0x42,
	"noiseReduction":        0x67,
	"mainBangSuppression":   0x83,
	"autoAcquire":           0x50,
	"txChannel":             0x51,
}

// FormatSet builds a "$S<hex_id>,<arg>\r\n" command for id carrying wire
// (already scaled) integer arg.
func FormatSet(id string, wireArg int64) ([]byte, error) {
	code, ok := controlCodes[id]
	if !ok {
		return nil, fmt.Errorf("furuno: no wire command for control %q", id)
	}
	return []byte(fmt.Sprintf("$S%02X,%d\r\n", code, wireArg)), nil
}

// FormatQuery builds a "$Q<hex_id>\r\n" query command for id.
func FormatQuery(id string) ([]byte, error) {
	code, ok := controlCodes[id]
	if !ok {
		return nil, fmt.Errorf("furuno: no wire command for control %q", id)
	}
	return []byte(fmt.Sprintf("$Q%02X\r\n", code)), nil
}

// ParseReport parses one "$R<hex_id>,<arg>,...\r\n" reply line into a
// normalized Report.
func ParseReport(line []byte) (protocol.Report, error) {
	s := strings.TrimRight(string(line), "\r\n")
	if len(s) < 4 || s[0] != '$' || s[1] != 'R' {
		return protocol.Report{}, protocol.InvalidHeader([]byte("$R"), []byte(s))
	}
	parts := strings.Split(s[2:], ",")
	if len(parts) < 1 {
		return protocol.Report{}, protocol.InvalidPacket("empty report body")
	}
	codeVal, err := strconv.ParseUint(parts[0], 16, 8)
	if err != nil {
		return protocol.Report{}, fmt.Errorf("%w: bad hex id %q", protocol.ErrInvalidPacket, parts[0])
	}
	code := byte(codeVal)

	id := codeToControl(code)
	var arg int64
	if len(parts) > 1 {
		arg, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return protocol.Report{}, fmt.Errorf("%w: bad argument %q", protocol.ErrInvalidPacket, parts[1])
		}
	}

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

// GetRangeMeters maps a range table index to meters for the NXT series
// table (the common case); brands/models with a different table resolve
// through internal/models instead — this helper exists for codec-level
// round-trip tests that don't have a ModelInfo at hand.
func GetRangeMeters(index int) (uint32, bool) {
	table := []uint32{
		116, 231, 463, 926, 1389, 1852, 2778, 3704, 5556, 7408,
		11112, 14816, 22224, 29632, 44448, 59264, 66672, 88896,
	}
	if index < 0 || index >= len(table) {
		return 0, false
	}
	return table[index], true
}
