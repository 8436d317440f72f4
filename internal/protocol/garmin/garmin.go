// Package garmin implements the Garmin xHD/xHD2/xHD3 wire codec: a fixed
// 12-byte binary command frame (u32 packet_type, u32 length, u32 value)
// for both control and status, per spec §6. Garmin beacons don't
// self-identify a model string, so the Discovery's Model is empty.
// internal/models.InferModel can match one from
// spokes-per-revolution/max-spoke-length; the locator and controllers do
// not call it.
package garmin

import (
	"encoding/binary"
	"fmt"

	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/protocol"
)

const frameLen = 12

// beaconPacketType identifies a discovery announcement among Garmin's
// packet_type space.
const beaconPacketType = 0x1

// IsBeaconResponse reports whether b is a 12-byte Garmin beacon frame.
func IsBeaconResponse(b []byte) bool {
	return len(b) >= frameLen && binary.LittleEndian.Uint32(b[0:4]) == beaconPacketType
}

// ParseBeaconResponse decodes a Garmin beacon frame. The 32-bit value
// field carries the data port for this radar; the control port is fixed
// per Garmin's protocol.
func ParseBeaconResponse(b []byte, source ioprovider.Addr) (protocol.Discovery, error) {
	if len(b) < frameLen {
		return protocol.Discovery{}, protocol.TooShort(frameLen, len(b))
	}
	if !IsBeaconResponse(b) {
		return protocol.Discovery{}, protocol.UnknownPacketType(b[0])
	}
	dataPort := uint16(binary.LittleEndian.Uint32(b[8:12]))

	return protocol.Discovery{
		Name:                "Garmin",
		ControlAddr:         ioprovider.Addr{IP: source.IP, Port: 50100},
		DataAddr:            ioprovider.Addr{IP: source.IP, Port: dataPort},
		SpokesPerRevolution: 2048,
		MaxSpokeLength:      1024,
		PixelBits:           8,
	}, nil
}

// packetTypes maps semantic control ids to Garmin's 32-bit packet_type
// values, grounded in spec §6's control vocabulary.
var packetTypes = map[string]uint32{
	"power":     0x10,
	"range":     0x11,
	"gain":      0x12,
	"sea":       0x13,
	"rain":      0x14,
	"mode":      0x15,
	"colorGain": 0x16,
}

// FormatCommand builds the 12-byte (packet_type, length=4, value) frame
// for id carrying a wire (already scaled) value.
func FormatCommand(id string, wireArg int32) ([]byte, error) {
	pt, ok := packetTypes[id]
	if !ok {
		return nil, fmt.Errorf("garmin: no wire command for control %q", id)
	}
	buf := make([]byte, frameLen)
	binary.LittleEndian.PutUint32(buf[0:4], pt)
	binary.LittleEndian.PutUint32(buf[4:8], 4)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(wireArg))
	return buf, nil
}

// ParseFrame decodes one 12-byte frame into (packet_type, value), after
// validating the length field is exactly 4 (Garmin always carries a
// single 32-bit value in this frame shape; longer payloads belong to the
// spoke data channel, not the control channel).
func ParseFrame(b []byte) (packetType uint32, value int32, err error) {
	if len(b) < frameLen {
		return 0, 0, protocol.TooShort(frameLen, len(b))
	}
	packetType = binary.LittleEndian.Uint32(b[0:4])
	length := binary.LittleEndian.Uint32(b[4:8])
	if length != 4 {
		return 0, 0, protocol.LengthMismatch(4, int(length))
	}
	value = int32(binary.LittleEndian.Uint32(b[8:12]))
	return packetType, value, nil
}

// ParseReport parses one 12-byte status frame into a normalized Report.
func ParseReport(b []byte) (protocol.Report, error) {
	pt, value, err := ParseFrame(b)
	if err != nil {
		return protocol.Report{}, err
	}
	arg := int64(value)
	id := packetTypeToControl(pt)
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

func packetTypeToControl(pt uint32) string {
	for id, p := range packetTypes {
		if p == pt {
			return id
		}
	}
	return fmt.Sprintf("unknown-%#x", pt)
}
