// Package navico implements the Navico BR24/3G/4G/HALO wire codec: UDP
// multicast beacons on one of several well-known group addresses
// depending on generation, and 8-byte-header + 32×(24-byte-header +
// 512-byte nibble-packed data) spoke frames.
package navico

import (
	"encoding/binary"
	"fmt"

	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/protocol"
)

// Beacon group addresses by generation, per spec §6.
var (
	BeaconAddrBR24   = ioprovider.Addr{IP: [4]byte{236, 6, 7, 5}, Port: 6878}
	BeaconAddrGen3   = ioprovider.Addr{IP: [4]byte{236, 6, 7, 9}, Port: 6878}
	BeaconAddrHALO   = ioprovider.Addr{IP: [4]byte{236, 6, 7, 13}, Port: 6878}
)

const minBeaconLen = 18

// IsBeaconResponse reports whether b has Navico's beacon prefix (0x01 0xB1).
func IsBeaconResponse(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x01 && b[1] == 0xB1
}

// ParseBeaconResponse decodes a Navico beacon into a Discovery. Serial
// number and model name are not self-identified on the wire, so the
// Discovery's Model is empty. internal/models.InferModel can match a model
// from spokes-per-revolution/max-spoke-length; the locator and
// controllers do not call it.
func ParseBeaconResponse(b []byte, source ioprovider.Addr) (protocol.Discovery, error) {
	if len(b) < minBeaconLen {
		return protocol.Discovery{}, protocol.TooShort(minBeaconLen, len(b))
	}
	if !IsBeaconResponse(b) {
		return protocol.Discovery{}, protocol.InvalidHeader([]byte{0x01, 0xB1}, b[:2])
	}
	dataPort := binary.LittleEndian.Uint16(b[2:4])
	var dataIP [4]byte
	copy(dataIP[:], b[4:8])
	controlPort := binary.LittleEndian.Uint16(b[8:10])
	var controlIP [4]byte
	copy(controlIP[:], b[10:14])

	return protocol.Discovery{
		Name:                "Navico",
		ControlAddr:         ioprovider.Addr{IP: controlIP, Port: controlPort},
		DataAddr:            ioprovider.Addr{IP: dataIP, Port: dataPort},
		SpokesPerRevolution: 2048,
		MaxSpokeLength:      512,
		PixelBits:           4,
	}, nil
}

// SpokeFrameHeaderLen is the outer 8-byte frame header preceding 32
// per-spoke records.
const SpokeFrameHeaderLen = 8

// SpokeHeaderLen is each spoke's own 24-byte header preceding its 512
// bytes of nibble-packed pixel data (1024 4-bit samples).
const SpokeHeaderLen = 24

// SpokeDataLen is the nibble-packed pixel payload length per spoke.
const SpokeDataLen = 512

const spokesPerFrame = 32
const frameLen = SpokeFrameHeaderLen + spokesPerFrame*(SpokeHeaderLen+SpokeDataLen)

// SpokeRecord is one decoded spoke within a frame.
type SpokeRecord struct {
	Angle    uint16 // raw angle count, 0..SpokesPerRevolution-1
	RangeM   uint32
	TimeMs   uint64
	Pixels   []byte // one nibble (0-15) per sample, len == SpokeDataLen*2
}

// ParseSpokeFrame decodes one 17160-byte UDP datagram into its 32 spokes.
func ParseSpokeFrame(b []byte) ([]SpokeRecord, error) {
	if len(b) < frameLen {
		return nil, protocol.TooShort(frameLen, len(b))
	}
	records := make([]SpokeRecord, 0, spokesPerFrame)
	off := SpokeFrameHeaderLen
	for i := 0; i < spokesPerFrame; i++ {
		hdr := b[off : off+SpokeHeaderLen]
		data := b[off+SpokeHeaderLen : off+SpokeHeaderLen+SpokeDataLen]
		off += SpokeHeaderLen + SpokeDataLen

		angle := binary.LittleEndian.Uint16(hdr[0:2])
		rangeRaw := binary.LittleEndian.Uint32(hdr[4:8])
		timeMs := binary.LittleEndian.Uint64(hdr[8:16])

		pixels := make([]byte, SpokeDataLen*2)
		for j, bt := range data {
			pixels[2*j] = bt & 0x0F
			pixels[2*j+1] = (bt >> 4) & 0x0F
		}

		records = append(records, SpokeRecord{
			Angle:  angle,
			RangeM: rangeRaw,
			TimeMs: timeMs,
			Pixels: pixels,
		})
	}
	return records, nil
}

// controlCodes maps semantic control ids to Navico's single-byte command
// id, used inside a short TLV-ish control datagram (command byte, length
// byte, payload). Grounded in spec §6's control vocabulary.
var controlCodes = map[string]byte{
	"power":                    0x00,
	"range":                    0x03,
	"gain":                     0x06,
	"sea":                      0x07,
	"rain":                     0x08,
	"interferenceRejection":    0x09,
	"localInterferenceRejection": 0x0A,
	"sidelobeSuppression":      0x0B,
	"targetBoost":              0x0C,
	"targetExpansion":          0x0D,
	"dopplerMode":              0x23,
	"dopplerSpeed":             0x24,
	"scanSpeed":                0x0F,
	"noiseRejection":           0x21,
}

// FormatSet builds the Navico control-set datagram for id carrying a
// little-endian wire value of the given byte width.
func FormatSet(id string, wireArg int64, width int) ([]byte, error) {
	code, ok := controlCodes[id]
	if !ok {
		return nil, fmt.Errorf("navico: no wire command for control %q", id)
	}
	buf := make([]byte, 2+width)
	buf[0] = code
	buf[1] = byte(width)
	switch width {
	case 1:
		buf[2] = byte(wireArg)
	case 2:
		binary.LittleEndian.PutUint16(buf[2:], uint16(wireArg))
	case 4:
		binary.LittleEndian.PutUint32(buf[2:], uint32(wireArg))
	default:
		return nil, fmt.Errorf("navico: unsupported wire width %d", width)
	}
	return buf, nil
}

// ParseReport parses one control-report datagram (same framing as
// FormatSet's output) into a normalized Report.
func ParseReport(b []byte) (protocol.Report, error) {
	if len(b) < 2 {
		return protocol.Report{}, protocol.TooShort(2, len(b))
	}
	code := b[0]
	width := int(b[1])
	if len(b) < 2+width {
		return protocol.Report{}, protocol.LengthMismatch(2+width, len(b))
	}
	var arg int64
	payload := b[2 : 2+width]
	switch width {
	case 1:
		arg = int64(payload[0])
	case 2:
		arg = int64(binary.LittleEndian.Uint16(payload))
	case 4:
		arg = int64(binary.LittleEndian.Uint32(payload))
	default:
		return protocol.Report{}, protocol.InvalidPacket(fmt.Sprintf("unsupported width %d", width))
	}

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
