package garmin

import (
	"encoding/binary"
	"testing"

	"github.com/marinecore/radarcore/internal/ioprovider"
)

func makeBeacon(dataPort uint32) []byte {
	b := make([]byte, frameLen)
	binary.LittleEndian.PutUint32(b[0:4], beaconPacketType)
	binary.LittleEndian.PutUint32(b[4:8], 4)
	binary.LittleEndian.PutUint32(b[8:12], dataPort)
	return b
}

func TestParseBeaconResponse(t *testing.T) {
	d, err := ParseBeaconResponse(makeBeacon(50101), ioprovider.Addr{IP: [4]byte{10, 0, 0, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.DataAddr.Port != 50101 {
		t.Errorf("dataAddr.Port = %d, want 50101", d.DataAddr.Port)
	}
	if d.ControlAddr.Port != 50100 {
		t.Errorf("controlAddr.Port = %d, want 50100", d.ControlAddr.Port)
	}
}

func TestIsBeaconResponseRejectsOtherType(t *testing.T) {
	b := makeBeacon(1)
	binary.LittleEndian.PutUint32(b[0:4], 0x99)
	if IsBeaconResponse(b) {
		t.Error("expected false for non-beacon packet type")
	}
}

func TestParseFrameRejectsBadLength(t *testing.T) {
	b := make([]byte, frameLen)
	binary.LittleEndian.PutUint32(b[4:8], 8)
	if _, _, err := ParseFrame(b); err == nil {
		t.Fatal("expected error for length != 4")
	}
}

func TestFormatCommandAndParseReportRoundTrip(t *testing.T) {
	cmd, err := FormatCommand("gain", 75)
	if err != nil {
		t.Fatalf("FormatCommand: %v", err)
	}
	r, err := ParseReport(cmd)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if r.Gain.Value != 75 {
		t.Errorf("gain = %v, want 75", r.Gain.Value)
	}
}

func TestFormatCommandUnknownControl(t *testing.T) {
	if _, err := FormatCommand("nope", 0); err == nil {
		t.Fatal("expected error for unknown control")
	}
}
