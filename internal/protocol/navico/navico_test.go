package navico

import (
	"encoding/binary"
	"testing"

	"github.com/marinecore/radarcore/internal/ioprovider"
)

func makeBeacon() []byte {
	b := make([]byte, minBeaconLen)
	b[0], b[1] = 0x01, 0xB1
	binary.LittleEndian.PutUint16(b[2:4], 6680)
	copy(b[4:8], []byte{236, 6, 7, 9})
	binary.LittleEndian.PutUint16(b[8:10], 6658)
	copy(b[10:14], []byte{192, 168, 1, 77})
	return b
}

func TestParseBeaconResponse(t *testing.T) {
	d, err := ParseBeaconResponse(makeBeacon(), ioprovider.Addr{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.DataAddr.Port != 6680 {
		t.Errorf("data port = %d, want 6680", d.DataAddr.Port)
	}
	if d.ControlAddr.IP != [4]byte{192, 168, 1, 77} {
		t.Errorf("control ip = %v", d.ControlAddr.IP)
	}
}

func TestIsBeaconResponseRejectsOtherPrefix(t *testing.T) {
	if IsBeaconResponse([]byte{0x02, 0xB1}) {
		t.Error("expected false for non-Navico prefix")
	}
}

func TestParseSpokeFrameNibbleUnpacking(t *testing.T) {
	frame := make([]byte, frameLen)
	off := SpokeFrameHeaderLen
	binary.LittleEndian.PutUint16(frame[off:off+2], 500)
	binary.LittleEndian.PutUint32(frame[off+4:off+8], 1852)
	data := frame[off+SpokeHeaderLen : off+SpokeHeaderLen+SpokeDataLen]
	data[0] = 0x0A // low nibble 0xA, high nibble 0x0

	records, err := ParseSpokeFrame(frame)
	if err != nil {
		t.Fatalf("ParseSpokeFrame: %v", err)
	}
	if len(records) != spokesPerFrame {
		t.Fatalf("got %d spokes, want %d", len(records), spokesPerFrame)
	}
	first := records[0]
	if first.Angle != 500 {
		t.Errorf("angle = %d, want 500", first.Angle)
	}
	if first.RangeM != 1852 {
		t.Errorf("rangeM = %d, want 1852", first.RangeM)
	}
	if first.Pixels[0] != 0x0A || first.Pixels[1] != 0x00 {
		t.Errorf("pixels[0:2] = %v, want [10 0]", first.Pixels[:2])
	}
}

func TestParseSpokeFrameTooShort(t *testing.T) {
	if _, err := ParseSpokeFrame(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short frame")
	}
}

func TestFormatSetAndParseReportRoundTrip(t *testing.T) {
	cmd, err := FormatSet("gain", 50, 2)
	if err != nil {
		t.Fatalf("FormatSet: %v", err)
	}
	r, err := ParseReport(cmd)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if r.Gain.Value != 50 {
		t.Errorf("gain = %v, want 50", r.Gain.Value)
	}
}
