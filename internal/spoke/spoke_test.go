package spoke

import (
	"testing"

	"github.com/marinecore/radarcore/internal/protocol"
)

func TestProcessNibblesPassesThroughIntensity(t *testing.T) {
	p := NewProcessor(protocol.DefaultLegend(), protocol.DopplerOff, 4)
	out := p.ProcessNibbles([]byte{0, 7, 13, 5})
	want := protocol.DefaultLegend()
	for i, n := range []byte{0, 7, 13, 5} {
		if out[i] != want.Levels[n] {
			t.Errorf("sample %d = %d, want %d", i, out[i], want.Levels[n])
		}
	}
}

func TestProcessNibblesTruncatesAndPads(t *testing.T) {
	p := NewProcessor(protocol.DefaultLegend(), protocol.DopplerOff, 2)
	out := p.ProcessNibbles([]byte{1, 2, 3, 4})
	if len(out) != 2 {
		t.Fatalf("expected output truncated to MaxLen=2, got len %d", len(out))
	}

	p2 := NewProcessor(protocol.DefaultLegend(), protocol.DopplerOff, 4)
	out2 := p2.ProcessNibbles([]byte{1, 2})
	if len(out2) != 4 || out2[2] != 0 || out2[3] != 0 {
		t.Errorf("expected zero-padded tail, got %v", out2)
	}
}

func TestProcessPackedBytesUnpacksLowNibbleFirst(t *testing.T) {
	p := NewProcessor(protocol.DefaultLegend(), protocol.DopplerOff, 4)
	// 0x21 -> low nibble 1, high nibble 2.
	out := p.ProcessPackedBytes([]byte{0x21})
	legend := protocol.DefaultLegend()
	if out[0] != legend.Levels[1] || out[1] != legend.Levels[2] {
		t.Errorf("unpack order wrong: got %v", out[:2])
	}
}

func TestProcessBytesUsesTopNibble(t *testing.T) {
	p := NewProcessor(protocol.DefaultLegend(), protocol.DopplerOff, 1)
	out := p.ProcessBytes([]byte{0x3F})
	legend := protocol.DefaultLegend()
	if out[0] != legend.Levels[3] {
		t.Errorf("expected top-nibble classification, got %d", out[0])
	}
}

func TestClassifyDopplerOffFoldsBackToIntensity(t *testing.T) {
	p := NewProcessor(protocol.DefaultLegend(), protocol.DopplerOff, 1)
	out := p.ProcessNibbles([]byte{protocol.DopplerApproachingIndex})
	legend := protocol.DefaultLegend()
	if out[0] != legend.Levels[len(legend.Levels)-1] {
		t.Errorf("expected Doppler nibble folded to top intensity when DopplerOff, got %d", out[0])
	}
}

func TestClassifyDopplerApproachingOnlyRejectsReceding(t *testing.T) {
	p := NewProcessor(protocol.DefaultLegend(), protocol.DopplerApproachingOnly, 2)
	out := p.ProcessNibbles([]byte{protocol.DopplerApproachingIndex, protocol.DopplerRecedingIndex})
	if out[0] != protocol.DopplerApproachingIndex {
		t.Errorf("expected approaching nibble preserved, got %d", out[0])
	}
	legend := protocol.DefaultLegend()
	if out[1] != legend.Levels[len(legend.Levels)-1] {
		t.Errorf("expected receding nibble folded back when mode is ApproachingOnly, got %d", out[1])
	}
}

func TestClassifyDopplerBothPreservesBoth(t *testing.T) {
	p := NewProcessor(protocol.DefaultLegend(), protocol.DopplerBoth, 2)
	out := p.ProcessNibbles([]byte{protocol.DopplerApproachingIndex, protocol.DopplerRecedingIndex})
	if out[0] != protocol.DopplerApproachingIndex || out[1] != protocol.DopplerRecedingIndex {
		t.Errorf("expected both Doppler nibbles preserved, got %v", out)
	}
}
