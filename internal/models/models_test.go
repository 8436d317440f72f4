package models

import "testing"

func TestDRS4DNXT(t *testing.T) {
	m, ok := GetModel(Furuno, "DRS4D-NXT")
	if !ok {
		t.Fatal("expected DRS4D-NXT to be found")
	}
	if m.Family != "DRS-NXT" {
		t.Errorf("family = %q, want DRS-NXT", m.Family)
	}
	if !m.HasDoppler || !m.HasDualRange {
		t.Error("expected doppler and dual range support")
	}
	if m.NoTransmitZones != 2 {
		t.Errorf("no_transmit_zones = %d, want 2", m.NoTransmitZones)
	}
	if !m.HasControl("dopplerMode") || !m.HasControl("beamSharpening") {
		t.Error("expected dopplerMode and beamSharpening controls")
	}
}

func TestDRS4D(t *testing.T) {
	m, ok := GetModel(Furuno, "DRS4D")
	if !ok {
		t.Fatal("expected DRS4D to be found")
	}
	if m.Family != "DRS" || m.HasDoppler || m.HasDualRange {
		t.Error("DRS4D should be non-doppler, non-dual-range")
	}
}

func TestHALO24(t *testing.T) {
	m, ok := GetModel(Navico, "HALO24")
	if !ok {
		t.Fatal("expected HALO24 to be found")
	}
	if m.Family != "HALO" || !m.HasDoppler {
		t.Error("HALO24 should be doppler-capable")
	}
	if !m.HasControl("dopplerMode") {
		t.Error("expected dopplerMode control")
	}
}

func Test4G(t *testing.T) {
	m, ok := GetModel(Navico, "4G")
	if !ok {
		t.Fatal("expected 4G to be found")
	}
	if m.HasDoppler {
		t.Error("4G should not be doppler-capable")
	}
	if !m.HasControl("presetMode") {
		t.Error("expected presetMode control")
	}
}

func TestQuantum2(t *testing.T) {
	m, ok := GetModel(Raymarine, "Quantum 2")
	if !ok {
		t.Fatal("expected Quantum 2 to be found")
	}
	if !m.HasDoppler || !m.HasControl("dopplerMode") {
		t.Error("Quantum 2 should be doppler-capable")
	}
}

func TestQuantum(t *testing.T) {
	m, ok := GetModel(Raymarine, "Quantum")
	if !ok {
		t.Fatal("expected Quantum to be found")
	}
	if m.HasDoppler {
		t.Error("Quantum should not be doppler-capable")
	}
}

func TestUnknownModelFallback(t *testing.T) {
	m, ok := GetModel(Furuno, "DRS-NONEXISTENT")
	if ok {
		t.Fatal("expected model miss")
	}
	if m.Model != "Unknown" || m.Brand != Furuno {
		t.Errorf("expected Unknown fallback tagged with Furuno brand, got %+v", m)
	}
}

func TestGetAllRangesForBrandSortedAndDeduped(t *testing.T) {
	ranges := GetAllRangesForBrand(Furuno)
	if len(ranges) == 0 {
		t.Fatal("expected non-empty range union")
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i] <= ranges[i-1] {
			t.Fatalf("ranges not strictly increasing at %d: %v", i, ranges)
		}
	}
}

func TestInferModel(t *testing.T) {
	m, ok := InferModel(Furuno, 8192, 1024)
	if !ok {
		t.Fatal("expected a hardware-characteristics match")
	}
	if m.Family != "DRS-NXT" {
		t.Errorf("family = %q, want DRS-NXT", m.Family)
	}
}
