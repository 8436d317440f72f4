package geo

import (
	"math"
	"testing"
)

func TestPolarAngleRad(t *testing.T) {
	p := Polar{Angle: 0, R: 100}
	if math.Abs(p.AngleInRad(360.0)-0.0) > 1e-10 {
		t.Fatalf("expected 0 rad, got %v", p.AngleInRad(360.0))
	}
	p = Polar{Angle: 90, R: 100}
	if math.Abs(p.AngleInRad(360.0)-math.Pi/2.0) > 1e-10 {
		t.Fatalf("expected pi/2, got %v", p.AngleInRad(360.0))
	}
}

func TestModSpokes(t *testing.T) {
	c := NewConverter(2048, 1.0)
	cases := []struct{ in, want int32 }{
		{0, 0}, {2048, 0}, {-1, 2047}, {2049, 1},
	}
	for _, tc := range cases {
		if got := c.ModSpokes(tc.in); got != tc.want {
			t.Errorf("ModSpokes(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPolarLocalRoundTrip(t *testing.T) {
	c := NewConverter(2048, 0.5)
	p := Polar{Angle: 512, R: 100, TimeMs: 1000}
	latM, lonM := c.PolarToLocal(p)
	p2 := c.LocalToPolar(latM, lonM, 1000)

	if diff := p.R - p2.R; diff > 1 || diff < -1 {
		t.Errorf("r drifted by %d", diff)
	}
	da := c.ModSpokes(p.Angle) - c.ModSpokes(p2.Angle)
	if da > 1 || da < -1 {
		t.Errorf("angle drifted by %d", da)
	}
}

func TestAngleIsBetween(t *testing.T) {
	p := Polar{Angle: 100, R: 50}
	if !p.AngleIsBetween(50, 150) {
		t.Error("expected 100 in [50,150)")
	}
	if p.AngleIsBetween(150, 200) {
		t.Error("expected 100 not in [150,200)")
	}

	p2 := Polar{Angle: 10, R: 50}
	if !p2.AngleIsBetween(2000, 50) {
		t.Error("expected wraparound match")
	}
}

func TestLocalPositionSpeed(t *testing.T) {
	pos := LocalPosition{DLatDt: 3.0, DLonDt: 4.0}
	if math.Abs(pos.SpeedMS()-5.0) > 1e-10 {
		t.Errorf("SpeedMS() = %v, want 5.0", pos.SpeedMS())
	}
}
