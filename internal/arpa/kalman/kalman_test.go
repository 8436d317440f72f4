package kalman

import (
	"math"
	"testing"

	"github.com/marinecore/radarcore/internal/geo"
)

func TestNewStateSeedsPositionAndZeroVelocity(t *testing.T) {
	s := NewState(100, -50)
	if s.LatM() != 100 || s.LonM() != -50 {
		t.Fatalf("got (%v, %v), want (100, -50)", s.LatM(), s.LonM())
	}
	if s.DLatDt() != 0 || s.DLonDt() != 0 {
		t.Errorf("expected zero initial velocity, got (%v, %v)", s.DLatDt(), s.DLonDt())
	}
}

func TestPredictAdvancesPositionByVelocity(t *testing.T) {
	s := NewState(0, 0)
	s.X.SetVec(2, 10) // dlat/dt = 10 m/s
	s.X.SetVec(3, 5)  // dlon/dt = 5 m/s
	s.Predict(2.0)

	if math.Abs(s.LatM()-20) > 1e-9 {
		t.Errorf("expected LatM 20 after 2s at 10m/s, got %v", s.LatM())
	}
	if math.Abs(s.LonM()-10) > 1e-9 {
		t.Errorf("expected LonM 10 after 2s at 5m/s, got %v", s.LonM())
	}
	// Predict leaves velocity unchanged (constant-velocity model).
	if s.DLatDt() != 10 || s.DLonDt() != 5 {
		t.Errorf("expected velocity unchanged by Predict, got (%v, %v)", s.DLatDt(), s.DLonDt())
	}
}

func TestPredictCovarianceGrowsWithTime(t *testing.T) {
	s := NewState(0, 0)
	before := s.P.At(0, 0)
	s.PredictCovariance(1.0)
	if s.P.At(0, 0) <= before {
		t.Errorf("expected position covariance to grow after PredictCovariance, got %v <= %v", s.P.At(0, 0), before)
	}
}

func TestUpdateSkippedAtOrigin(t *testing.T) {
	s := NewState(0, 0)
	conv := geo.NewConverter(2048, 4.0)
	if ok := s.Update(0, 10, conv); ok {
		t.Errorf("expected Update to decline a target sitting at the origin")
	}
}

func TestUpdatePullsStateTowardMeasurement(t *testing.T) {
	conv := geo.NewConverter(2048, 4.0)
	s := NewState(100, 0) // due north along spoke 0 in this frame
	measured := conv.LocalToPolar(120, 0, 0)

	beforeDist := math.Hypot(s.LatM()-120, s.LonM())
	ok := s.Update(float64(measured.Angle), float64(measured.R), conv)
	if !ok {
		t.Fatalf("expected Update to succeed for a valid off-origin state")
	}
	afterDist := math.Hypot(s.LatM()-120, s.LonM())
	if afterDist >= beforeDist {
		t.Errorf("expected the corrected state to move closer to the measured position: before=%v after=%v", beforeDist, afterDist)
	}
}

func TestUnwrapAngleFoldsAcrossWrap(t *testing.T) {
	got := unwrapAngle(1000, 1024)
	if got != 1000-1024 {
		t.Errorf("expected wraparound fold, got %v", got)
	}
	got = unwrapAngle(10, 1024)
	if got != 10 {
		t.Errorf("expected small diff unchanged, got %v", got)
	}
}
