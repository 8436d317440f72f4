// Package kalman implements the ARPA extended Kalman filter (C11): a
// 4-state (position + velocity) constant-velocity filter in Cartesian
// meters whose measurement model is polar (angle in spokes, range in
// pixels), following spec §4.11 exactly. Matrix algebra is done with
// gonum/mat rather than hand-rolled 4x4 arithmetic, matching the pack's
// established use of gonum for numeric linear algebra (viamrobotics-rdk's
// lidar package).
package kalman

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/marinecore/radarcore/internal/geo"
	"github.com/marinecore/radarcore/internal/logging"
)

var log = logging.Component("kalman")

// ProcessNoise is the velocity-driven process noise q, (m/s)^2 per second
// (spec §4.11: Q = diag(q, q), q = 1.0).
const ProcessNoise = 1.0

// State is the filter's [lat_m, lon_m, dlat_m_s, dlon_m_s] estimate and
// its 4x4 covariance, held as gonum matrices so predict/update are plain
// matrix expressions rather than unrolled scalar algebra.
type State struct {
	X *mat.VecDense // 4x1
	P *mat.Dense    // 4x4
}

// NewState builds the initial state from a measured local position, with
// zero initial velocity and the spec's initial covariance
// diag(20, 20, 4, 4).
func NewState(latM, lonM float64) *State {
	x := mat.NewVecDense(4, []float64{latM, lonM, 0, 0})
	p := mat.NewDense(4, 4, nil)
	p.Set(0, 0, 20)
	p.Set(1, 1, 20)
	p.Set(2, 2, 4)
	p.Set(3, 3, 4)
	return &State{X: x, P: p}
}

// LatM, LonM, DLatDt, DLonDt read out the current state vector.
func (s *State) LatM() float64  { return s.X.AtVec(0) }
func (s *State) LonM() float64  { return s.X.AtVec(1) }
func (s *State) DLatDt() float64 { return s.X.AtVec(2) }
func (s *State) DLonDt() float64 { return s.X.AtVec(3) }

// SDSpeed returns the standard deviation of the speed estimate,
// sqrt((P[2,2]+P[3,3])/2) per spec §4.11.
func (s *State) SDSpeed() float64 {
	return math.Sqrt((s.P.At(2, 2) + s.P.At(3, 3)) / 2.0)
}

// transitionMatrix builds A = I + dt*E, E coupling velocity into position.
func transitionMatrix(dt float64) *mat.Dense {
	a := mat.NewDense(4, 4, []float64{
		1, 0, dt, 0,
		0, 1, 0, dt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	return a
}

// Predict advances the state's position/velocity estimate by dt seconds
// without touching covariance, so a caller can run prediction-only passes
// (spec §4.12 Pass=First/Second split) across a multi-pass revolution.
func (s *State) Predict(dt float64) {
	a := transitionMatrix(dt)
	var xNext mat.VecDense
	xNext.MulVec(a, s.X)
	s.X = &xNext
}

// PredictCovariance advances P by one dt step: P <- A*P*A^T + W*Q*W^T.
// Exposed separately from Predict so repeated position-only predictions
// (e.g. own-ship compensation lookups) don't inflate covariance more than
// once per revolution.
func (s *State) PredictCovariance(dt float64) {
	a := transitionMatrix(dt)
	w := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 0,
		1, 0,
		0, 1,
	})
	q := mat.NewDense(2, 2, []float64{
		ProcessNoise * dt, 0,
		0, ProcessNoise * dt,
	})

	var ap, apat mat.Dense
	ap.Mul(a, s.P)
	apat.Mul(&ap, a.T())

	var wq, wqwt mat.Dense
	wq.Mul(w, q)
	wqwt.Mul(&wq, w.T())

	var pNext mat.Dense
	pNext.Add(&apat, &wqwt)
	s.P = &pNext
}

// measurementNoise returns R = diag(100, 25): angle-spokes^2, range-pixels^2
// (spec §4.11).
func measurementNoise() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		100, 0,
		0, 25,
	})
}

// jacobian computes H at the current state, per spec §4.11:
//
//	c = spokesPerRev / 2π
//	H[0,0] = -c·lon/(lat²+lon²)    H[0,1] = c·lat/(lat²+lon²)
//	H[1,0] = lat/√(lat²+lon²)·ppm  H[1,1] = lon/√(lat²+lon²)·ppm
func jacobian(latM, lonM, spokesPerRev, pixelsPerMeter float64) *mat.Dense {
	c := spokesPerRev / (2 * math.Pi)
	rSq := latM*latM + lonM*lonM
	r := math.Sqrt(rSq)
	return mat.NewDense(2, 4, []float64{
		-c * lonM / rSq, c * latM / rSq, 0, 0,
		latM / r * pixelsPerMeter, lonM / r * pixelsPerMeter, 0, 0,
	})
}

// expectedMeasurement converts the current Cartesian state to the polar
// measurement the radar would report if it were a perfect sensor.
func expectedMeasurement(latM, lonM float64, conv geo.Converter) (angle, r float64) {
	p := conv.LocalToPolar(latM, lonM, 0)
	return float64(p.Angle), float64(p.R)
}

// Update folds a measured polar position into the state via the EKF
// correction step. If the target sits at the origin (lat²+lon² < 1e-10)
// or the innovation covariance S is singular, the update is skipped and
// Update returns false — the caller treats this exactly like a missed
// detection (spec §4.11).
func (s *State) Update(measuredAngle, measuredR float64, conv geo.Converter) bool {
	latM, lonM := s.LatM(), s.LonM()
	if latM*latM+lonM*lonM < 1e-10 {
		log("update skipped: target at the origin")
		return false
	}

	spokesPerRev := float64(conv.SpokesPerRevolution)
	h := jacobian(latM, lonM, spokesPerRev, conv.PixelsPerMeter)

	expAngle, expR := expectedMeasurement(latM, lonM, conv)
	innovAngle := unwrapAngle(measuredAngle-expAngle, spokesPerRev)
	z := mat.NewVecDense(2, []float64{innovAngle, measuredR - expR})

	r := measurementNoise()

	var hp mat.Dense
	hp.Mul(h, s.P)
	var hpht mat.Dense
	hpht.Mul(&hp, h.T())
	var sMat mat.Dense
	sMat.Add(&hpht, r)

	var sInv mat.Dense
	if err := sInv.Inverse(&sMat); err != nil {
		log("update skipped: singular innovation covariance: %v", err)
		return false
	}

	var pht mat.Dense
	pht.Mul(s.P, h.T())
	var k mat.Dense
	k.Mul(&pht, &sInv)

	var kz mat.VecDense
	kz.MulVec(&k, z)
	var xNext mat.VecDense
	xNext.AddVec(s.X, &kz)
	s.X = &xNext

	var kh mat.Dense
	kh.Mul(&k, h)
	ident := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		ident.Set(i, i, 1)
	}
	var ikh mat.Dense
	ikh.Sub(ident, &kh)
	var pNext mat.Dense
	pNext.Mul(&ikh, s.P)
	s.P = &pNext
	return true
}

// unwrapAngle folds a raw angle difference into [-spokes/2, spokes/2),
// handling the wraparound at the 0/max-spoke boundary (spec §4.11).
func unwrapAngle(diff, spokesPerRev float64) float64 {
	half := spokesPerRev / 2
	for diff >= half {
		diff -= spokesPerRev
	}
	for diff < -half {
		diff += spokesPerRev
	}
	return diff
}
