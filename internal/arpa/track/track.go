// Package track implements the ARPA target lifecycle (C12): the
// Acquire0..3 -> Tracking -> Lost state machine, per-revolution refresh
// against the history buffer and contour follower, and own-ship motion
// compensation between a spoke's capture time and the refresh time.
package track

import (
	"math"

	"github.com/google/uuid"

	"github.com/marinecore/radarcore/internal/arpa/contour"
	"github.com/marinecore/radarcore/internal/arpa/history"
	"github.com/marinecore/radarcore/internal/arpa/kalman"
	"github.com/marinecore/radarcore/internal/geo"
	"github.com/marinecore/radarcore/internal/logging"
)

var log = logging.Component("arpa:track")

// Status is a target's lifecycle stage.
type Status int

const (
	Acquire0 Status = iota
	Acquire1
	Acquire2
	Acquire3
	Tracking
	Lost
)

func (s Status) String() string {
	switch s {
	case Acquire0:
		return "acquire0"
	case Acquire1:
		return "acquire1"
	case Acquire2:
		return "acquire2"
	case Acquire3:
		return "acquire3"
	case Tracking:
		return "tracking"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s Status) isAcquiring() bool { return s >= Acquire0 && s < Tracking }

// Pass selects which half of a two-pass revolution algorithm Refresh
// performs (spec §4.12): First predicts and advances covariance, Second
// performs only the measurement update against a blob found since First
// ran. A caller doing a single-pass revolution always uses Pass=First.
type Pass int

const (
	PassFirst Pass = iota
	PassSecond
)

// ExtendedPosition is a target's position in every coordinate frame the
// spec's TargetState carries: local (meters, own-ship-relative),
// geographic, and the own-ship fix recorded at capture.
type ExtendedPosition struct {
	LocalLatM, LocalLonM float64
	GeoLat, GeoLon       float64
	TimestampMs          uint64
	OwnLat, OwnLon       float64
}

// Target is one tracked blob.
type Target struct {
	ID         string
	Status     Status
	Position   ExtendedPosition
	Kalman     *kalman.State
	Doppler    contour.DopplerClassifier
	LostCount  int
	FirstSeenMs uint64
	LastSeenMs  uint64
}

// Config bundles the tuning knobs Refresh needs, sourced from
// internal/config.Settings so a host can override them per deployment.
type Config struct {
	SearchRadiusPixels  int32
	MinContourLength    int
	MaxContourLength    int
	MaxLostCount        int
	MaxDetectionSpeedKn float64
}

// New acquires a target at the given polar position, seeding the Kalman
// filter's position from it and assigning it a fresh opaque id.
func New(conv geo.Converter, measuredAngle, measuredR float64, nowMs uint64, ownLat, ownLon float64) *Target {
	latM, lonM := conv.PolarToLocal(geo.Polar{Angle: int32(measuredAngle), R: int32(measuredR)})
	dLat, dLon := conv.PolarToGeoOffset(geo.Polar{Angle: int32(measuredAngle), R: int32(measuredR)}, ownLat)
	return &Target{
		ID:     uuid.NewString(),
		Status: Acquire0,
		Position: ExtendedPosition{
			LocalLatM: latM, LocalLonM: lonM,
			GeoLat: ownLat + dLat, GeoLon: ownLon + dLon,
			TimestampMs: nowMs, OwnLat: ownLat, OwnLon: ownLon,
		},
		Kalman:      kalman.NewState(latM, lonM),
		FirstSeenMs: nowMs,
		LastSeenMs:  nowMs,
	}
}

// Refresh runs one revolution's worth of prediction/search/update against
// t, per spec §4.12's five-step algorithm.
func (t *Target) Refresh(h *history.Buffer, conv geo.Converter, cfg Config, nowMs uint64, ownLat, ownLon float64, pass Pass) {
	dt := float64(nowMs-t.LastSeenMs) / 1000.0
	if dt < 0 {
		dt = 0
	}

	t.Kalman.Predict(dt)
	if pass == PassFirst {
		t.Kalman.PredictCovariance(dt)
	}

	predictedAngle, predictedR := expectedPolar(t.Kalman, conv)

	// Own-ship motion compensation: translate the predicted Cartesian
	// position by the delta between own ship's position now and its
	// position when the spoke nearest the predicted angle was captured.
	if capturedLat, capturedLon, _, ok := h.GetOwnPosition(int32(predictedAngle)); ok {
		dLat := (ownLat - capturedLat) * geo.MetersPerDegreeLatitude
		dLon := (ownLon - capturedLon) * geo.MetersPerDegreeLongitude(ownLat)
		t.Kalman.X.SetVec(0, t.Kalman.X.AtVec(0)-dLat)
		t.Kalman.X.SetVec(1, t.Kalman.X.AtVec(1)-dLon)
		predictedAngle, predictedR = expectedPolar(t.Kalman, conv)
	}

	searchRadius := cfg.SearchRadiusPixels
	if searchRadius == 0 {
		searchRadius = 25
	}
	scanMargin := conv.ScanMargin()

	found := searchBlob(h, conv, int32(predictedAngle), int32(predictedR), searchRadius, scanMargin, contour.Params{
		Threshold:        1,
		MinContourLength: cfg.MinContourLength,
		MaxContourLength: cfg.MaxContourLength,
		SpokesPerRev:     conv.SpokesPerRevolution,
	})

	if found == nil {
		t.advanceLost(nowMs, cfg.MaxLostCount)
		return
	}

	preX, preP := t.Kalman.X, t.Kalman.P
	ok := t.Kalman.Update(float64(found.Centroid.Angle), float64(found.Centroid.R), conv)
	if !ok {
		t.advanceLost(nowMs, cfg.MaxLostCount)
		return
	}

	speedKn := math.Hypot(t.Kalman.DLatDt(), t.Kalman.DLonDt()) * geo.MSToKn
	maxSpeed := cfg.MaxDetectionSpeedKn
	if maxSpeed <= 0 {
		maxSpeed = 70
	}
	if speedKn > maxSpeed {
		// Reject the whole update — position, velocity, and covariance all
		// revert to their pre-update values — and treat this revolution as
		// a miss, exactly like no blob being found at all.
		t.Kalman.X, t.Kalman.P = preX, preP
		t.advanceLost(nowMs, cfg.MaxLostCount)
		return
	}

	t.Doppler.Classify(h, found.Perimeter)
	t.LostCount = 0
	t.LastSeenMs = nowMs
	t.Position = ExtendedPosition{
		LocalLatM: t.Kalman.LatM(), LocalLonM: t.Kalman.LonM(),
		TimestampMs: nowMs, OwnLat: ownLat, OwnLon: ownLon,
	}
	dLat, dLon := conv.PolarToGeoOffset(geo.Polar{Angle: int32(predictedAngle), R: int32(predictedR)}, ownLat)
	t.Position.GeoLat = ownLat + dLat
	t.Position.GeoLon = ownLon + dLon

	if t.Status.isAcquiring() {
		t.Status++
	}
}

func (t *Target) advanceLost(nowMs uint64, maxLostCount int) {
	t.LostCount++
	if maxLostCount == 0 {
		maxLostCount = 3
	}
	if t.LostCount >= maxLostCount {
		t.Status = Lost
	}
	t.LastSeenMs = nowMs
}

// Eligible reports whether t has accumulated enough consecutive misses to
// be removed by the caller (spec §3: "destroyed when lost_count >=
// MAX_LOST_COUNT").
func (t *Target) Eligible(maxLostCount int) bool {
	return t.LostCount >= maxLostCount
}

func expectedPolar(k *kalman.State, conv geo.Converter) (angle, r float64) {
	p := conv.LocalToPolar(k.LatM(), k.LonM(), 0)
	return float64(p.Angle), float64(p.R)
}

// searchBlob scans a polar box around (angle, r) of +/-radiusPixels and
// +/-scanMargin spokes, following the contour at every above-threshold
// pixel found and keeping the highest-intensity, size-valid result.
func searchBlob(h *history.Buffer, conv geo.Converter, angle, r, radiusPixels, scanMargin int32, p contour.Params) *contour.Contour {
	var best *contour.Contour
	var bestIntensity int

	for da := -scanMargin; da <= scanMargin; da++ {
		a := angle + da
		for dr := -radiusPixels; dr <= radiusPixels; dr++ {
			rr := r + dr
			if rr < 0 {
				continue
			}
			px := h.GetPixel(a, rr)
			if int(px.Intensity) < int(p.Threshold) {
				continue
			}
			c := contour.Follow(h, geo.Polar{Angle: a, R: rr}, p)
			if c.Outcome != contour.OutcomeSuccess {
				continue
			}
			if int(px.Intensity) > bestIntensity {
				bestIntensity = int(px.Intensity)
				cc := c
				best = &cc
			}
		}
	}
	if best == nil {
		log("no blob found near angle=%d r=%d", angle, r)
	}
	return best
}
