// Package detector implements the ARPA auto-acquisition detector (C15):
// a per-spoke threshold/run-length candidate extractor and a
// per-revolution correlator that promotes a candidate seen consistently
// across recent revolutions into an acquisition.
package detector

// Candidate is one contiguous above-threshold run found on a single
// spoke.
type Candidate struct {
	BearingDeg float64
	DistanceM  float64
	Intensity  byte
	Size       int
}

// ScanSpoke extracts contiguous runs of samples >= threshold and at
// least minSize long from one spoke's normalized pixel data, reporting
// each run's centroid distance (rangeScale meters per sample) and peak
// intensity.
func ScanSpoke(data []byte, bearingDeg float64, threshold byte, minSize int, rangeScaleM float64) []Candidate {
	var out []Candidate
	runStart := -1
	var peak byte

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		size := end - runStart
		if size >= minSize {
			centroid := float64(runStart+end-1) / 2.0
			out = append(out, Candidate{
				BearingDeg: bearingDeg,
				DistanceM:  centroid * rangeScaleM,
				Intensity:  peak,
				Size:       size,
			})
		}
		runStart = -1
		peak = 0
	}

	for i, v := range data {
		if v >= threshold {
			if runStart < 0 {
				runStart = i
				peak = v
			} else if v > peak {
				peak = v
			}
		} else {
			flush(i)
		}
	}
	flush(len(data))
	return out
}

// Correlator keeps the last N revolutions of candidates and promotes a
// candidate matching (within tolerance) a prior-revolution candidate in
// at least floor((N-1)/2) of them, per spec §4.15.
type Correlator struct {
	window     [][]Candidate
	maxWindow  int
	bearingTolDeg float64
	distanceTolFrac float64
}

// NewCorrelator builds a Correlator holding the last windowSize
// revolutions (spec default N=3) with the given match tolerances
// (spec default: +/-5 degrees bearing, +/-10% distance).
func NewCorrelator(windowSize int, bearingTolDeg, distanceTolFrac float64) *Correlator {
	return &Correlator{maxWindow: windowSize, bearingTolDeg: bearingTolDeg, distanceTolFrac: distanceTolFrac}
}

// AddRevolution records one revolution's candidates and returns the
// subset promoted to acquisition: those matching a candidate in at least
// floor((N-1)/2) of the prior revolutions in the window (the revolution
// just added is not counted).
func (c *Correlator) AddRevolution(candidates []Candidate) []Candidate {
	c.window = append(c.window, candidates)
	if len(c.window) > c.maxWindow {
		c.window = c.window[len(c.window)-c.maxWindow:]
	}
	required := (c.maxWindow - 1) / 2

	var promoted []Candidate
	for _, cand := range candidates {
		matches := 0
		for _, revolution := range c.window[:len(c.window)-1] {
			if matchesAny(cand, revolution, c.bearingTolDeg, c.distanceTolFrac) {
				matches++
			}
		}
		if matches >= required {
			promoted = append(promoted, cand)
		}
	}
	return promoted
}

func matchesAny(cand Candidate, against []Candidate, bearingTolDeg, distanceTolFrac float64) bool {
	for _, other := range against {
		if bearingDiff(cand.BearingDeg, other.BearingDeg) > bearingTolDeg {
			continue
		}
		if other.DistanceM == 0 {
			continue
		}
		frac := (cand.DistanceM - other.DistanceM) / other.DistanceM
		if frac < 0 {
			frac = -frac
		}
		if frac > distanceTolFrac {
			continue
		}
		return true
	}
	return false
}

func bearingDiff(a, b float64) float64 {
	d := a - b
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	if d < 0 {
		d = -d
	}
	return d
}
