// Package contour implements the ARPA contour extractor and Doppler
// state machine (C10): a 4-direction follower that walks the outline of
// a blob of history-buffer pixels exceeding a detection threshold, and a
// two-revolution-hysteresis classifier of a blob's dominant Doppler
// state.
package contour

import (
	"github.com/marinecore/radarcore/internal/arpa/history"
	"github.com/marinecore/radarcore/internal/geo"
	"github.com/marinecore/radarcore/internal/protocol"
)

// Outcome tags why the follower stopped.
type Outcome int

const (
	OutcomeSuccess Outcome = iota // closed back on the starting pixel
	OutcomeFail                   // exceeded MaxContourLength without closing
	OutcomeReject                 // closed, but touched fewer than MinContourLength pixels
)

// Contour is the result of successfully following a blob's outline.
type Contour struct {
	Outcome   Outcome
	Length    int         // number of steps taken
	HitCount  int         // number of above-threshold pixels visited
	Centroid  geo.Polar   // mean angle/range of the outline, the target's reported position
	Perimeter []geo.Polar // the traced outline, in step order
}

// Params configures one Follow call.
type Params struct {
	Threshold         byte // minimum pixel intensity considered "target"
	MinContourLength  int
	MaxContourLength  int
	SpokesPerRev       int32
}

// Follow traces the outline of the blob containing the pixel at start,
// stepping through history.FourDirections in turn: +r, +angle, -r,
// -angle, advancing to the next direction whenever the current one would
// leave the target (spec §4.10). It terminates on MaxContourLength
// (Fail), on returning to start (Success), or — if the total number of
// above-threshold pixels visited is below MinContourLength — Reject.
func Follow(h *history.Buffer, start geo.Polar, p Params) Contour {
	if !isHit(h, start, p.Threshold) {
		return Contour{Outcome: OutcomeReject}
	}

	dir := 0
	pos := start
	var perimeter []geo.Polar
	var sumAngle, sumR int64
	hits := 0
	steps := 0

	for steps < p.MaxContourLength {
		steps++
		perimeter = append(perimeter, pos)
		if isHit(h, pos, p.Threshold) {
			hits++
			sumAngle += int64(pos.Angle)
			sumR += int64(pos.R)
		}

		if steps > 1 && pos == start {
			if hits < p.MinContourLength {
				return Contour{Outcome: OutcomeReject, Length: steps, HitCount: hits}
			}
			return Contour{
				Outcome:   OutcomeSuccess,
				Length:    steps,
				HitCount:  hits,
				Centroid:  centroid(sumAngle, sumR, hits, p.SpokesPerRev),
				Perimeter: perimeter,
			}
		}

		moved := false
		for tries := 0; tries < 4; tries++ {
			candidate := applyDirection(pos, dir, p.SpokesPerRev)
			if isHit(h, candidate, p.Threshold) {
				pos = candidate
				moved = true
				break
			}
			dir = (dir + 1) % 4
		}
		if !moved {
			pos = applyDirection(pos, dir, p.SpokesPerRev)
		}
	}
	return Contour{Outcome: OutcomeFail, Length: steps, HitCount: hits}
}

func applyDirection(pos geo.Polar, dir int, spokesPerRev int32) geo.Polar {
	step := geo.FourDirections[dir]
	n := pos.Add(step)
	n.Angle = ((n.Angle % spokesPerRev) + spokesPerRev) % spokesPerRev
	return n
}

func isHit(h *history.Buffer, p geo.Polar, threshold byte) bool {
	px := h.GetPixel(p.Angle, p.R)
	return px.Intensity >= threshold
}

func centroid(sumAngle, sumR int64, hits int, spokesPerRev int32) geo.Polar {
	if hits == 0 {
		return geo.Polar{}
	}
	angle := int32(sumAngle / int64(hits))
	angle = ((angle % spokesPerRev) + spokesPerRev) % spokesPerRev
	return geo.Polar{Angle: angle, R: int32(sumR / int64(hits))}
}

// DopplerState is a target's classified dominant Doppler behavior.
type DopplerState int

const (
	DopplerUnknown DopplerState = iota
	DopplerApproaching
	DopplerReceding
	DopplerStationary
)

// DopplerClassifier applies the two-revolution hysteresis the spec
// requires (§4.10): a new majority classification only takes effect once
// confirmed on a second consecutive revolution, so one noisy revolution
// can't flip a target's reported Doppler state.
type DopplerClassifier struct {
	confirmed DopplerState
	pending   DopplerState
	pendingSeen bool
}

// Classify tallies the Doppler class of every pixel in perimeter and
// folds the majority vote into the classifier's hysteresis, returning
// the (possibly unchanged) confirmed state.
func (c *DopplerClassifier) Classify(h *history.Buffer, perimeter []geo.Polar) DopplerState {
	var approaching, receding, other int
	for _, p := range perimeter {
		px := h.GetPixel(p.Angle, p.R)
		switch px.Doppler {
		case protocol.PixelDopplerApproaching:
			approaching++
		case protocol.PixelDopplerReceding:
			receding++
		default:
			other++
		}
	}

	var majority DopplerState
	switch {
	case approaching == 0 && receding == 0:
		majority = DopplerStationary
	case approaching >= receding:
		majority = DopplerApproaching
	default:
		majority = DopplerReceding
	}
	_ = other

	if majority == c.confirmed {
		c.pendingSeen = false
		return c.confirmed
	}
	if c.pendingSeen && c.pending == majority {
		c.confirmed = majority
		c.pendingSeen = false
		return c.confirmed
	}
	c.pending = majority
	c.pendingSeen = true
	return c.confirmed
}

// State returns the currently confirmed Doppler state without observing
// a new revolution.
func (c *DopplerClassifier) State() DopplerState { return c.confirmed }
