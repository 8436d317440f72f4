// Package trails implements the per-target trail store (C14): a bounded,
// rate-limited, duration-pruned ring of historical fixes per target, plus
// a median-speed statistic over each trail computed with gonum/stat
// (teacher dependency, reused here rather than hand-rolled percentile
// code — see DESIGN.md).
package trails

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Point is one historical fix along a target's trail.
type Point struct {
	TimestampMs int64
	BearingDeg  float64
	DistanceM   float64
	HasGeo      bool
	Lat, Lon    float64
}

// Settings configures a Store's eviction policy. Present across every
// trail; a config change propagates immediately (Store.Reconfigure).
type Settings struct {
	Enabled      bool
	MaxPoints    int
	MinIntervalMs int64
	DurationS    float64
}

type trail struct {
	points []Point
}

// Store holds every target's trail, keyed by target id.
type Store struct {
	settings Settings
	trails   map[string]*trail
}

// New builds an empty Store under the given Settings.
func New(settings Settings) *Store {
	return &Store{settings: settings, trails: make(map[string]*trail)}
}

// Reconfigure replaces the store's settings, truncating every existing
// trail from the head if MaxPoints shrank (spec §4.14: "shrinking
// truncates from the head" — oldest points are dropped first).
func (s *Store) Reconfigure(settings Settings) {
	s.settings = settings
	for _, t := range s.trails {
		s.truncate(t)
	}
}

// AddPoint appends p to id's trail, subject to the rate limit and the
// max-points eviction. Disabled stores silently reject every add (spec
// §4.14: "Disabled trails reject all adds").
func (s *Store) AddPoint(id string, p Point) bool {
	if !s.settings.Enabled {
		return false
	}
	t, ok := s.trails[id]
	if !ok {
		t = &trail{}
		s.trails[id] = t
	}
	if n := len(t.points); n > 0 {
		last := t.points[n-1]
		if p.TimestampMs-last.TimestampMs < s.settings.MinIntervalMs {
			return false
		}
	}
	t.points = append(t.points, p)
	s.truncate(t)
	return true
}

func (s *Store) truncate(t *trail) {
	if s.settings.MaxPoints > 0 && len(t.points) > s.settings.MaxPoints {
		drop := len(t.points) - s.settings.MaxPoints
		t.points = append([]Point(nil), t.points[drop:]...)
	}
}

// PruneOldPoints removes every point older than DurationS relative to
// nowMs across all trails, and removes any trail left empty.
func (s *Store) PruneOldPoints(nowMs int64) {
	if s.settings.DurationS <= 0 {
		return
	}
	cutoff := nowMs - int64(s.settings.DurationS*1000)
	for id, t := range s.trails {
		kept := t.points[:0:0]
		for _, p := range t.points {
			if p.TimestampMs >= cutoff {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(s.trails, id)
			continue
		}
		t.points = kept
	}
}

// Points returns a copy of id's trail, oldest first.
func (s *Store) Points(id string) []Point {
	t, ok := s.trails[id]
	if !ok {
		return nil
	}
	return append([]Point(nil), t.points...)
}

// Remove deletes id's trail entirely (spec §3: "trails are removed when
// their target is removed").
func (s *Store) Remove(id string) {
	delete(s.trails, id)
}

// MedianSpeedMps returns the median of the per-point implied speed along
// id's trail (distance delta over time delta between consecutive
// points), using gonum/stat's quantile rather than a hand-sorted
// midpoint lookup.
func (s *Store) MedianSpeedMps(id string) (float64, bool) {
	t, ok := s.trails[id]
	if !ok || len(t.points) < 2 {
		return 0, false
	}
	speeds := make([]float64, 0, len(t.points)-1)
	for i := 1; i < len(t.points); i++ {
		prev, cur := t.points[i-1], t.points[i]
		dtS := float64(cur.TimestampMs-prev.TimestampMs) / 1000.0
		if dtS <= 0 {
			continue
		}
		speeds = append(speeds, distanceDelta(prev, cur)/dtS)
	}
	if len(speeds) == 0 {
		return 0, false
	}
	sort.Float64s(speeds)
	return stat.Quantile(0.5, stat.Empirical, speeds, nil), true
}

func distanceDelta(a, b Point) float64 {
	// Approximate straight-line distance from bearing/distance pairs via
	// the law of cosines in the polar plane (own ship stays the origin
	// for the trail's duration at ARPA refresh rates, so this is close
	// enough for a speed estimate, not a certified COG input).
	ar := a.DistanceM
	br := b.DistanceM
	angleDiff := (b.BearingDeg - a.BearingDeg) * math.Pi / 180.0
	cosTerm := ar*ar + br*br - 2*ar*br*math.Cos(angleDiff)
	if cosTerm < 0 {
		cosTerm = 0
	}
	return math.Sqrt(cosTerm)
}
