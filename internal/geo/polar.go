// Package geo converts between the radar's native polar coordinate system
// (angle in spokes, range in pixels) and a local flat-earth tangent plane
// centered on own ship, in meters.
package geo

import "math"

// Conversion constants shared by the codecs and the ARPA pipeline.
const (
	MetersPerDegreeLatitude = 60.0 * NauticalMileMeters
	NauticalMileMeters      = 1852.0
	KnToMS                  = NauticalMileMeters / 3600.0
	MSToKn                  = 3600.0 / NauticalMileMeters
)

// MetersPerDegreeLongitude returns the local scale factor for longitude at
// the given latitude.
func MetersPerDegreeLongitude(latDeg float64) float64 {
	return MetersPerDegreeLatitude * math.Cos(latDeg*math.Pi/180.0)
}

// Polar is a radar-relative position: angle in spoke units
// [0, spokesPerRevolution) and range in pixels from the radar center.
type Polar struct {
	Angle int32
	R     int32
	TimeMs uint64
}

// AngleInRad converts Angle to radians given the radar's spoke resolution.
func (p Polar) AngleInRad(spokesPerRevolution float64) float64 {
	return float64(p.Angle) * 2.0 * math.Pi / spokesPerRevolution
}

// AngleIsBetween reports whether p.Angle lies in [start, end), handling
// wraparound when end < start.
func (p Polar) AngleIsBetween(start, end int32) bool {
	if p.Angle >= start && p.Angle < end {
		return true
	}
	if end < start && (p.Angle >= start || p.Angle < end) {
		return true
	}
	return false
}

// Add combines two polar offsets componentwise; used by the contour
// follower to step along FourDirections.
func (p Polar) Add(o Polar) Polar {
	return Polar{Angle: p.Angle + o.Angle, R: p.R + o.R, TimeMs: p.TimeMs + o.TimeMs}
}

// FourDirections are the cardinal steps for contour following: radially
// outward, clockwise, radially inward, counter-clockwise.
var FourDirections = [4]Polar{
	{Angle: 0, R: 1, TimeMs: 0},
	{Angle: 1, R: 0, TimeMs: 0},
	{Angle: 0, R: -1, TimeMs: 0},
	{Angle: -1, R: 0, TimeMs: 0},
}

// LocalPosition is a Cartesian offset from own ship, in meters, with
// north-positive latitude axis and east-positive longitude axis.
type LocalPosition struct {
	Lat     float64
	Lon     float64
	DLatDt  float64
	DLonDt  float64
	SDSpeed float64
}

// SpeedMS returns the magnitude of the local velocity in m/s.
func (l LocalPosition) SpeedMS() float64 {
	return math.Hypot(l.DLatDt, l.DLonDt)
}

// CourseDeg returns the local velocity's heading in degrees true, [0,360).
func (l LocalPosition) CourseDeg() float64 {
	course := math.Atan2(l.DLonDt, l.DLatDt) * 180.0 / math.Pi
	if course < 0 {
		course += 360.0
	}
	return course
}

// Converter holds the per-radar parameters needed to convert between polar
// and local coordinates.
type Converter struct {
	SpokesPerRevolution   int32
	spokesPerRevolutionF  float64
	PixelsPerMeter        float64
}

// NewConverter builds a Converter for a radar with the given spoke
// resolution and pixel scale.
func NewConverter(spokesPerRevolution int32, pixelsPerMeter float64) Converter {
	return Converter{
		SpokesPerRevolution:  spokesPerRevolution,
		spokesPerRevolutionF: float64(spokesPerRevolution),
		PixelsPerMeter:       pixelsPerMeter,
	}
}

// ModSpokes normalizes angle into [0, SpokesPerRevolution).
func (c Converter) ModSpokes(angle int32) int32 {
	n := c.SpokesPerRevolution
	return ((angle % n) + n) % n
}

// PolarToLocal converts a polar position to a local (lat_m, lon_m) offset.
func (c Converter) PolarToLocal(p Polar) (latM, lonM float64) {
	angleRad := p.AngleInRad(c.spokesPerRevolutionF)
	distanceM := float64(p.R) / c.PixelsPerMeter
	return distanceM * math.Cos(angleRad), distanceM * math.Sin(angleRad)
}

// LocalToPolar converts a local (latM, lonM) offset to a polar position.
//
// The +1.0 bias before truncation mirrors the reference converter exactly:
// it is a deliberate rounding nudge, not an off-by-one bug, and changing it
// would shift every round-trip test by a pixel/spoke.
func (c Converter) LocalToPolar(latM, lonM float64, timeMs uint64) Polar {
	r := int32(math.Hypot(latM, lonM)*c.PixelsPerMeter + 1.0)
	angle := math.Atan2(lonM, latM)*c.spokesPerRevolutionF/(2.0*math.Pi) + 1.0
	if angle < 0 {
		angle += c.spokesPerRevolutionF
	}
	return Polar{Angle: int32(angle), R: r, TimeMs: timeMs}
}

// PolarToGeoOffset returns the (deltaLatDeg, deltaLonDeg) to add to own
// ship's geographic position to obtain the target's geographic position.
func (c Converter) PolarToGeoOffset(p Polar, ownLatDeg float64) (deltaLat, deltaLon float64) {
	latM, lonM := c.PolarToLocal(p)
	return latM / MetersPerDegreeLatitude, lonM / MetersPerDegreeLongitude(ownLatDeg)
}

// GeoToPolar converts a target's geographic position, relative to own
// ship's, to a polar position.
func (c Converter) GeoToPolar(targetLat, targetLon, ownLat, ownLon float64, timeMs uint64) Polar {
	difLat := (targetLat - ownLat) * MetersPerDegreeLatitude
	difLon := (targetLon - ownLon) * MetersPerDegreeLongitude(ownLat)
	return c.LocalToPolar(difLat, difLon, timeMs)
}

// ScanMargin returns the number of spokes corresponding to a tenth of a
// revolution, used to pad search boxes near the 0/max angle wrap.
func (c Converter) ScanMargin() int32 {
	return c.SpokesPerRevolution / 10
}
