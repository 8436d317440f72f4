// Package history implements the ARPA history buffer (C9): a ring of
// spokesPerRevolution entries indexed by angle, each holding the most
// recently received spoke's samples plus the own-ship position captured
// at ingest time. It is written by the spoke carrier (single-writer per
// angle, per spec §5) and read by the ARPA carrier only once a full
// revolution has been observed, matching the teacher's single-writer
// ring-buffer discipline in internal/lidar/l3grid/background.go.
package history

import "github.com/marinecore/radarcore/internal/protocol"

// Pixel is one sample within a HistorySpoke: an intensity plus the
// classification bits the contour/Doppler state machine (C10) needs.
type Pixel struct {
	Intensity byte
	History   bool // true once a target has crossed this cell (contour seed hint)
	Doppler   protocol.PixelClass
}

// Spoke is one ring entry: everything captured at the moment a spoke
// arrived.
type Spoke struct {
	Angle       int32
	TimestampMs uint64
	OwnLat      float64
	OwnLon      float64
	Pixels      []Pixel
	valid       bool
}

// Buffer is the ring of spokesPerRevolution Spoke entries.
type Buffer struct {
	spokesPerRevolution int32
	maxSpokeLength      int
	ring                []Spoke
}

// New builds an empty Buffer sized for the given spoke geometry.
func New(spokesPerRevolution int32, maxSpokeLength int) *Buffer {
	ring := make([]Spoke, spokesPerRevolution)
	for i := range ring {
		ring[i].Pixels = make([]Pixel, maxSpokeLength)
	}
	return &Buffer{
		spokesPerRevolution: spokesPerRevolution,
		maxSpokeLength:      maxSpokeLength,
		ring:                ring,
	}
}

// UpdateSpoke overwrites the slot at angle with data, a spoke that has
// already passed through the spoke processor (C8) and so carries final
// legend-index bytes: plain intensities, or the reserved Doppler marker
// values. Storing it byte-for-byte, rather than reclassifying it again,
// is what lets GetSpoke hand a caller back exactly what was written.
// data shorter than maxSpokeLength leaves the tail zeroed; longer data
// is truncated.
func (b *Buffer) UpdateSpoke(angle int32, data []byte, timestampMs uint64, ownLat, ownLon float64) {
	idx := b.normalize(angle)
	s := &b.ring[idx]
	s.Angle = idx
	s.TimestampMs = timestampMs
	s.OwnLat = ownLat
	s.OwnLon = ownLon
	s.valid = true

	n := len(data)
	if n > b.maxSpokeLength {
		n = b.maxSpokeLength
	}
	for i := 0; i < n; i++ {
		s.Pixels[i] = Pixel{Intensity: data[i], Doppler: classifyProcessed(data[i]), History: data[i] > 0}
	}
	for i := n; i < b.maxSpokeLength; i++ {
		s.Pixels[i] = Pixel{}
	}
}

// classifyProcessed tags an already-processed spoke byte with its pixel
// class, using the same reserved Doppler marker values the spoke
// processor emits (protocol.DopplerApproachingIndex/RecedingIndex) —
// unlike legend.ClassifyNibble, it never maps the byte to an intensity,
// since it already is one.
func classifyProcessed(b byte) protocol.PixelClass {
	switch b {
	case protocol.DopplerApproachingIndex:
		return protocol.PixelDopplerApproaching
	case protocol.DopplerRecedingIndex:
		return protocol.PixelDopplerReceding
	default:
		return protocol.PixelNormal
	}
}

// GetSpoke returns the data bytes last written at angle and whether the
// slot has ever been written.
func (b *Buffer) GetSpoke(angle int32) ([]byte, bool) {
	idx := b.normalize(angle)
	s := &b.ring[idx]
	if !s.valid {
		return nil, false
	}
	out := make([]byte, len(s.Pixels))
	for i, px := range s.Pixels {
		out[i] = px.Intensity
	}
	return out, true
}

// GetPixel returns the pixel at (angle, r), used by the contour follower
// (C10). Out-of-range r returns the zero Pixel.
func (b *Buffer) GetPixel(angle, r int32) Pixel {
	idx := b.normalize(angle)
	s := &b.ring[idx]
	if r < 0 || int(r) >= len(s.Pixels) {
		return Pixel{}
	}
	return s.Pixels[r]
}

// GetOwnPosition returns the own-ship lat/lon/timestamp captured when the
// spoke at angle was ingested, used for own-ship motion compensation
// during target refresh (C12 step 2).
func (b *Buffer) GetOwnPosition(angle int32) (lat, lon float64, timestampMs uint64, ok bool) {
	idx := b.normalize(angle)
	s := &b.ring[idx]
	if !s.valid {
		return 0, 0, 0, false
	}
	return s.OwnLat, s.OwnLon, s.TimestampMs, true
}

// SpokesPerRevolution returns the ring's configured angular resolution.
func (b *Buffer) SpokesPerRevolution() int32 { return b.spokesPerRevolution }

// MaxSpokeLength returns the ring's configured per-spoke sample count.
func (b *Buffer) MaxSpokeLength() int { return b.maxSpokeLength }

func (b *Buffer) normalize(angle int32) int32 {
	n := b.spokesPerRevolution
	return ((angle % n) + n) % n
}
