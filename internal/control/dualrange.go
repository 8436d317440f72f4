package control

// DualRangeConfig is the user-facing enable/secondary-range pair, the
// shape persisted and round-tripped through external configuration.
type DualRangeConfig struct {
	Enabled        bool
	SecondaryRange uint32
}

// DualRangeState is the live state of a radar's dual-range feature:
// whether it's enabled, and the current primary/secondary range values.
// Models without HasDualRange never construct one; the capability
// builder's "range" RestrictedWhen constraint keys off Enabled.
type DualRangeState struct {
	Enabled          bool
	PrimaryRange     uint32
	SecondaryRange   uint32
	MaxSecondaryRange uint32
}

// DefaultDualRangeState matches the common factory default across dual
// range capable models.
func DefaultDualRangeState() DualRangeState {
	return DualRangeState{
		Enabled:           false,
		PrimaryRange:      1852,
		SecondaryRange:    926,
		MaxSecondaryRange: 22224,
	}
}

// DualRangeController owns a DualRangeState plus the set of ranges valid
// for the secondary range, filtered to the model's MaxDualRange.
type DualRangeController struct {
	state           DualRangeState
	availableRanges []uint32
}

// NewDualRangeController builds a controller whose secondary range is
// restricted to ranges at or below maxSecondaryRange.
func NewDualRangeController(maxSecondaryRange uint32, allRanges []uint32) *DualRangeController {
	filtered := make([]uint32, 0, len(allRanges))
	for _, r := range allRanges {
		if r <= maxSecondaryRange {
			filtered = append(filtered, r)
		}
	}
	s := DefaultDualRangeState()
	s.MaxSecondaryRange = maxSecondaryRange
	if s.SecondaryRange > maxSecondaryRange && len(filtered) > 0 {
		s.SecondaryRange = filtered[len(filtered)-1]
	}
	return &DualRangeController{state: s, availableRanges: filtered}
}

// State returns the controller's current DualRangeState.
func (c *DualRangeController) State() DualRangeState {
	return c.state
}

// AvailableRanges returns the ranges valid as a secondary range.
func (c *DualRangeController) AvailableRanges() []uint32 {
	out := make([]uint32, len(c.availableRanges))
	copy(out, c.availableRanges)
	return out
}

// SetEnabled toggles dual-range mode.
func (c *DualRangeController) SetEnabled(enabled bool) {
	c.state.Enabled = enabled
}

// SetPrimaryRange updates the primary range. The primary range is not
// constrained by MaxSecondaryRange — only the secondary is.
func (c *DualRangeController) SetPrimaryRange(r uint32) {
	c.state.PrimaryRange = r
}

// SetSecondaryRange updates the secondary range, rejecting any value
// above MaxSecondaryRange.
func (c *DualRangeController) SetSecondaryRange(r uint32) error {
	if r > c.state.MaxSecondaryRange {
		return newError(ErrOutOfRange, "secondaryRange", "secondary range exceeds maximum for dual range")
	}
	c.state.SecondaryRange = r
	return nil
}

// ApplyConfig applies a DualRangeConfig, clamping the secondary range to
// the closest available value rather than rejecting it outright — this
// is how a persisted config from a firmware upgrade (which may have
// shrunk MaxSecondaryRange) gets reconciled on load.
func (c *DualRangeController) ApplyConfig(cfg DualRangeConfig) {
	c.state.Enabled = cfg.Enabled
	if cfg.SecondaryRange <= c.state.MaxSecondaryRange {
		c.state.SecondaryRange = cfg.SecondaryRange
	} else if closest, ok := c.FindClosestRange(cfg.SecondaryRange); ok {
		c.state.SecondaryRange = closest
	}
}

// FindClosestRange returns the available range nearest to target by
// absolute difference.
func (c *DualRangeController) FindClosestRange(target uint32) (uint32, bool) {
	if len(c.availableRanges) == 0 {
		return 0, false
	}
	best := c.availableRanges[0]
	bestDiff := absDiffU32(best, target)
	for _, r := range c.availableRanges[1:] {
		d := absDiffU32(r, target)
		if d < bestDiff {
			best = r
			bestDiff = d
		}
	}
	return best, true
}

func absDiffU32(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
