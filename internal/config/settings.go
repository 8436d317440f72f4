// Package config holds ARPA tuning settings, loaded from optional JSON with
// pointer fields so an operator config can override a subset of values and
// everything else falls back to the documented default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings holds ARPA tuning knobs. Every field is a pointer so a partial
// JSON document only overrides what it mentions; Get* accessors resolve
// unset fields to their documented default.
type Settings struct {
	MaxDetectionSpeedKn *float64 `json:"maxDetectionSpeedKn,omitempty"`
	MinContourLength    *int     `json:"minContourLength,omitempty"`
	MaxContourLength    *int     `json:"maxContourLength,omitempty"`
	SearchRadiusPixels  *int     `json:"searchRadiusPixels,omitempty"`
	CPAThresholdM       *float64 `json:"cpaThresholdM,omitempty"`
	TCPAThresholdS      *float64 `json:"tcpaThresholdS,omitempty"`
	TrailMinIntervalMs  *int64   `json:"trailMinIntervalMs,omitempty"`
	TrailMaxPoints      *int     `json:"trailMaxPoints,omitempty"`
	TrailDurationS      *float64 `json:"trailDurationS,omitempty"`
	MaxLostCount        *int     `json:"maxLostCount,omitempty"`
}

// Defaults, documented per-field. MaxDetectionSpeedKn defaults to a
// conservative small-craft/coastal figure; see SPEC_FULL's open-question
// decision.
const (
	DefaultMaxDetectionSpeedKn = 70.0
	DefaultMinContourLength    = 3
	DefaultMaxContourLength    = 2000
	DefaultSearchRadiusPixels  = 25
	DefaultCPAThresholdM       = 1852.0
	DefaultTCPAThresholdS      = 1200.0
	DefaultTrailMinIntervalMs  = int64(1000)
	DefaultTrailMaxPoints      = 200
	DefaultTrailDurationS      = 1800.0
	DefaultMaxLostCount        = 3
)

func (s *Settings) GetMaxDetectionSpeedKn() float64 {
	if s != nil && s.MaxDetectionSpeedKn != nil {
		return *s.MaxDetectionSpeedKn
	}
	return DefaultMaxDetectionSpeedKn
}

func (s *Settings) GetMinContourLength() int {
	if s != nil && s.MinContourLength != nil {
		return *s.MinContourLength
	}
	return DefaultMinContourLength
}

func (s *Settings) GetMaxContourLength() int {
	if s != nil && s.MaxContourLength != nil {
		return *s.MaxContourLength
	}
	return DefaultMaxContourLength
}

func (s *Settings) GetSearchRadiusPixels() int {
	if s != nil && s.SearchRadiusPixels != nil {
		return *s.SearchRadiusPixels
	}
	return DefaultSearchRadiusPixels
}

func (s *Settings) GetCPAThresholdM() float64 {
	if s != nil && s.CPAThresholdM != nil {
		return *s.CPAThresholdM
	}
	return DefaultCPAThresholdM
}

func (s *Settings) GetTCPAThresholdS() float64 {
	if s != nil && s.TCPAThresholdS != nil {
		return *s.TCPAThresholdS
	}
	return DefaultTCPAThresholdS
}

func (s *Settings) GetTrailMinIntervalMs() int64 {
	if s != nil && s.TrailMinIntervalMs != nil {
		return *s.TrailMinIntervalMs
	}
	return DefaultTrailMinIntervalMs
}

func (s *Settings) GetTrailMaxPoints() int {
	if s != nil && s.TrailMaxPoints != nil {
		return *s.TrailMaxPoints
	}
	return DefaultTrailMaxPoints
}

func (s *Settings) GetTrailDurationS() float64 {
	if s != nil && s.TrailDurationS != nil {
		return *s.TrailDurationS
	}
	return DefaultTrailDurationS
}

func (s *Settings) GetMaxLostCount() int {
	if s != nil && s.MaxLostCount != nil {
		return *s.MaxLostCount
	}
	return DefaultMaxLostCount
}

// Validate checks that any provided fields are within sane ranges.
func (s *Settings) Validate() error {
	if s == nil {
		return nil
	}
	if s.MaxDetectionSpeedKn != nil && *s.MaxDetectionSpeedKn <= 0 {
		return fmt.Errorf("config: maxDetectionSpeedKn must be positive, got %v", *s.MaxDetectionSpeedKn)
	}
	if s.MinContourLength != nil && *s.MinContourLength < 1 {
		return fmt.Errorf("config: minContourLength must be >= 1, got %v", *s.MinContourLength)
	}
	if s.MaxContourLength != nil && s.MinContourLength != nil && *s.MaxContourLength < *s.MinContourLength {
		return fmt.Errorf("config: maxContourLength must be >= minContourLength")
	}
	if s.TrailMaxPoints != nil && *s.TrailMaxPoints < 1 {
		return fmt.Errorf("config: trailMaxPoints must be >= 1, got %v", *s.TrailMaxPoints)
	}
	if s.MaxLostCount != nil && *s.MaxLostCount < 1 {
		return fmt.Errorf("config: maxLostCount must be >= 1, got %v", *s.MaxLostCount)
	}
	return nil
}

// LoadSettings reads and validates a JSON settings document from path.
// A missing file is not an error: it returns an empty Settings (all
// defaults apply).
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
