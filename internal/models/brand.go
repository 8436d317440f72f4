// Package models holds the static database of known radar models: range
// tables, spoke geometry, feature flags, and the extended-control ids each
// model exposes. This is the single source of truth for model schema; the
// control store above it only holds values.
package models

import "fmt"

// Brand identifies a radar manufacturer's product family.
type Brand int

const (
	Furuno Brand = iota
	Garmin
	Navico
	Raymarine
)

func (b Brand) String() string {
	switch b {
	case Furuno:
		return "furuno"
	case Garmin:
		return "garmin"
	case Navico:
		return "navico"
	case Raymarine:
		return "raymarine"
	default:
		return "unknown"
	}
}

// ParseBrand parses the lowercase wire/config form back into a Brand.
func ParseBrand(s string) (Brand, error) {
	switch s {
	case "furuno":
		return Furuno, nil
	case "garmin":
		return Garmin, nil
	case "navico":
		return Navico, nil
	case "raymarine":
		return Raymarine, nil
	default:
		return 0, fmt.Errorf("models: unknown brand %q", s)
	}
}
