// Package controller also defines the ControllerOps interface (spec §9
// Design Note): each brand's state machine is different enough to
// warrant its own concrete type rather than a shared vtable, but a host
// dispatch loop still wants one small interface to drive whichever
// brand it's holding without a type switch.
package controller

import (
	"github.com/marinecore/radarcore/internal/control"
	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/metrics"
)

// ControllerOps is implemented by every brand's controller type
// (furuno.Controller, navico.Controller, raymarine.Controller,
// garmin.Controller).
type ControllerOps interface {
	Poll(p ioprovider.Provider) []Event
	SetControl(p ioprovider.Provider, id string, value float64, mode control.Mode) error
	Shutdown(p ioprovider.Provider)
	State() State
	SetMetrics(r *metrics.Registry)
}
