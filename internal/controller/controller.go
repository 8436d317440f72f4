// Package controller implements the per-brand connection state machines
// (C7): each brand controller owns a TCP or UDP control channel to one
// radar, reconnects with backoff on failure, and feeds parsed reports
// into a control.Store via SetInternal so that external Set calls and
// radar-originated reports flow through the same validation path.
package controller

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/marinecore/radarcore/internal/logging"
)

var log = logging.Component("controller")

// State is a controller's connection lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// EventKind tags which field of Event is populated.
type EventKind int

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventModelDetected
	EventOperatingHoursUpdated
	EventTransmitHoursUpdated
)

// Event mirrors the brand-agnostic lifecycle notifications a controller
// emits for a host (UI, logging) to observe, independent of report
// plumbing into the control store.
type Event struct {
	Kind            EventKind
	Model           string
	FirmwareVersion string
	Hours           float64
}

// Reconnector wraps cenkalti/backoff's exponential policy with the
// jitter and max-interval bounds this core uses for every brand: start
// at 1s, cap at 16s, no overall deadline (a radar may be powered off
// for an arbitrary stretch and should still reconnect when it returns).
type Reconnector struct {
	b backoff.BackOff
}

// NewReconnector builds a fresh exponential-backoff policy.
func NewReconnector() *Reconnector {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 1 * time.Second
	eb.MaxInterval = 16 * time.Second
	eb.MaxElapsedTime = 0 // never give up
	return &Reconnector{b: eb}
}

// Next returns how long to wait before the next connection attempt and
// advances the policy's internal state.
func (r *Reconnector) Next() time.Duration {
	return r.b.NextBackOff()
}

// Reset returns the policy to its initial interval, called after a
// successful connection.
func (r *Reconnector) Reset() {
	r.b.Reset()
}
