// Package furuno implements the Furuno controller (C7): a TCP-based
// connection state machine that dials the control port found at
// discovery, logs in with a query sequence, and from then on parses
// inbound report lines into the control store while dispatching outbound
// Set calls as "$S<hex_id>,<arg>\r\n" commands.
package furuno

import (
	"bytes"
	"time"

	"github.com/marinecore/radarcore/internal/capability"
	"github.com/marinecore/radarcore/internal/control"
	"github.com/marinecore/radarcore/internal/controller"
	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/logging"
	"github.com/marinecore/radarcore/internal/metrics"
	"github.com/marinecore/radarcore/internal/protocol"
	protofuruno "github.com/marinecore/radarcore/internal/protocol/furuno"
)

var log = logging.Component("controller:furuno")

// fsmState is Furuno's fine-grained connection lifecycle, richer than the
// shared controller.State the rest of the core observes (spec §4.7).
type fsmState int

const (
	fsmDisconnected fsmState = iota
	fsmConnecting
	fsmLoggingIn
	fsmRequestingInfo
	fsmRunning
)

const (
	connectTimeout   = 5 * time.Second
	loginReplyTimeout = 3 * time.Second
)

type pendingCommand struct {
	id    string
	value float64
	mode  control.Mode
}

// Controller owns one Furuno radar's TCP control connection.
type Controller struct {
	addr  ioprovider.Addr
	store *control.Store

	state       fsmState
	handle      ioprovider.TCPHandle
	recvBuf     bytes.Buffer
	stateEnteredMs uint64
	modelKnown  bool

	reconnect *controller.Reconnector
	nextConnectMs uint64

	pending []pendingCommand
	metrics *metrics.Registry
}

// New builds a Controller for the radar at addr, whose control store is
// store (already built from the discovery's manifest).
func New(addr ioprovider.Addr, store *control.Store) *Controller {
	return &Controller{addr: addr, store: store, reconnect: controller.NewReconnector()}
}

// SetMetrics wires a diagnostics registry into the controller; malformed
// report lines are counted against it. Left nil in tests, where the
// counter increments are skipped.
func (c *Controller) SetMetrics(r *metrics.Registry) {
	c.metrics = r
}

// State reports the controller's coarse connection state for the shared
// ControllerOps surface.
func (c *Controller) State() controller.State {
	switch c.state {
	case fsmDisconnected:
		return controller.StateDisconnected
	case fsmRunning:
		return controller.StateConnected
	default:
		return controller.StateConnecting
	}
}

// SetControl enqueues a wire command for id, dispatched on the next Poll.
func (c *Controller) SetControl(p ioprovider.Provider, id string, value float64, mode control.Mode) error {
	if err := c.store.Set(id, value, mode); err != nil {
		return err
	}
	c.pending = append(c.pending, pendingCommand{id: id, value: value, mode: mode})
	return nil
}

// Shutdown releases the TCP handle and transitions to Disconnected.
func (c *Controller) Shutdown(p ioprovider.Provider) {
	if c.handle != 0 {
		p.TCPClose(c.handle)
		c.handle = 0
	}
	c.state = fsmDisconnected
}

// Poll drives the connection state machine one step and returns any
// lifecycle events produced.
func (c *Controller) Poll(p ioprovider.Provider) []controller.Event {
	now := p.NowMs()
	var events []controller.Event

	switch c.state {
	case fsmDisconnected:
		if now < c.nextConnectMs {
			return nil
		}
		h, err := p.TCPConnect(c.addr)
		if err != nil {
			log("connect failed: %v", err)
			c.nextConnectMs = now + uint64(c.reconnect.Next().Milliseconds())
			return nil
		}
		c.handle = h
		c.state = fsmConnecting
		c.stateEnteredMs = now

	case fsmConnecting:
		// A TCP connect via the Provider is synchronous from the core's
		// point of view (the handle either exists or TCPConnect errored),
		// so Connecting -> LoggingIn happens on the next poll tick.
		c.state = fsmLoggingIn
		c.stateEnteredMs = now
		c.sendQuery(p, "power")

	case fsmLoggingIn:
		if now-c.stateEnteredMs > uint64(loginReplyTimeout.Milliseconds()) {
			log("login reply timeout, reconnecting")
			c.disconnect(p)
			return nil
		}
		if c.drainReports(p) {
			c.state = fsmRequestingInfo
			c.stateEnteredMs = now
			c.sendQuery(p, "firmwareVersion")
		}

	case fsmRequestingInfo:
		if now-c.stateEnteredMs > uint64(loginReplyTimeout.Milliseconds()) {
			c.state = fsmRunning
			c.reconnect.Reset()
			events = append(events, controller.Event{Kind: controller.EventConnected})
		}
		c.drainReports(p)

	case fsmRunning:
		if !c.drainReportsChecked(p) {
			c.disconnect(p)
			return nil
		}
		c.dispatchPending(p)
	}
	return events
}

func (c *Controller) sendQuery(p ioprovider.Provider, id string) {
	cmd, err := protofuruno.FormatQuery(id)
	if err != nil {
		return
	}
	if err := p.TCPSend(c.handle, cmd); err != nil {
		log("send query %s failed: %v", id, err)
	}
}

func (c *Controller) disconnect(p ioprovider.Provider) {
	p.TCPClose(c.handle)
	c.handle = 0
	c.state = fsmDisconnected
}

// drainReports reads whatever is available and applies any parsed report
// lines to the store, returning true once at least one line was parsed
// (used during login to detect "radar is talking").
func (c *Controller) drainReports(p ioprovider.Provider) bool {
	parsed := false
	buf := make([]byte, 4096)
	for {
		n, ok, err := p.TCPRecv(c.handle, buf)
		if err != nil || !ok {
			break
		}
		c.recvBuf.Write(buf[:n])
	}
	for {
		line, err := c.recvBuf.ReadBytes('\n')
		if err != nil {
			// Incomplete line: push it back for the next read.
			c.recvBuf.Reset()
			c.recvBuf.Write(line)
			break
		}
		report, perr := protofuruno.ParseReport(line)
		if perr != nil {
			if c.metrics != nil {
				c.metrics.BrokenPackets.WithLabelValues("furuno", "report").Inc()
			}
			continue
		}
		c.applyReport(report)
		parsed = true
	}
	return parsed
}

// drainReportsChecked is drainReports but distinguishes a hard recv error
// (io failure -> Disconnected per spec §4.7) from an idle poll.
func (c *Controller) drainReportsChecked(p ioprovider.Provider) bool {
	buf := make([]byte, 4096)
	for {
		n, ok, err := p.TCPRecv(c.handle, buf)
		if err != nil {
			return false
		}
		if !ok {
			break
		}
		c.recvBuf.Write(buf[:n])
	}
	for {
		line, rerr := c.recvBuf.ReadBytes('\n')
		if rerr != nil {
			c.recvBuf.Reset()
			c.recvBuf.Write(line)
			break
		}
		report, perr := protofuruno.ParseReport(line)
		if perr != nil {
			if c.metrics != nil {
				c.metrics.BrokenPackets.WithLabelValues("furuno", "report").Inc()
			}
			continue
		}
		c.applyReport(report)
	}
	return true
}

// applyReport writes a parsed report into the control store with
// SetInternal, bypassing the read-only/constraint checks that guard
// external Set calls (spec invariant V4: report -> state is always
// allowed).
func (c *Controller) applyReport(r protocol.Report) {
	switch r.Kind {
	case protocol.ReportPower:
		v := 0.0
		if r.PowerOn {
			v = 2
		}
		c.store.SetInternal("power", v, "")
	case protocol.ReportRange:
		c.store.SetInternal("range", float64(r.RangeM), "")
	case protocol.ReportGain:
		mode := control.ModeOff
		if r.Gain.Auto {
			mode = control.ModeOn
		}
		c.store.SetInternal("gain", r.Gain.Value, mode)
	case protocol.ReportSea:
		mode := control.ModeOff
		if r.Sea.Auto {
			mode = control.ModeOn
		}
		c.store.SetInternal("sea", r.Sea.Value, mode)
	case protocol.ReportRain:
		c.store.SetInternal("rain", r.Rain, "")
	case protocol.ReportOperatingHours:
		c.store.SetInternal("operatingHours", r.Hours, "")
	case protocol.ReportTransmitHours:
		c.store.SetInternal("transmitHours", r.Hours, "")
	case protocol.ReportModel:
		c.modelKnown = true
	case protocol.ReportExtendedControl:
		c.store.SetInternal(r.ExtendedControlID, r.ExtendedValue, "")
	}
}

func (c *Controller) dispatchPending(p ioprovider.Provider) {
	for _, cmd := range c.pending {
		def, ok := c.store.Definition(cmd.id)
		if !ok {
			continue
		}
		// Installation values are kept in the store only; they are not
		// sent to the radar.
		if def.Category == capability.CategoryInstallation {
			continue
		}
		wireArg := controller.EncodeControlValue(def, cmd.value)
		out, err := protofuruno.FormatSet(cmd.id, wireArg)
		if err != nil {
			log("format set %s: %v", cmd.id, err)
			continue
		}
		if err := p.TCPSend(c.handle, out); err != nil {
			log("send set %s failed: %v", cmd.id, err)
		}
	}
	c.pending = c.pending[:0]
}
