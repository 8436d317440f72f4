// Package raymarine implements the Raymarine controller (C7): a UDP-only
// controller following the same Listening -> Connected shape as Navico
// (spec §4.7), speaking Raymarine's 5-byte command/report frame.
package raymarine

import (
	"github.com/marinecore/radarcore/internal/control"
	"github.com/marinecore/radarcore/internal/controller"
	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/logging"
	"github.com/marinecore/radarcore/internal/metrics"
	"github.com/marinecore/radarcore/internal/protocol"
	protoray "github.com/marinecore/radarcore/internal/protocol/raymarine"
)

var log = logging.Component("controller:raymarine")

type pendingCommand struct {
	id    string
	value float64
	mode  control.Mode
}

// Controller owns one Raymarine radar's report/command UDP sockets.
type Controller struct {
	reportAddr  ioprovider.Addr
	commandAddr ioprovider.Addr
	store       *control.Store

	handle    ioprovider.UDPHandle
	listening bool
	pending   []pendingCommand
	metrics   *metrics.Registry
}

// New builds a Controller listening for reports at reportAddr and
// sending commands to commandAddr.
func New(reportAddr, commandAddr ioprovider.Addr, store *control.Store) *Controller {
	return &Controller{reportAddr: reportAddr, commandAddr: commandAddr, store: store}
}

// SetMetrics wires a diagnostics registry into the controller; malformed
// report packets are counted against it. Left nil in tests, where the
// counter increments are skipped.
func (c *Controller) SetMetrics(r *metrics.Registry) {
	c.metrics = r
}

func (c *Controller) State() controller.State {
	if c.handle == 0 {
		return controller.StateDisconnected
	}
	if c.listening {
		return controller.StateConnected
	}
	return controller.StateConnecting
}

func (c *Controller) SetControl(p ioprovider.Provider, id string, value float64, mode control.Mode) error {
	if err := c.store.Set(id, value, mode); err != nil {
		return err
	}
	c.pending = append(c.pending, pendingCommand{id: id, value: value, mode: mode})
	return nil
}

func (c *Controller) Shutdown(p ioprovider.Provider) {
	if c.handle != 0 {
		p.UDPClose(c.handle)
		c.handle = 0
	}
	c.listening = false
}

func (c *Controller) Poll(p ioprovider.Provider) []controller.Event {
	var events []controller.Event
	if c.handle == 0 {
		h, err := p.UDPCreate()
		if err != nil {
			log("udp create failed: %v", err)
			return nil
		}
		if err := p.UDPBind(h, c.reportAddr.Port); err != nil {
			log("bind failed: %v", err)
			p.UDPClose(h)
			return nil
		}
		c.handle = h
	}

	buf := make([]byte, 2048)
	sawReport := false
	for {
		n, _, ok, err := p.UDPRecvFrom(c.handle, buf)
		if err != nil {
			log("recv error: %v", err)
			break
		}
		if !ok {
			break
		}
		report, perr := protoray.ParseReport(buf[:n])
		if perr != nil {
			if c.metrics != nil {
				c.metrics.BrokenPackets.WithLabelValues("raymarine", "report").Inc()
			}
			continue
		}
		c.applyReport(report)
		sawReport = true
	}

	if sawReport && !c.listening {
		c.listening = true
		events = append(events, controller.Event{Kind: controller.EventConnected})
	}

	c.dispatchPending(p)
	return events
}

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
		wireArg := controller.EncodeControlValue(def, cmd.value)
		out, err := protoray.FormatSet(cmd.id, wireArg)
		if err != nil {
			log("format set %s: %v", cmd.id, err)
			continue
		}
		if err := p.UDPSendTo(c.handle, out, c.commandAddr); err != nil {
			log("send set %s failed: %v", cmd.id, err)
		}
	}
	c.pending = c.pending[:0]
}
