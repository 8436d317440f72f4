// Package locator implements the multi-brand beacon listener (C6): it
// drives one or more ioprovider UDP sockets listening on each brand's
// discovery address, parses beacons through the matching codec, and
// surfaces a stable, deduplicated set of radars to the caller by polling.
package locator

import (
	"fmt"

	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/logging"
	"github.com/marinecore/radarcore/internal/metrics"
	"github.com/marinecore/radarcore/internal/models"
	"github.com/marinecore/radarcore/internal/protocol"
	"github.com/marinecore/radarcore/internal/protocol/furuno"
	"github.com/marinecore/radarcore/internal/protocol/garmin"
	"github.com/marinecore/radarcore/internal/protocol/navico"
	"github.com/marinecore/radarcore/internal/protocol/raymarine"
)

var log = logging.Component("locator")

// Brand identifies which codec produced a Discovery.
type Brand int

const (
	BrandFuruno Brand = iota
	BrandNavico
	BrandRaymarine
	BrandGarmin
)

func (b Brand) String() string {
	switch b {
	case BrandFuruno:
		return "furuno"
	case BrandNavico:
		return "navico"
	case BrandRaymarine:
		return "raymarine"
	case BrandGarmin:
		return "garmin"
	default:
		return "unknown"
	}
}

// toModelsBrand maps a locator Brand onto the models package's own Brand
// enum, which the model database is keyed by.
func (b Brand) toModelsBrand() models.Brand {
	switch b {
	case BrandFuruno:
		return models.Furuno
	case BrandNavico:
		return models.Navico
	case BrandRaymarine:
		return models.Raymarine
	case BrandGarmin:
		return models.Garmin
	default:
		return models.Furuno
	}
}

// EventKind distinguishes a first sighting from a repeat beacon carrying
// updated connection details.
type EventKind int

const (
	Discovered EventKind = iota
	Updated
)

// Event reports one locator observation. The locator guarantees a
// Discovered event for a given key precedes any Updated event for it.
type Event struct {
	Kind      EventKind
	Key       string // stable "{brand}-{name}" identity
	Brand     Brand
	Discovery protocol.Discovery
}

type entry struct {
	brand     Brand
	discovery protocol.Discovery
}

// Locator owns one UDP listener socket per brand beacon address and
// tracks the set of radars seen so far.
type Locator struct {
	provider ioprovider.Provider
	sockets  []socket
	seen     map[string]entry
	metrics  *metrics.Registry
}

// SetMetrics wires a diagnostics registry into the locator; broken beacon
// parses and beacons for a model absent from the database are counted
// against it. Never called in tests, where metrics stays nil and the
// counter increments are skipped.
func (l *Locator) SetMetrics(r *metrics.Registry) {
	l.metrics = r
}

type socket struct {
	brand  Brand
	handle ioprovider.UDPHandle
	group  ioprovider.Addr
}

// beaconTargets lists the group address, port, and brand each listening
// socket binds to. Furuno and Garmin beacons are broadcast rather than
// multicast, so their "group" addresses are really just a bind port with
// broadcast reception enabled.
var beaconTargets = []struct {
	brand Brand
	group ioprovider.Addr
}{
	{BrandNavico, navico.BeaconAddrBR24},
	{BrandNavico, navico.BeaconAddrGen3},
	{BrandNavico, navico.BeaconAddrHALO},
	{BrandFuruno, ioprovider.Addr{Port: 10010}},
	{BrandGarmin, ioprovider.Addr{Port: 50100}},
	{BrandRaymarine, ioprovider.Addr{Port: 5800}},
}

// New opens one socket per beacon target. Failure to bind any single
// target is logged and skipped rather than failing the whole locator —
// a host may lack multicast support on some interfaces.
func New(p ioprovider.Provider) (*Locator, error) {
	l := &Locator{provider: p, seen: make(map[string]entry)}
	for _, t := range beaconTargets {
		h, err := p.UDPCreate()
		if err != nil {
			return nil, fmt.Errorf("locator: UDPCreate for %s: %w", t.brand, err)
		}
		if err := p.UDPSetBroadcast(h, true); err != nil {
			log("UDPSetBroadcast failed for %s: %v", t.brand, err)
		}
		if err := p.UDPBind(h, t.group.Port); err != nil {
			log("UDPBind failed for %s on port %d: %v", t.brand, t.group.Port, err)
			p.UDPClose(h)
			continue
		}
		if t.group.IP != ([4]byte{}) {
			if err := p.UDPJoinMulticast(h, t.group, ioprovider.Addr{}); err != nil {
				log("UDPJoinMulticast failed for %s: %v", t.brand, err)
			}
		}
		l.sockets = append(l.sockets, socket{brand: t.brand, handle: h, group: t.group})
	}
	if len(l.sockets) == 0 {
		return nil, fmt.Errorf("locator: no beacon sockets could be opened")
	}
	return l, nil
}

// Close releases every listening socket.
func (l *Locator) Close() {
	for _, s := range l.sockets {
		l.provider.UDPClose(s.handle)
	}
}

// Poll drains all pending beacon datagrams once and returns the events
// produced. Call it on a fixed schedule from the host's poll loop.
func (l *Locator) Poll() []Event {
	var events []Event
	buf := make([]byte, 2048)
	for _, s := range l.sockets {
		for {
			n, src, ok, err := l.provider.UDPRecvFrom(s.handle, buf)
			if err != nil {
				log("recv error on %s socket: %v", s.brand, err)
				break
			}
			if !ok {
				break
			}
			ev, matched := l.handleBeacon(s.brand, buf[:n], src)
			if matched {
				events = append(events, ev)
			}
		}
	}
	return events
}

func (l *Locator) handleBeacon(brand Brand, b []byte, src ioprovider.Addr) (Event, bool) {
	var d protocol.Discovery
	var err error
	switch brand {
	case BrandFuruno:
		if !furuno.IsBeaconResponse(b) {
			return Event{}, false
		}
		d, err = furuno.ParseBeaconResponse(b, src)
	case BrandNavico:
		if !navico.IsBeaconResponse(b) {
			return Event{}, false
		}
		d, err = navico.ParseBeaconResponse(b, src)
	case BrandRaymarine:
		if !raymarine.IsBeaconResponse(b) {
			return Event{}, false
		}
		d, err = raymarine.ParseBeaconResponse(b, src)
	case BrandGarmin:
		if !garmin.IsBeaconResponse(b) {
			return Event{}, false
		}
		d, err = garmin.ParseBeaconResponse(b, src)
	default:
		return Event{}, false
	}
	if err != nil {
		log("%s beacon parse error: %v", brand, err)
		if l.metrics != nil {
			l.metrics.BrokenPackets.WithLabelValues(brand.String(), "beacon").Inc()
		}
		return Event{}, false
	}
	unknownModel := false
	if d.Model != "" {
		if _, found := models.GetModel(brand.toModelsBrand(), d.Model); !found {
			unknownModel = true
			if l.metrics != nil {
				l.metrics.UnknownModel.WithLabelValues(brand.String()).Inc()
			}
		}
	}

	d.LastSeenMs = l.provider.NowMs()

	name := d.Name
	if name == "" {
		name = src.String()
	}
	key := fmt.Sprintf("%s-%s", brand, name)

	prev, existed := l.seen[key]
	if unknownModel && (!existed || prev.discovery.Model != d.Model) {
		log("%s radar %s reports unknown model %q", brand, name, d.Model)
	}
	l.seen[key] = entry{brand: brand, discovery: d}

	if !existed {
		return Event{Kind: Discovered, Key: key, Brand: brand, Discovery: d}, true
	}
	if sameDiscoveryFields(prev.discovery, d) {
		// Refreshed last_seen_ms but nothing a subscriber needs to react
		// to — only an actual field change (new model/serial/etc) warrants
		// an Updated event, per the locator's discovery contract.
		return Event{}, false
	}
	return Event{Kind: Updated, Key: key, Brand: brand, Discovery: d}, true
}

// sameDiscoveryFields compares two Discovery values ignoring LastSeenMs,
// which is expected to change on every beacon regardless of whether any
// other field did.
func sameDiscoveryFields(a, b protocol.Discovery) bool {
	a.LastSeenMs, b.LastSeenMs = 0, 0
	return a == b
}

// Known returns a snapshot of every radar discovered so far, keyed by
// its stable locator key.
func (l *Locator) Known() map[string]protocol.Discovery {
	out := make(map[string]protocol.Discovery, len(l.seen))
	for k, e := range l.seen {
		out[k] = e.discovery
	}
	return out
}
