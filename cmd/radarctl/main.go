// Command radarctl is a thin host for the radar integration core: it
// supplies a real net-backed ioprovider.Provider, drives the locator and
// per-brand controllers against it, and prints what it sees. It is
// explicitly not the HTTP/WebSocket/GUI server a production deployment
// would put in front of the core — see cmd/radar/radar.go in the lineage
// this is descended from for that shape.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/marinecore/radarcore/internal/arpa/cpa"
	"github.com/marinecore/radarcore/internal/arpa/detector"
	"github.com/marinecore/radarcore/internal/arpa/history"
	"github.com/marinecore/radarcore/internal/arpa/track"
	"github.com/marinecore/radarcore/internal/arpa/trails"
	"github.com/marinecore/radarcore/internal/capability"
	"github.com/marinecore/radarcore/internal/config"
	"github.com/marinecore/radarcore/internal/control"
	"github.com/marinecore/radarcore/internal/controller"
	ctlfuruno "github.com/marinecore/radarcore/internal/controller/furuno"
	ctlgarmin "github.com/marinecore/radarcore/internal/controller/garmin"
	ctlnavico "github.com/marinecore/radarcore/internal/controller/navico"
	ctlraymarine "github.com/marinecore/radarcore/internal/controller/raymarine"
	"github.com/marinecore/radarcore/internal/geo"
	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/locator"
	"github.com/marinecore/radarcore/internal/metrics"
	"github.com/marinecore/radarcore/internal/models"
	"github.com/marinecore/radarcore/internal/protocol"
	protonavico "github.com/marinecore/radarcore/internal/protocol/navico"
	"github.com/marinecore/radarcore/internal/spoke"
)

func main() {
	app := &cli.App{
		Name:  "radarctl",
		Usage: "discover, watch, and drive marine radars through the radarcore library",
		Commands: []*cli.Command{
			discoverCommand(),
			watchCommand(),
			setCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func discoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "listen for beacons from all four brands and print what answers",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout", Value: 5 * time.Second, Usage: "how long to listen"},
		},
		Action: func(cCtx *cli.Context) error {
			p := ioprovider.NewNetProvider()
			loc, err := locator.New(p)
			if err != nil {
				return fmt.Errorf("radarctl: %w", err)
			}
			defer loc.Close()
			loc.SetMetrics(metrics.New())

			deadline := time.Now().Add(cCtx.Duration("timeout"))
			for time.Now().Before(deadline) {
				for _, ev := range loc.Poll() {
					kind := "discovered"
					if ev.Kind == locator.Updated {
						kind = "updated"
					}
					fmt.Printf("%s %-10s %-20s control=%s data=%s spokes=%d maxlen=%d\n",
						kind, ev.Brand, ev.Key,
						ev.Discovery.ControlAddr, ev.Discovery.DataAddr,
						ev.Discovery.SpokesPerRevolution, ev.Discovery.MaxSpokeLength)
				}
				time.Sleep(200 * time.Millisecond)
			}
			return nil
		},
	}
}

func brandFlag() cli.Flag {
	return &cli.StringFlag{Name: "brand", Required: true, Usage: "furuno|navico|raymarine|garmin"}
}

func parseAddr(host string, port int) (ioprovider.Addr, error) {
	ip := net.ParseIP(host)
	ip4 := ip.To4()
	if ip4 == nil {
		return ioprovider.Addr{}, fmt.Errorf("radarctl: %q is not a valid IPv4 address", host)
	}
	var a ioprovider.Addr
	copy(a.IP[:], ip4)
	a.Port = uint16(port)
	return a, nil
}

// buildController constructs the brand-specific ControllerOps against a
// fresh control store built from the unknown-model manifest. The store
// keeps that schema and range table for the whole session: no controller
// emits a ModelDetected event, and nothing here calls SetValidRanges.
func buildController(brand models.Brand, controlAddr, commandAddr ioprovider.Addr, reg *metrics.Registry) (controller.ControllerOps, *control.Store) {
	manifest := capability.BuildFromModel(models.UnknownModel, brand.String(), []capability.SupportedFeature{capability.FeatureArpa, capability.FeatureTrails})
	manifest.Make = brand.String()
	store := control.NewStore(manifest)

	var ctl controller.ControllerOps
	switch brand {
	case models.Furuno:
		ctl = ctlfuruno.New(controlAddr, store)
	case models.Navico:
		ctl = ctlnavico.New(controlAddr, commandAddr, store)
	case models.Raymarine:
		ctl = ctlraymarine.New(controlAddr, commandAddr, store)
	case models.Garmin:
		ctl = ctlgarmin.New(controlAddr, commandAddr, store)
	default:
		return nil, nil
	}
	ctl.SetMetrics(reg)
	return ctl, store
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "connect to one radar, print control changes, and (Navico only) run the ARPA pipeline on its spoke feed",
		Flags: []cli.Flag{
			brandFlag(),
			&cli.StringFlag{Name: "host", Required: true, Usage: "radar IPv4 address"},
			&cli.IntFlag{Name: "control-port", Value: 10010, Usage: "control/report port (TCP for Furuno, UDP report port otherwise)"},
			&cli.IntFlag{Name: "command-port", Value: 0, Usage: "command port for UDP-only brands, if different from control-port"},
			&cli.IntFlag{Name: "data-port", Value: 0, Usage: "spoke data port (Navico only — enables the ARPA pipeline)"},
		},
		Action: runWatch,
	}
}

func runWatch(cCtx *cli.Context) error {
	brand, err := models.ParseBrand(cCtx.String("brand"))
	if err != nil {
		return err
	}
	controlAddr, err := parseAddr(cCtx.String("host"), cCtx.Int("control-port"))
	if err != nil {
		return err
	}
	commandPort := cCtx.Int("command-port")
	if commandPort == 0 {
		commandPort = cCtx.Int("control-port")
	}
	commandAddr, err := parseAddr(cCtx.String("host"), commandPort)
	if err != nil {
		return err
	}

	p := ioprovider.NewNetProvider()
	reg := metrics.New()
	ctl, store := buildController(brand, controlAddr, commandAddr, reg)
	if ctl == nil {
		return fmt.Errorf("radarctl: unsupported brand %q", brand)
	}

	sub := store.Subscribe()
	defer store.Unsubscribe(sub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pipeline *arpaPipeline
	if brand == models.Navico && cCtx.Int("data-port") != 0 {
		dataAddr, err := parseAddr(cCtx.String("host"), cCtx.Int("data-port"))
		if err != nil {
			return err
		}
		pipeline, err = newArpaPipeline(p, dataAddr, reg)
		if err != nil {
			return err
		}
		defer pipeline.close(p)
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	lastState := controller.StateDisconnected

	for {
		select {
		case <-ctx.Done():
			ctl.Shutdown(p)
			return nil
		case <-ticker.C:
			for _, ev := range ctl.Poll(p) {
				fmt.Printf("event kind=%d model=%q firmware=%q hours=%.1f\n", ev.Kind, ev.Model, ev.FirmwareVersion, ev.Hours)
			}
			if s := ctl.State(); s != lastState {
				fmt.Printf("state -> %s\n", s)
				lastState = s
			}
		drainUpdates:
			for {
				select {
				case u, ok := <-sub.C():
					if !ok {
						break drainUpdates
					}
					if u.Kind == control.UpdateControlValue {
						fmt.Printf("control %-16s value=%-10.2f auto=%s\n", u.Control.ControlID, u.Control.Value, u.Control.Auto)
					}
				default:
					break drainUpdates
				}
			}
			if pipeline != nil {
				pipeline.poll(p)
			}
		}
	}
}

// arpaPipeline wires C8-C15 together against Navico's spoke feed: the
// only brand codec in this tree that exposes a full SpokeFrame decode.
type arpaPipeline struct {
	handle  ioprovider.UDPHandle
	conv    geo.Converter
	proc    *spoke.Processor
	hist    *history.Buffer
	cfg     track.Config
	cor     *detector.Correlator
	trails  *trails.Store
	tgts    map[string]*track.Target
	ownLat  float64
	ownLon  float64
	metrics *metrics.Registry

	haveLastAngle bool
	lastAngle     int32
}

func newArpaPipeline(p ioprovider.Provider, dataAddr ioprovider.Addr, reg *metrics.Registry) (*arpaPipeline, error) {
	h, err := p.UDPCreate()
	if err != nil {
		return nil, fmt.Errorf("radarctl: arpa data socket: %w", err)
	}
	if err := p.UDPBind(h, dataAddr.Port); err != nil {
		p.UDPClose(h)
		return nil, fmt.Errorf("radarctl: arpa data bind: %w", err)
	}

	settings := &config.Settings{}
	spokes := int32(2048)
	conv := geo.NewConverter(spokes, 1.0)

	return &arpaPipeline{
		handle:  h,
		conv:    conv,
		proc:    spoke.NewProcessor(protocol.DefaultLegend(), protocol.DopplerBoth, 512),
		hist:    history.New(spokes, 512),
		metrics: reg,
		cfg: track.Config{
			SearchRadiusPixels:  int32(settings.GetSearchRadiusPixels()),
			MinContourLength:    settings.GetMinContourLength(),
			MaxContourLength:    settings.GetMaxContourLength(),
			MaxLostCount:        settings.GetMaxLostCount(),
			MaxDetectionSpeedKn: settings.GetMaxDetectionSpeedKn(),
		},
		cor:    detector.NewCorrelator(3, 3.0, 0.1),
		trails: trails.New(trails.Settings{Enabled: true, MaxPoints: settings.GetTrailMaxPoints(), MinIntervalMs: settings.GetTrailMinIntervalMs(), DurationS: settings.GetTrailDurationS()}),
		tgts:   make(map[string]*track.Target),
	}, nil
}

func (a *arpaPipeline) close(p ioprovider.Provider) {
	p.UDPClose(a.handle)
}

const arpaDetectThreshold = 32

// checkSpokeGap counts a missing_spokes observation whenever angle isn't
// exactly one past the previously ingested spoke, a non-consecutive
// angle sequence indicating one or more spokes were dropped in transit.
func (a *arpaPipeline) checkSpokeGap(angle int32) {
	n := a.hist.SpokesPerRevolution()
	if a.haveLastAngle {
		expected := (a.lastAngle + 1) % n
		if angle != expected && a.metrics != nil {
			a.metrics.MissingSpokes.WithLabelValues("navico").Inc()
		}
	}
	a.lastAngle = angle
	a.haveLastAngle = true
}

func (a *arpaPipeline) poll(p ioprovider.Provider) {
	buf := make([]byte, 16384)
	for {
		n, _, ok, err := p.UDPRecvFrom(a.handle, buf)
		if err != nil || !ok {
			return
		}
		records, err := protonavico.ParseSpokeFrame(buf[:n])
		if err != nil {
			if a.metrics != nil {
				a.metrics.BrokenPackets.WithLabelValues("navico", "spoke").Inc()
			}
			continue
		}
		nowMs := p.NowMs()
		var candidates []detector.Candidate
		for _, rec := range records {
			a.checkSpokeGap(int32(rec.Angle))
			processed := a.proc.ProcessNibbles(rec.Pixels)
			a.hist.UpdateSpoke(int32(rec.Angle), processed, rec.TimeMs, a.ownLat, a.ownLon)
			bearingDeg := float64(rec.Angle) * 360.0 / float64(a.hist.SpokesPerRevolution())
			candidates = append(candidates, detector.ScanSpoke(processed, bearingDeg, arpaDetectThreshold, a.cfg.MinContourLength, 1852.0/512.0)...)
		}

		for _, t := range a.tgts {
			t.Refresh(a.hist, a.conv, a.cfg, nowMs, a.ownLat, a.ownLon, track.PassFirst)
		}
		for id, t := range a.tgts {
			if !t.Eligible(a.cfg.MaxLostCount) {
				delete(a.tgts, id)
				continue
			}
			a.trails.AddPoint(id, trails.Point{TimestampMs: int64(nowMs), BearingDeg: 0, DistanceM: 0, HasGeo: true, Lat: t.Position.GeoLat, Lon: t.Position.GeoLon})
		}

		promoted := a.cor.AddRevolution(candidates)
		for _, c := range promoted {
			angle := c.BearingDeg / 360.0 * float64(a.hist.SpokesPerRevolution())
			r := c.DistanceM / (1852.0 / 512.0)
			t := track.New(a.conv, angle, r, nowMs, a.ownLat, a.ownLon)
			a.tgts[t.ID] = t
			fmt.Printf("arpa acquire id=%s bearing=%.1f dist=%.0fm\n", t.ID, c.BearingDeg, c.DistanceM)
		}

		for id, t := range a.tgts {
			danger := cpa.Compute(t.Position.LocalLatM, t.Position.LocalLonM, t.Kalman.DLatDt(), t.Kalman.DLonDt(), 0, 0)
			alert := cpa.Classify(danger, cpa.Thresholds{CPAThresholdM: 1852, TCPAThresholdS: 1200})
			if alert != cpa.Normal {
				fmt.Printf("arpa alert id=%s status=%s cpa=%.0fm tcpa=%.0fs level=%s\n", id, t.Status, danger.CPAMeters, danger.TCPASeconds, alert)
			}
		}
	}
}

func setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "set one control on a radar and print the store's resolved value once confirmed",
		ArgsUsage: "<control-id> <value>",
		Flags: []cli.Flag{
			brandFlag(),
			&cli.StringFlag{Name: "host", Required: true},
			&cli.IntFlag{Name: "control-port", Value: 10010},
			&cli.IntFlag{Name: "command-port", Value: 0},
			&cli.StringFlag{Name: "mode", Value: "", Usage: "on|off, for controls with an auto mode"},
			&cli.DurationFlag{Name: "timeout", Value: 3 * time.Second},
		},
		Action: runSet,
	}
}

func runSet(cCtx *cli.Context) error {
	if cCtx.NArg() != 2 {
		return fmt.Errorf("radarctl: set requires <control-id> <value>")
	}
	id := cCtx.Args().Get(0)
	value, err := strconv.ParseFloat(cCtx.Args().Get(1), 64)
	if err != nil {
		return fmt.Errorf("radarctl: invalid value %q: %w", cCtx.Args().Get(1), err)
	}

	brand, err := models.ParseBrand(cCtx.String("brand"))
	if err != nil {
		return err
	}
	controlAddr, err := parseAddr(cCtx.String("host"), cCtx.Int("control-port"))
	if err != nil {
		return err
	}
	commandPort := cCtx.Int("command-port")
	if commandPort == 0 {
		commandPort = cCtx.Int("control-port")
	}
	commandAddr, err := parseAddr(cCtx.String("host"), commandPort)
	if err != nil {
		return err
	}

	mode := control.Mode(cCtx.String("mode"))

	p := ioprovider.NewNetProvider()
	ctl, store := buildController(brand, controlAddr, commandAddr, metrics.New())
	if ctl == nil {
		return fmt.Errorf("radarctl: unsupported brand %q", brand)
	}

	deadline := time.Now().Add(cCtx.Duration("timeout"))
	for time.Now().Before(deadline) && ctl.State() != controller.StateConnected {
		ctl.Poll(p)
		time.Sleep(50 * time.Millisecond)
	}

	if err := ctl.SetControl(p, id, value, mode); err != nil {
		return fmt.Errorf("radarctl: set %s: %w", id, err)
	}

	for i := 0; i < 10; i++ {
		ctl.Poll(p)
		time.Sleep(50 * time.Millisecond)
	}

	v, ok := store.Get(id)
	if !ok {
		return fmt.Errorf("radarctl: %s has no resolved value yet", id)
	}
	fmt.Printf("%s = %.2f (auto=%s)\n", id, v.Value, v.Auto)
	ctl.Shutdown(p)
	return nil
}
