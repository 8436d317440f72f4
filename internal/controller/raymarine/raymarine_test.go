package raymarine

import (
	"testing"

	"github.com/marinecore/radarcore/internal/capability"
	"github.com/marinecore/radarcore/internal/control"
	"github.com/marinecore/radarcore/internal/controller"
	"github.com/marinecore/radarcore/internal/ioprovider"
	"github.com/marinecore/radarcore/internal/models"
	protoray "github.com/marinecore/radarcore/internal/protocol/raymarine"
)

type inboxMsg struct {
	data []byte
	src  ioprovider.Addr
}

type fakeProvider struct {
	inbox map[ioprovider.UDPHandle][]inboxMsg
	sent  [][]byte
	nextH ioprovider.UDPHandle
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{inbox: make(map[ioprovider.UDPHandle][]inboxMsg)}
}

func (f *fakeProvider) UDPCreate() (ioprovider.UDPHandle, error) {
	f.nextH++
	return f.nextH, nil
}
func (f *fakeProvider) UDPBind(h ioprovider.UDPHandle, port uint16) error     { return nil }
func (f *fakeProvider) UDPSetBroadcast(h ioprovider.UDPHandle, on bool) error { return nil }
func (f *fakeProvider) UDPJoinMulticast(h ioprovider.UDPHandle, group, iface ioprovider.Addr) error {
	return nil
}
func (f *fakeProvider) UDPSetMulticastInterface(h ioprovider.UDPHandle, iface ioprovider.Addr) error {
	return nil
}
func (f *fakeProvider) UDPSendTo(h ioprovider.UDPHandle, b []byte, dst ioprovider.Addr) error {
	f.sent = append(f.sent, append([]byte(nil), b...))
	return nil
}
func (f *fakeProvider) UDPRecvFrom(h ioprovider.UDPHandle, buf []byte) (int, ioprovider.Addr, bool, error) {
	msgs := f.inbox[h]
	if len(msgs) == 0 {
		return 0, ioprovider.Addr{}, false, nil
	}
	msg := msgs[0]
	f.inbox[h] = msgs[1:]
	n := copy(buf, msg.data)
	return n, msg.src, true, nil
}
func (f *fakeProvider) UDPClose(h ioprovider.UDPHandle) {}

func (f *fakeProvider) TCPConnect(dst ioprovider.Addr) (ioprovider.TCPHandle, error) { return 1, nil }
func (f *fakeProvider) TCPSend(h ioprovider.TCPHandle, b []byte) error               { return nil }
func (f *fakeProvider) TCPRecv(h ioprovider.TCPHandle, buf []byte) (int, bool, error) {
	return 0, false, nil
}
func (f *fakeProvider) TCPClose(h ioprovider.TCPHandle) {}

func (f *fakeProvider) NowMs() uint64    { return 0 }
func (f *fakeProvider) Debug(msg string) {}

func newTestController() (*Controller, *control.Store) {
	manifest := capability.Build(capability.Discovery{Brand: models.Raymarine, Model: "Quantum 2"}, "1", nil)
	store := control.NewStore(manifest)
	c := New(ioprovider.Addr{Port: 10001}, ioprovider.Addr{Port: 10002}, store)
	return c, store
}

func TestRaymarineControllerConnectsOnFirstReport(t *testing.T) {
	c, store := newTestController()
	fp := newFakeProvider()

	if events := c.Poll(fp); len(events) != 0 {
		t.Fatalf("expected no events before any report arrives, got %+v", events)
	}
	if c.State() != controller.StateConnecting {
		t.Errorf("expected StateConnecting with the socket open but no report yet, got %v", c.State())
	}

	rangeReport, err := protoray.FormatSet("range", 2000)
	if err != nil {
		t.Fatalf("FormatSet: %v", err)
	}
	fp.inbox[c.handle] = []inboxMsg{{data: rangeReport}}

	events := c.Poll(fp)
	if len(events) != 1 || events[0].Kind != controller.EventConnected {
		t.Fatalf("expected one EventConnected, got %+v", events)
	}
	v, ok := store.Get("range")
	if !ok || v.Value != 2000 {
		t.Errorf("expected the parsed range report applied to the store, got %+v ok=%v", v, ok)
	}
}

func TestRaymarineControllerDispatchesPendingCommand(t *testing.T) {
	c, _ := newTestController()
	fp := newFakeProvider()
	c.Poll(fp)

	if err := c.SetControl(fp, "range", 1000, ""); err != nil {
		t.Fatalf("SetControl: %v", err)
	}
	c.Poll(fp)
	if len(fp.sent) != 1 {
		t.Fatalf("expected exactly one command datagram sent, got %d", len(fp.sent))
	}
}

func TestRaymarineControllerShutdownClosesHandle(t *testing.T) {
	c, _ := newTestController()
	fp := newFakeProvider()
	c.Poll(fp)
	c.Shutdown(fp)
	if c.State() != controller.StateDisconnected {
		t.Errorf("expected StateDisconnected after Shutdown, got %v", c.State())
	}
}
