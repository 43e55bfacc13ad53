package monitor

import (
	"testing"
	"time"

	frccan "github.com/frclab/gofrccan"
	"github.com/frclab/gofrccan/pkg/annotate"
	"github.com/stretchr/testify/assert"
)

// In-memory bus used to push frames through a monitor
type stubBus struct {
	listener frccan.FrameListener
	sent     []frccan.Frame
}

func (bus *stubBus) Connect(...any) error { return nil }
func (bus *stubBus) Disconnect() error    { return nil }
func (bus *stubBus) Send(frame frccan.Frame) error {
	bus.sent = append(bus.sent, frame)
	return nil
}
func (bus *stubBus) Subscribe(callback frccan.FrameListener) error {
	bus.listener = callback
	return nil
}

func setupMonitor(t *testing.T) (*Monitor, *stubBus, *[]annotate.AnnotatedFrame) {
	bus := &stubBus{}
	mon := NewMonitor(bus, nil)
	mon.now = func() time.Time { return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC) }
	received := &[]annotate.AnnotatedFrame{}
	mon.AddHandler(AnnotationHandlerFunc(func(frame annotate.AnnotatedFrame) {
		*received = append(*received, frame)
	}))
	err := mon.Connect()
	assert.Nil(t, err)
	if bus.listener == nil {
		t.Fatal("monitor did not subscribe to the bus")
	}
	return mon, bus, received
}

func TestMonitorAnnotatesTraffic(t *testing.T) {
	_, bus, received := setupMonitor(t)

	frame := frccan.NewFrame(frccan.CanEffFlag|0x02030005, 0, 3)
	frame.Data = [8]byte{0x01, 0x02, 0x03}
	bus.listener.Handle(frame)

	if len(*received) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(*received))
	}
	annotated := (*received)[0]
	assert.Empty(t, annotated.Anomalies)
	assert.Equal(t, uint32(0x02030005), annotated.Raw)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, annotated.Data)
	if annotated.Identifier == nil {
		t.Fatal("expected decoded identifier")
	}
	assert.Equal(t, uint8(2), annotated.Identifier.DeviceType)
}

func TestMonitorOneAnnotationPerFrame(t *testing.T) {
	_, bus, received := setupMonitor(t)

	for i := 0; i < 5; i++ {
		bus.listener.Handle(frccan.NewFrame(frccan.CanEffFlag|uint32(0x02030000+i), 0, 0))
	}
	assert.Equal(t, 5, len(*received))
	for i, annotated := range *received {
		assert.Equal(t, uint8(i), annotated.Identifier.DeviceNumber)
	}
}

func TestMonitorStandardFrame(t *testing.T) {
	_, bus, received := setupMonitor(t)

	// 11-bit frame, out of protocol : annotated with an anomaly
	bus.listener.Handle(frccan.NewFrame(0x123, 0, 0))

	if len(*received) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(*received))
	}
	annotated := (*received)[0]
	assert.Nil(t, annotated.Identifier)
	assert.Equal(t, annotate.AnomalyInvalidFrameFormat, annotated.Anomalies[0].Kind)
}

func TestMonitorSkipsErrorFrames(t *testing.T) {
	_, bus, received := setupMonitor(t)

	bus.listener.Handle(frccan.NewFrame(frccan.CanErrFlag|0x20, 0, 0))
	assert.Empty(t, *received)
}

func TestMonitorRemoteFrame(t *testing.T) {
	_, bus, received := setupMonitor(t)

	bus.listener.Handle(frccan.NewFrame(frccan.CanEffFlag|frccan.CanRtrFlag|0x02030005, 0, 8))
	if len(*received) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(*received))
	}
	assert.Empty(t, (*received)[0].Anomalies)
	assert.Empty(t, (*received)[0].Data)
}

func TestMonitorConnectWithoutBus(t *testing.T) {
	mon := NewMonitor(nil, nil)
	err := mon.Connect()
	assert.NotNil(t, err)
}
