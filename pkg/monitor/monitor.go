// Package monitor connects an annotator to a live CAN bus.
// Every received frame is timestamped, annotated and handed to the
// registered annotation handlers in subscription order.
package monitor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	frccan "github.com/frclab/gofrccan"
	"github.com/frclab/gofrccan/pkg/annotate"
	can "github.com/frclab/gofrccan/pkg/can"
	"github.com/frclab/gofrccan/pkg/registry"
	log "github.com/sirupsen/logrus"
)

// Interface for receiving annotated frames
type AnnotationHandler interface {
	HandleAnnotation(frame annotate.AnnotatedFrame)
}

// AnnotationHandlerFunc adapts a plain function to AnnotationHandler
type AnnotationHandlerFunc func(frame annotate.AnnotatedFrame)

func (f AnnotationHandlerFunc) HandleAnnotation(frame annotate.AnnotatedFrame) {
	f(frame)
}

// A Monitor is the main object of this package.
// It subscribes to every frame on a bus and annotates the traffic,
// frames are processed one at a time in reception order.
type Monitor struct {
	*frccan.BusManager
	annotator *annotate.Annotator
	mu        sync.Mutex
	handlers  []AnnotationHandler
	now       func() time.Time
}

// NewMonitor creates a monitor over the given bus, which may be nil
// when Connect is given an interface name instead.
// A nil registry set selects the embedded default tables.
func NewMonitor(bus frccan.Bus, set *registry.Set) *Monitor {
	monitor := &Monitor{
		BusManager: frccan.NewBusManager(bus),
		annotator:  annotate.NewAnnotator(set, nil),
		now:        time.Now,
	}
	// Match every id on the bus
	monitor.BusManager.Subscribe(0, 0, monitor)
	return monitor
}

// Connects to CAN bus, this should be called before anything else.
// Custom CAN backend is possible using a custom "Bus" interface.
// Otherwise it expects an interface name, channel and bitrate.
// Currently only socketcan and virtualcan are supported.
func (monitor *Monitor) Connect(args ...any) error {
	if len(args) < 3 && monitor.Bus() == nil {
		return errors.New("either provide custom backend, or provide interface, channel and bitrate")
	}
	var bus frccan.Bus
	var err error
	if monitor.Bus() == nil {
		canInterface, ok := args[0].(string)
		if !ok {
			return fmt.Errorf("expecting string for interface got : %v", args[0])
		}
		channel, ok := args[1].(string)
		if !ok {
			return fmt.Errorf("expecting string for channel got : %v", args[1])
		}
		bitrate, ok := args[2].(int)
		if !ok {
			return fmt.Errorf("expecting int for bitrate got : %v", args[2])
		}
		bus, err = can.NewBus(canInterface, channel, bitrate)
		if err != nil {
			return err
		}
		monitor.SetBus(bus)
	} else {
		bus = monitor.Bus()
	}
	// Connect to CAN bus and subscribe to CAN frame reception
	err = bus.Connect(args)
	if err != nil {
		return err
	}
	return bus.Subscribe(monitor.BusManager)
}

// Disconnects from the CAN bus and stops annotating
func (monitor *Monitor) Disconnect() {
	err := monitor.Bus().Disconnect()
	if err != nil {
		log.Warnf("[MONITOR] disconnect : %v", err)
	}
}

// AddHandler registers a handler for annotated frames
func (monitor *Monitor) AddHandler(handler AnnotationHandler) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.handlers = append(monitor.handlers, handler)
}

// Implements the frccan FrameListener interface, one annotation is
// produced per received frame
func (monitor *Monitor) Handle(frame frccan.Frame) {
	if frame.IsError() {
		// Bus level error frame, nothing to decode
		log.Warnf("[MONITOR] error frame x%x", frame.ID)
		return
	}
	raw := annotate.Raw{
		Timestamp: monitor.now(),
		ID:        frame.Arbitration(),
		Extended:  frame.IsExtended(),
		Remote:    frame.IsRemote(),
		DLC:       frame.DLC,
	}
	if !raw.Remote {
		length := int(frame.DLC)
		if length > len(frame.Data) {
			length = len(frame.Data)
		}
		raw.Data = frame.Data[:length]
	}
	annotated := monitor.annotator.Annotate(raw)
	monitor.mu.Lock()
	handlers := monitor.handlers
	monitor.mu.Unlock()
	for _, handler := range handlers {
		handler.HandleAnnotation(annotated)
	}
}
