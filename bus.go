package frccan

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Interface for handling a received CAN frame
type FrameListener interface {
	Handle(frame Frame)
}

// A CAN Bus interface
type Bus interface {
	Connect(...any) error                   // Connect to the CAN bus
	Disconnect() error                      // Disconnect from CAN bus
	Send(frame Frame) error                 // Send a frame on the bus
	Subscribe(callback FrameListener) error // Subscribe to all received CAN frames
}

type subscription struct {
	ident    uint32
	mask     uint32
	callback FrameListener
}

// BusManager is a wrapper around the CAN bus interface
// It dispatches received frames to listeners using an ident/mask match,
// so a listener can watch a single id or the whole bus.
type BusManager struct {
	mu            sync.Mutex
	bus           Bus
	subscriptions []subscription
}

func NewBusManager(bus Bus) *BusManager {
	return &BusManager{bus: bus}
}

// Implements the FrameListener interface
// This handles all received CAN frames from Bus
func (bm *BusManager) Handle(frame Frame) {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	for _, sub := range bm.subscriptions {
		if (frame.ID^sub.ident)&sub.mask == 0 {
			sub.callback.Handle(frame)
		}
	}
}

// Set bus
func (bm *BusManager) SetBus(bus Bus) {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	bm.bus = bus
}

func (bm *BusManager) Bus() Bus {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.bus
}

// Send a CAN message
// Limited error handling
func (bm *BusManager) Send(frame Frame) error {
	err := bm.bus.Send(frame)
	if err != nil {
		log.Warnf("[CAN] %v", err)
	}
	return err
}

// Subscribe a listener to the frames matching ident under mask.
// Use ident 0 with mask 0 to receive every frame on the bus.
func (bm *BusManager) Subscribe(ident uint32, mask uint32, callback FrameListener) {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	for _, sub := range bm.subscriptions {
		if sub.ident == ident && sub.mask == mask && sub.callback == callback {
			log.Warnf("[CAN] listener already subscribed to id x%x", ident)
			return
		}
	}
	bm.subscriptions = append(bm.subscriptions, subscription{ident: ident, mask: mask, callback: callback})
}
