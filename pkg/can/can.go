// Package can manages the available CAN bus backends.
// Backends register themselves in an init() function, importing the
// backend package is enough to make it available to NewBus.
package can

import (
	"fmt"

	frccan "github.com/frclab/gofrccan"
)

type NewInterfaceFunc func(channel string) (frccan.Bus, error)

var interfaceRegistry = make(map[string]NewInterfaceFunc)

// Register a new CAN bus interface type
// This should be called inside an init() function of plugin
func RegisterInterface(interfaceType string, newInterface NewInterfaceFunc) {
	interfaceRegistry[interfaceType] = newInterface
}

// Create a new CAN bus with given interface
// Currently supported : socketcan, virtualcan
func NewBus(canInterface string, channel string, bitrate int) (frccan.Bus, error) {
	createInterface, ok := interfaceRegistry[canInterface]
	if !ok {
		return nil, fmt.Errorf("unsupported interface : %v", canInterface)
	}
	return createInterface(channel)
}
