// Package frccan decodes and annotates FRC (FIRST Robotics Competition)
// CAN bus traffic. FRC devices use extended 29-bit arbitration identifiers
// carrying device type, manufacturer, API and device number fields.
package frccan

// Socketcan id flags & masks
const (
	CanEffFlag uint32 = 0x80000000 // Extended (29 bit) frame format
	CanRtrFlag uint32 = 0x40000000 // Remote transmission request
	CanErrFlag uint32 = 0x20000000 // Error frame
	CanSffMask uint32 = 0x000007FF // Standard frame id mask
	CanEffMask uint32 = 0x1FFFFFFF // Extended frame id mask
)

// A CAN frame as delivered by a bus backend.
// ID holds the arbitration id together with the socketcan
// EFF/RTR/ERR flag bits.
type Frame struct {
	ID    uint32
	Flags uint8
	DLC   uint8
	Data  [8]byte
}

func NewFrame(id uint32, flags uint8, dlc uint8) Frame {
	return Frame{ID: id, Flags: flags, DLC: dlc}
}

// IsExtended returns true if the frame uses the extended 29-bit format.
// All FRC traffic is extended, standard frames are out of protocol.
func (frame Frame) IsExtended() bool {
	return frame.ID&CanEffFlag != 0
}

// IsRemote returns true for remote transmission request frames
func (frame Frame) IsRemote() bool {
	return frame.ID&CanRtrFlag != 0
}

// IsError returns true for bus error frames
func (frame Frame) IsError() bool {
	return frame.ID&CanErrFlag != 0
}

// Arbitration returns the arbitration id without flag bits,
// masked to 29 or 11 bits depending on the frame format.
func (frame Frame) Arbitration() uint32 {
	if frame.IsExtended() {
		return frame.ID & CanEffMask
	}
	return frame.ID & CanSffMask
}
