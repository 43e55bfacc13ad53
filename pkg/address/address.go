// Package address implements the FRC CAN identifier layout.
//
// An FRC arbitration id is a 29-bit value split into fixed fields:
//
//	| Device Type | Manufacturer | API Class   | API Index | Device Number |
//	| bits 28-24  | bits 23-16   | bits 15-10  | bits 9-6  | bits 5-0      |
//
// Device type 0 with manufacturer 0 is reserved for system broadcast
// messages. For those, bits 15-6 are reinterpreted as a single 10-bit
// broadcast message id instead of the API class/index split.
package address

const (
	// Maximum value representable in 29 bits (CAN extended id space)
	MaxIdentifier uint32 = 0x1FFFFFFF

	deviceTypeShift   = 24
	deviceTypeMask    = 0x1F
	manufacturerShift = 16
	manufacturerMask  = 0xFF
	apiClassShift     = 10
	apiClassMask      = 0x3F
	apiIndexShift     = 6
	apiIndexMask      = 0xF
	deviceNumberMask  = 0x3F
	messageIdShift    = 6
	messageIdMask     = 0x3FF
)

const (
	// Device number 63 addresses every instance of a device type,
	// a device-specific broadcast in FRC terms
	DeviceNumberAll uint8 = 63

	// Fixed id of the robot controller heartbeat frame
	HeartbeatId uint32 = 0x01011840
)

// Class discriminates the two addressing variants of an FRC identifier
type Class uint8

const (
	// ClassDeviceAddressed is a frame addressed to (or sent by) a
	// specific device type / manufacturer / device number
	ClassDeviceAddressed Class = iota
	// ClassBroadcast is a system broadcast message, reserved
	// device type 0 with manufacturer 0
	ClassBroadcast
)

func (class Class) String() string {
	switch class {
	case ClassDeviceAddressed:
		return "device"
	case ClassBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// Identifier is a decoded FRC arbitration id.
// Class selects which fields are meaningful :
// DeviceAddressed uses APIClass/APIIndex, Broadcast uses MessageId.
// DeviceType, Manufacturer and DeviceNumber are valid for both
// (broadcast identifiers always carry 0/0 in the first two).
type Identifier struct {
	Class        Class
	DeviceType   uint8  // 5 bits
	Manufacturer uint8  // 8 bits
	APIClass     uint8  // 6 bits, device addressed only
	APIIndex     uint8  // 4 bits, device addressed only
	MessageId    uint16 // 10 bits, broadcast only
	DeviceNumber uint8  // 6 bits
}

// Valid returns true if id fits in the 29-bit extended id space.
// Decode expects a valid id, callers should check first and treat
// anything wider as out of protocol.
func Valid(id uint32) bool {
	return id <= MaxIdentifier
}

// Decode splits a 29-bit arbitration id into its FRC fields.
// Total over all 29-bit values : every id decodes to exactly one class,
// flag bits above bit 28 are ignored.
func Decode(id uint32) Identifier {
	id &= MaxIdentifier
	ident := Identifier{
		DeviceType:   uint8((id >> deviceTypeShift) & deviceTypeMask),
		Manufacturer: uint8((id >> manufacturerShift) & manufacturerMask),
		DeviceNumber: uint8(id & deviceNumberMask),
	}
	if ident.DeviceType == 0 && ident.Manufacturer == 0 {
		ident.Class = ClassBroadcast
		ident.MessageId = uint16((id >> messageIdShift) & messageIdMask)
		return ident
	}
	ident.Class = ClassDeviceAddressed
	ident.APIClass = uint8((id >> apiClassShift) & apiClassMask)
	ident.APIIndex = uint8((id >> apiIndexShift) & apiIndexMask)
	return ident
}

// Encode packs the identifier back into a 29-bit arbitration id.
// Encode(Decode(id)) == id for every 29-bit id.
func (ident Identifier) Encode() uint32 {
	id := uint32(ident.DeviceType&deviceTypeMask) << deviceTypeShift
	id |= uint32(ident.Manufacturer) << manufacturerShift
	id |= uint32(ident.DeviceNumber & deviceNumberMask)
	if ident.Class == ClassBroadcast {
		id |= uint32(ident.MessageId&messageIdMask) << messageIdShift
		return id
	}
	id |= uint32(ident.APIClass&apiClassMask) << apiClassShift
	id |= uint32(ident.APIIndex&apiIndexMask) << apiIndexShift
	return id
}

// API returns the combined 10-bit API id (class<<4 | index).
// Manufacturer API tables are keyed by this value.
func (ident Identifier) API() uint16 {
	return uint16(ident.APIClass)<<4 | uint16(ident.APIIndex)
}

// IsDeviceBroadcast returns true for device-addressed identifiers sent
// to every instance of the device type (device number 63)
func (ident Identifier) IsDeviceBroadcast() bool {
	return ident.Class == ClassDeviceAddressed && ident.DeviceNumber == DeviceNumberAll
}

// IsHeartbeat returns true for the robot controller heartbeat identifier
func (ident Identifier) IsHeartbeat() bool {
	return ident.Encode() == HeartbeatId
}
