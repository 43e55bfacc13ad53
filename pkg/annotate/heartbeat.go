package annotate

// Robot controller heartbeat flags, packed in payload byte 4
const (
	hbRedAlliance     = 0x80
	hbEnabled         = 0x40
	hbAutonomous      = 0x20
	hbTest            = 0x10
	hbWatchdogEnabled = 0x08
)

// Heartbeat holds the robot state flags carried by the
// robot controller heartbeat frame
type Heartbeat struct {
	RedAlliance     bool
	Enabled         bool
	Autonomous      bool
	Test            bool
	WatchdogEnabled bool
}

// DecodeHeartbeat extracts the robot state flags from a heartbeat
// payload. Returns false when the payload is too short to carry them.
func DecodeHeartbeat(data []byte) (Heartbeat, bool) {
	if len(data) < 5 {
		return Heartbeat{}, false
	}
	flags := data[4]
	return Heartbeat{
		RedAlliance:     flags&hbRedAlliance != 0,
		Enabled:         flags&hbEnabled != 0,
		Autonomous:      flags&hbAutonomous != 0,
		Test:            flags&hbTest != 0,
		WatchdogEnabled: flags&hbWatchdogEnabled != 0,
	}, true
}
