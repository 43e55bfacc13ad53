// Package annotate turns captured CAN frames into human readable
// annotation records using the FRC identifier layout and the
// registry tables.
package annotate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/frclab/gofrccan/pkg/address"
	"github.com/frclab/gofrccan/pkg/registry"
)

// Kind classifies an annotated frame for display
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNormal
	KindBroadcast
	KindHeartbeat
	KindStatus
	KindControl
)

var kindNames = map[Kind]string{
	KindInvalid:   "Invalid",
	KindNormal:    "Normal",
	KindBroadcast: "Broadcast",
	KindHeartbeat: "Heartbeat",
	KindStatus:    "Status",
	KindControl:   "Control",
}

func (kind Kind) String() string {
	name, ok := kindNames[kind]
	if ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", kind)
}

// Raw is one frame record as supplied by the capture layer
type Raw struct {
	Timestamp time.Time
	ID        uint32 // arbitration id, flag bits stripped
	Extended  bool
	Remote    bool
	DLC       uint8
	Data      []byte
}

// AnnotatedFrame is the annotation produced for one raw frame.
// Identifier is nil when the frame was structurally invalid, in which
// case Anomalies records why.
type AnnotatedFrame struct {
	Timestamp        time.Time
	Raw              uint32
	Kind             Kind
	Identifier       *address.Identifier
	DeviceTypeName   string
	ManufacturerName string
	APIName          string // status/control name when known
	Heartbeat        *Heartbeat
	DLC              uint8
	Data             []byte
	Summary          string
	Anomalies        []Anomaly
}

// Annotator annotates frames against a fixed registry set.
// It holds no mutable state across calls, a single annotator may be
// shared between goroutines.
type Annotator struct {
	logger *slog.Logger
	set    *registry.Set
}

// NewAnnotator creates an annotator using the given registry set,
// or the embedded default tables when set is nil
func NewAnnotator(set *registry.Set, logger *slog.Logger) *Annotator {
	if set == nil {
		set = registry.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Annotator{logger: logger, set: set}
}

// Annotate produces exactly one annotation record for a raw frame.
// It never fails : structural problems become anomalies on the record.
func (annotator *Annotator) Annotate(raw Raw) AnnotatedFrame {
	frame := AnnotatedFrame{
		Timestamp: raw.Timestamp,
		Raw:       raw.ID,
		DLC:       raw.DLC,
		Data:      raw.Data,
	}

	// Identifier and payload are validated independently
	if !raw.Remote && int(raw.DLC) != len(raw.Data) {
		frame.note(AnomalyPayloadLengthMismatch,
			fmt.Sprintf("length code %d but %d payload bytes", raw.DLC, len(raw.Data)))
	}

	if !raw.Extended {
		frame.note(AnomalyInvalidFrameFormat, "non-extended identifier")
		frame.Summary = fmt.Sprintf("INVALID non-extended identifier Data: <% X>", raw.Data)
		return frame
	}
	if !address.Valid(raw.ID) {
		frame.note(AnomalyInvalidFrameFormat, "value exceeds 29 bits")
		frame.Summary = fmt.Sprintf("INVALID value exceeds 29 bits Data: <% X>", raw.Data)
		return frame
	}

	ident := address.Decode(raw.ID)
	frame.Identifier = &ident
	annotator.resolve(&frame, ident)
	annotator.classify(&frame, ident)
	frame.Summary = annotator.summarize(&frame, ident)
	return frame
}

func (frame *AnnotatedFrame) note(kind AnomalyKind, message string) {
	frame.Anomalies = append(frame.Anomalies, Anomaly{Kind: kind, Message: message})
}

// Resolve registry names, recording an informational anomaly whenever
// a placeholder had to be synthesized
func (annotator *Annotator) resolve(frame *AnnotatedFrame, ident address.Identifier) {
	var known bool
	frame.DeviceTypeName, known = annotator.set.DeviceTypes.Resolve(uint16(ident.DeviceType))
	if !known {
		frame.note(AnomalyUnresolvedCode, fmt.Sprintf("device type 0x%02X", ident.DeviceType))
	}
	frame.ManufacturerName, known = annotator.set.Manufacturers.Resolve(uint16(ident.Manufacturer))
	if !known {
		frame.note(AnomalyUnresolvedCode, fmt.Sprintf("manufacturer 0x%02X", ident.Manufacturer))
	}
}

func (annotator *Annotator) classify(frame *AnnotatedFrame, ident address.Identifier) {
	if ident.IsHeartbeat() {
		frame.Kind = KindHeartbeat
		if hb, ok := DecodeHeartbeat(frame.Data); ok {
			frame.Heartbeat = &hb
		}
		return
	}
	if ident.Class == address.ClassBroadcast {
		frame.Kind = KindBroadcast
		name, known := annotator.set.Broadcasts.Resolve(ident.MessageId)
		if !known {
			frame.note(AnomalyUnresolvedCode, fmt.Sprintf("broadcast message 0x%02X", ident.MessageId))
		}
		frame.APIName = name
		return
	}
	if ident.IsDeviceBroadcast() {
		// Addressed to all instances of one device type
		frame.Kind = KindBroadcast
		frame.APIName = "Device-specific"
		return
	}
	if table := annotator.set.API(ident.DeviceType, ident.Manufacturer); table != nil {
		if name, known := table.Status.Resolve(ident.API()); known {
			frame.Kind = KindStatus
			frame.APIName = name
			return
		}
		if name, known := table.Control.Resolve(ident.API()); known {
			frame.Kind = KindControl
			frame.APIName = name
			return
		}
	}
	frame.Kind = KindNormal
}

func (annotator *Annotator) summarize(frame *AnnotatedFrame, ident address.Identifier) string {
	switch frame.Kind {
	case KindHeartbeat:
		var hb Heartbeat
		if frame.Heartbeat != nil {
			hb = *frame.Heartbeat
		}
		return fmt.Sprintf(
			"HEARTBEAT RedAlliance: %v Enabled: %v Autonomous: %v Test: %v WatchdogEnabled: %v Data: <% X>",
			hb.RedAlliance, hb.Enabled, hb.Autonomous, hb.Test, hb.WatchdogEnabled, frame.Data)
	case KindBroadcast:
		return fmt.Sprintf("BROADCAST Type: %v Data: <% X>", frame.APIName, frame.Data)
	case KindStatus:
		return fmt.Sprintf("STATUS Dev: %v Mfg: %v StatusType: %v DevID: %d Data: <% X>",
			frame.DeviceTypeName, frame.ManufacturerName, frame.APIName, ident.DeviceNumber, frame.Data)
	case KindControl:
		return fmt.Sprintf("CONTROL Dev: %v Mfg: %v ControlType: %v DevID: %d Data: <% X>",
			frame.DeviceTypeName, frame.ManufacturerName, frame.APIName, ident.DeviceNumber, frame.Data)
	default:
		return fmt.Sprintf("FRAME Dev: %v Mfg: %v API: %d Index: %d DevID: %d Data: <% X>",
			frame.DeviceTypeName, frame.ManufacturerName, ident.APIClass, ident.APIIndex,
			ident.DeviceNumber, frame.Data)
	}
}
