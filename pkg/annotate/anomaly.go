package annotate

import "fmt"

// AnomalyKind classifies a problem found while annotating one frame.
// Anomalies are part of the output record and never abort processing
// of the frame stream.
type AnomalyKind uint8

const (
	// AnomalyInvalidFrameFormat : the identifier is not a well formed
	// 29-bit extended id, the frame carries no decoded fields
	AnomalyInvalidFrameFormat AnomalyKind = iota
	// AnomalyUnresolvedCode : a field decoded fine but its code has no
	// registry entry, the Unknown placeholder was used. Informational.
	AnomalyUnresolvedCode
	// AnomalyPayloadLengthMismatch : the declared length code disagrees
	// with the captured payload size, identifier decoding is unaffected
	AnomalyPayloadLengthMismatch
)

var anomalyNames = map[AnomalyKind]string{
	AnomalyInvalidFrameFormat:    "InvalidFrameFormat",
	AnomalyUnresolvedCode:        "UnresolvedCode",
	AnomalyPayloadLengthMismatch: "PayloadLengthMismatch",
}

func (kind AnomalyKind) String() string {
	name, ok := anomalyNames[kind]
	if ok {
		return name
	}
	return fmt.Sprintf("Anomaly(%d)", kind)
}

// Anomaly is one problem found on one frame
type Anomaly struct {
	Kind    AnomalyKind
	Message string
}

func (anomaly Anomaly) String() string {
	return fmt.Sprintf("%v : %v", anomaly.Kind, anomaly.Message)
}
