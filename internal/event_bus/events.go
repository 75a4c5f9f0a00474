package event_bus

import "time"

const (
	// LossValueEditedType is published by the dashboard store every time a
	// projected monthly loss value changes.
	LossValueEditedType EventType = "dashboard.loss_edited"
	// SnapshotIngestedType is published when a funding snapshot is loaded
	// into a dashboard store.
	SnapshotIngestedType EventType = "dashboard.snapshot_ingested"
)

type LossValueEdited struct {
	CodigoIbge  string
	Competencia string
	LineIndex   int
	Value       float64
	EditedAt    time.Time
}

type SnapshotIngested struct {
	CodigoIbge  string
	Competencia string
	LineCount   int
}
