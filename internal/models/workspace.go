package models

// GenerationStatus represents the status of a report generation attempt.
type GenerationStatus string

const (
	StatusIdle       GenerationStatus = "idle"
	StatusProcessing GenerationStatus = "processing"
	StatusComplete   GenerationStatus = "complete"
)

// ReportWorkspace is the client-facing view of a report workspace: the two
// file slots, the generation status and the derived enablement flag.
type ReportWorkspace struct {
	ID          string           `json:"id"`
	Template    *FileInfo        `json:"template,omitempty"`
	Data        *FileInfo        `json:"data,omitempty"`
	Status      GenerationStatus `json:"status"`
	CanGenerate bool             `json:"canGenerate"`
	CreatedAt   int64            `json:"createdAt"`             // Unix ms
	CompletedAt int64            `json:"completedAt,omitempty"` // Unix ms
}
