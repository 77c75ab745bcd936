package models

import "time"

// Slot identifies which of the two workspace inputs a file was chosen for.
type Slot string

const (
	SlotTemplate Slot = "template"
	SlotData     Slot = "data"
)

// FileInfo represents metadata about a chosen file.
// Only the metadata is tracked; the file's content is never opened or read.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Slot       Slot      `json:"slot"`
	UploadedAt time.Time `json:"uploadedAt"`
}
