// Package workspace holds the upload-and-generate state machine for the
// bulk report page and the manager that runs generation attempts.
package workspace

import (
	"errors"

	"github.com/bulk-report-generator/backend/internal/models"
)

// Transition errors returned by State.
var (
	// ErrMissingFiles is the only user-visible error kind: generation was
	// requested without both a template and a data file.
	ErrMissingFiles = errors.New("both template and data files are required")

	// ErrAlreadyRunning guards the at-most-one-outstanding-attempt invariant.
	ErrAlreadyRunning = errors.New("generation is already in progress")

	// ErrAlreadyComplete guards against re-running a finished workspace.
	ErrAlreadyComplete = errors.New("generation already completed")

	// ErrNotProcessing means CompleteGeneration was called out of order.
	ErrNotProcessing = errors.New("no generation in progress")
)

// State is the pure state container for one workspace: two file slots and
// the generation status. Transitions have no side effects, so the machine is
// testable without any transport or timer.
type State struct {
	Template *models.FileInfo
	Data     *models.FileInfo
	Status   models.GenerationStatus
}

// NewState returns an idle state with both slots empty.
func NewState() *State {
	return &State{Status: models.StatusIdle}
}

// SetTemplate replaces the template slot. Last write wins, and the status is
// never rewound by a new upload.
func (s *State) SetTemplate(f *models.FileInfo) {
	s.Template = f
}

// SetData replaces the data slot. Last write wins.
func (s *State) SetData(f *models.FileInfo) {
	s.Data = f
}

// CanGenerate reports whether the generate control should be enabled:
// template present AND data present AND not currently processing.
func (s *State) CanGenerate() bool {
	return s.Template != nil && s.Data != nil && s.Status != models.StatusProcessing
}

// StartGeneration moves idle -> processing. The slot check runs even though
// a well-behaved client keeps the control disabled when a slot is empty.
func (s *State) StartGeneration() error {
	if s.Template == nil || s.Data == nil {
		return ErrMissingFiles
	}

	switch s.Status {
	case models.StatusProcessing:
		return ErrAlreadyRunning
	case models.StatusComplete:
		return ErrAlreadyComplete
	}

	s.Status = models.StatusProcessing
	return nil
}

// CompleteGeneration moves processing -> complete.
func (s *State) CompleteGeneration() error {
	if s.Status != models.StatusProcessing {
		return ErrNotProcessing
	}

	s.Status = models.StatusComplete
	return nil
}
