package workspace

import (
	"testing"

	"github.com/bulk-report-generator/backend/internal/models"
)

func fileRef(name string, slot models.Slot) *models.FileInfo {
	return &models.FileInfo{
		ID:   "id-" + name,
		Name: name,
		Size: int64(len(name)),
		Slot: slot,
	}
}

func TestState_SlotsLastWriteWins(t *testing.T) {
	s := NewState()

	if s.Template != nil || s.Data != nil {
		t.Fatal("expected both slots to start empty")
	}

	s.SetTemplate(fileRef("report_v1.docx", models.SlotTemplate))
	s.SetTemplate(fileRef("report_v2.docx", models.SlotTemplate))
	if s.Template.Name != "report_v2.docx" {
		t.Errorf("expected most recent template, got %s", s.Template.Name)
	}

	s.SetData(fileRef("scores.xlsx", models.SlotData))
	s.SetData(fileRef("scores_final.xlsx", models.SlotData))
	if s.Data.Name != "scores_final.xlsx" {
		t.Errorf("expected most recent data file, got %s", s.Data.Name)
	}

	// Replacing one slot never touches the other
	if s.Template.Name != "report_v2.docx" {
		t.Errorf("template slot changed unexpectedly: %s", s.Template.Name)
	}
}

func TestState_CanGenerate(t *testing.T) {
	template := fileRef("report.docx", models.SlotTemplate)
	data := fileRef("scores.xlsx", models.SlotData)

	tests := []struct {
		name     string
		template *models.FileInfo
		data     *models.FileInfo
		status   models.GenerationStatus
		want     bool
	}{
		{"both slots empty", nil, nil, models.StatusIdle, false},
		{"only template", template, nil, models.StatusIdle, false},
		{"only data", nil, data, models.StatusIdle, false},
		{"both present idle", template, data, models.StatusIdle, true},
		{"both present processing", template, data, models.StatusProcessing, false},
		{"both present complete", template, data, models.StatusComplete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Template: tt.template, Data: tt.data, Status: tt.status}
			if got := s.CanGenerate(); got != tt.want {
				t.Errorf("CanGenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_StartGeneration(t *testing.T) {
	t.Run("missing files leaves status unchanged", func(t *testing.T) {
		s := NewState()
		if err := s.StartGeneration(); err != ErrMissingFiles {
			t.Fatalf("expected ErrMissingFiles, got %v", err)
		}
		if s.Status != models.StatusIdle {
			t.Errorf("expected status idle, got %s", s.Status)
		}

		s.SetTemplate(fileRef("report.docx", models.SlotTemplate))
		if err := s.StartGeneration(); err != ErrMissingFiles {
			t.Fatalf("expected ErrMissingFiles with one slot, got %v", err)
		}
		if s.Status != models.StatusIdle {
			t.Errorf("expected status idle, got %s", s.Status)
		}
	})

	t.Run("both slots present moves to processing", func(t *testing.T) {
		s := NewState()
		s.SetTemplate(fileRef("report.docx", models.SlotTemplate))
		s.SetData(fileRef("scores.xlsx", models.SlotData))

		if err := s.StartGeneration(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != models.StatusProcessing {
			t.Errorf("expected status processing, got %s", s.Status)
		}
	})

	t.Run("rejected while processing", func(t *testing.T) {
		s := NewState()
		s.SetTemplate(fileRef("report.docx", models.SlotTemplate))
		s.SetData(fileRef("scores.xlsx", models.SlotData))
		s.Status = models.StatusProcessing

		if err := s.StartGeneration(); err != ErrAlreadyRunning {
			t.Errorf("expected ErrAlreadyRunning, got %v", err)
		}
	})

	t.Run("rejected after complete", func(t *testing.T) {
		s := NewState()
		s.SetTemplate(fileRef("report.docx", models.SlotTemplate))
		s.SetData(fileRef("scores.xlsx", models.SlotData))
		s.Status = models.StatusComplete

		if err := s.StartGeneration(); err != ErrAlreadyComplete {
			t.Errorf("expected ErrAlreadyComplete, got %v", err)
		}
	})
}

func TestState_CompleteGeneration(t *testing.T) {
	s := NewState()
	s.SetTemplate(fileRef("report.docx", models.SlotTemplate))
	s.SetData(fileRef("scores.xlsx", models.SlotData))

	// Out of order completion is rejected
	if err := s.CompleteGeneration(); err != ErrNotProcessing {
		t.Fatalf("expected ErrNotProcessing, got %v", err)
	}

	if err := s.StartGeneration(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.CompleteGeneration(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != models.StatusComplete {
		t.Errorf("expected status complete, got %s", s.Status)
	}
}

func TestState_UploadAfterCompleteDoesNotReset(t *testing.T) {
	s := NewState()
	s.SetTemplate(fileRef("report.docx", models.SlotTemplate))
	s.SetData(fileRef("scores.xlsx", models.SlotData))
	s.StartGeneration()
	s.CompleteGeneration()

	s.SetTemplate(fileRef("report_new.docx", models.SlotTemplate))
	s.SetData(fileRef("scores_new.xlsx", models.SlotData))

	if s.Status != models.StatusComplete {
		t.Errorf("expected status to stay complete, got %s", s.Status)
	}
	if s.Template.Name != "report_new.docx" || s.Data.Name != "scores_new.xlsx" {
		t.Error("expected slots to hold the new files")
	}
}
