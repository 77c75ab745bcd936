package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/bulk-report-generator/backend/internal/generate"
	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/bulk-report-generator/backend/internal/testutil"
)

// gateGenerator blocks until released, so tests can observe the processing state.
type gateGenerator struct {
	release chan struct{}
}

func (g *gateGenerator) Generate(ctx context.Context, templateName, dataName string) error {
	<-g.release
	return nil
}

func newTestManager(t *testing.T) (*Manager, *testutil.RecordingNotifier) {
	t.Helper()
	rec := testutil.NewRecordingNotifier()
	m := NewManager(generate.NewTimedGenerator(10*time.Millisecond), rec, nil)
	return m, rec
}

func waitForStatus(t *testing.T, m *Manager, id string, want models.GenerationStatus) *models.ReportWorkspace {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ws, ok := m.Get(id)
		if !ok {
			t.Fatal("workspace not found")
		}
		if ws.Status == want {
			return ws
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("workspace never reached status %s", want)
	return nil
}

func TestManager_GenerationFlow(t *testing.T) {
	m, rec := newTestManager(t)

	ws := m.Create()
	if ws.Status != models.StatusIdle {
		t.Fatalf("expected idle workspace, got %s", ws.Status)
	}
	if ws.CanGenerate {
		t.Fatal("expected generate to be disabled with empty slots")
	}

	ws, ok := m.SetTemplate(ws.ID, fileRef("report.docx", models.SlotTemplate))
	if !ok {
		t.Fatal("workspace not found")
	}
	if ws.CanGenerate {
		t.Fatal("expected generate to stay disabled with one slot")
	}

	ws, _ = m.SetData(ws.ID, fileRef("scores.xlsx", models.SlotData))
	if !ws.CanGenerate {
		t.Fatal("expected generate to be enabled with both slots")
	}

	// One upload toast per slot, carrying the display name
	notes := rec.Notifications()
	if len(notes) != 2 {
		t.Fatalf("expected 2 upload notifications, got %d", len(notes))
	}
	if notes[0].Description != "report.docx" || notes[1].Description != "scores.xlsx" {
		t.Errorf("expected file names in toast descriptions, got %q and %q",
			notes[0].Description, notes[1].Description)
	}
	rec.Reset()

	// Processing transition is synchronous
	started, err := m.StartGeneration(ws.ID)
	if err != nil {
		t.Fatalf("failed to start generation: %v", err)
	}
	if started.Status != models.StatusProcessing {
		t.Errorf("expected processing immediately, got %s", started.Status)
	}
	if started.CanGenerate {
		t.Error("expected generate to be disabled while processing")
	}

	// No toast on entering processing
	if rec.Count() != 0 {
		t.Errorf("expected no notification on processing, got %d", rec.Count())
	}

	done := waitForStatus(t, m, ws.ID, models.StatusComplete)
	if done.CompletedAt == 0 {
		t.Error("expected completedAt to be set")
	}

	// Exactly one success toast at the complete transition
	notes = rec.Notifications()
	if len(notes) != 1 {
		t.Fatalf("expected exactly 1 completion notification, got %d", len(notes))
	}
	if notes[0].Variant != models.VariantDefault {
		t.Errorf("expected default variant, got %s", notes[0].Variant)
	}
}

func TestManager_MissingFiles(t *testing.T) {
	m, rec := newTestManager(t)

	ws := m.Create()
	if _, err := m.StartGeneration(ws.ID); err != ErrMissingFiles {
		t.Fatalf("expected ErrMissingFiles, got %v", err)
	}

	// Status unchanged, exactly one destructive toast
	got, _ := m.Get(ws.ID)
	if got.Status != models.StatusIdle {
		t.Errorf("expected status idle, got %s", got.Status)
	}

	notes := rec.Notifications()
	if len(notes) != 1 {
		t.Fatalf("expected exactly 1 failure notification, got %d", len(notes))
	}
	if notes[0].Variant != models.VariantDestructive {
		t.Errorf("expected destructive variant, got %s", notes[0].Variant)
	}
	if notes[0].Description != "Please upload both template and Excel files." {
		t.Errorf("unexpected toast description: %q", notes[0].Description)
	}
}

func TestManager_RejectsConcurrentGeneration(t *testing.T) {
	rec := testutil.NewRecordingNotifier()
	gate := &gateGenerator{release: make(chan struct{})}
	m := NewManager(gate, rec, nil)

	ws := m.Create()
	m.SetTemplate(ws.ID, fileRef("report.docx", models.SlotTemplate))
	m.SetData(ws.ID, fileRef("scores.xlsx", models.SlotData))
	rec.Reset()

	if _, err := m.StartGeneration(ws.ID); err != nil {
		t.Fatalf("failed to start generation: %v", err)
	}

	// Second invocation while processing is rejected without a toast
	if _, err := m.StartGeneration(ws.ID); err != ErrAlreadyRunning {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if rec.Count() != 0 {
		t.Errorf("expected no notification for rejected start, got %d", rec.Count())
	}

	close(gate.release)
	waitForStatus(t, m, ws.ID, models.StatusComplete)

	// And after completion the attempt is terminal
	if _, err := m.StartGeneration(ws.ID); err != ErrAlreadyComplete {
		t.Fatalf("expected ErrAlreadyComplete, got %v", err)
	}
}

func TestManager_UnknownWorkspace(t *testing.T) {
	m, _ := newTestManager(t)

	if _, ok := m.Get("no-such-id"); ok {
		t.Error("expected Get to report missing workspace")
	}
	if ok := m.Touch("no-such-id"); ok {
		t.Error("expected Touch to report missing workspace")
	}
	if _, ok := m.SetTemplate("no-such-id", fileRef("report.docx", models.SlotTemplate)); ok {
		t.Error("expected SetTemplate to report missing workspace")
	}
	if _, err := m.StartGeneration("no-such-id"); err != ErrWorkspaceNotFound {
		t.Errorf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestManager_CleanupOldWorkspaces(t *testing.T) {
	m, _ := newTestManager(t)

	ws := m.Create()

	// Fresh workspaces stay within the keep-alive window
	m.CleanupOldWorkspaces(time.Nanosecond)
	if _, ok := m.Get(ws.ID); !ok {
		t.Fatal("expected recently accessed workspace to survive cleanup")
	}

	// Backdate the workspace past both windows
	m.mu.Lock()
	m.workspaces[ws.ID].LastAccessed = time.Now().Add(-time.Hour)
	m.mu.Unlock()

	m.CleanupOldWorkspaces(30 * time.Minute)
	if _, ok := m.Get(ws.ID); ok {
		t.Error("expected aged workspace to be cleaned up")
	}
}
