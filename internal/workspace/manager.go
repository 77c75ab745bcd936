package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bulk-report-generator/backend/internal/generate"
	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/bulk-report-generator/backend/internal/notify"
	"github.com/google/uuid"
)

// MaxWorkspaces limits concurrent workspaces to prevent memory exhaustion
const MaxWorkspaces = 100

// KeepAliveWindow is how long to keep workspaces that are actively being used
const KeepAliveWindow = 5 * time.Minute

// ErrWorkspaceNotFound is returned when an operation names an unknown workspace.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// Manager handles active report workspaces.
type Manager struct {
	workspaces map[string]*workspaceState
	mu         sync.RWMutex
	generator  generate.Generator
	notifier   notify.Notifier
	catalog    *notify.Catalog
}

// workspaceState holds the state machine plus manager-side bookkeeping.
type workspaceState struct {
	ID           string
	State        *State
	CreatedAt    time.Time
	CompletedAt  *time.Time
	LastAccessed time.Time
}

// NewManager creates a workspace manager.
func NewManager(generator generate.Generator, notifier notify.Notifier, catalog *notify.Catalog) *Manager {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if catalog == nil {
		catalog = notify.DefaultCatalog()
	}
	return &Manager{
		workspaces: make(map[string]*workspaceState),
		generator:  generator,
		notifier:   notifier,
		catalog:    catalog,
	}
}

// Create starts a new empty workspace.
func (m *Manager) Create() *models.ReportWorkspace {
	m.cleanupOldWorkspacesIfNeeded()

	ws := &workspaceState{
		ID:           uuid.New().String(),
		State:        NewState(),
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}

	m.mu.Lock()
	m.workspaces[ws.ID] = ws
	m.mu.Unlock()

	return view(ws)
}

// Get returns a snapshot of a workspace by ID.
func (m *Manager) Get(id string) (*models.ReportWorkspace, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ws, ok := m.workspaces[id]
	if !ok {
		return nil, false
	}
	return view(ws), true
}

// Touch updates the LastAccessed timestamp so an actively viewed workspace
// is not cleaned up.
func (m *Manager) Touch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.workspaces[id]
	if !ok {
		return false
	}
	ws.LastAccessed = time.Now()
	return true
}

// SetTemplate replaces the template slot and emits the upload toast.
func (m *Manager) SetTemplate(id string, f *models.FileInfo) (*models.ReportWorkspace, bool) {
	return m.setSlot(id, f, true)
}

// SetData replaces the data slot and emits the upload toast.
func (m *Manager) SetData(id string, f *models.FileInfo) (*models.ReportWorkspace, bool) {
	return m.setSlot(id, f, false)
}

func (m *Manager) setSlot(id string, f *models.FileInfo, template bool) (*models.ReportWorkspace, bool) {
	m.mu.Lock()

	ws, ok := m.workspaces[id]
	if !ok {
		m.mu.Unlock()
		return nil, false
	}

	if template {
		ws.State.SetTemplate(f)
	} else {
		ws.State.SetData(f)
	}
	ws.LastAccessed = time.Now()
	snapshot := view(ws)
	m.mu.Unlock()

	msg := m.catalog.DataUploaded
	if template {
		msg = m.catalog.TemplateUploaded
	}
	m.notifier.Notify(msg.Render(f.Name))

	return snapshot, true
}

// StartGeneration begins a generation attempt. The processing transition is
// synchronous; the complete transition happens in a background goroutine once
// the generator finishes. Exactly one toast is emitted per terminal outcome:
// the missing-files failure here, or the success toast at completion.
func (m *Manager) StartGeneration(id string) (*models.ReportWorkspace, error) {
	m.mu.Lock()

	ws, ok := m.workspaces[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrWorkspaceNotFound
	}

	if err := ws.State.StartGeneration(); err != nil {
		ws.LastAccessed = time.Now()
		m.mu.Unlock()

		if errors.Is(err, ErrMissingFiles) {
			m.notifier.Notify(m.catalog.MissingFiles.Render(""))
		}
		return nil, err
	}

	ws.LastAccessed = time.Now()
	templateName := ws.State.Template.Name
	dataName := ws.State.Data.Name
	snapshot := view(ws)
	m.mu.Unlock()

	go m.runGeneration(id, templateName, dataName)

	return snapshot, nil
}

func (m *Manager) runGeneration(id, templateName, dataName string) {
	// Recover from panics to prevent backend crash
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Generate %s] PANIC recovered: %v\n", id[:8], r)
		}
	}()

	start := time.Now()
	fmt.Printf("[Generate %s] Starting generation: template=%q data=%q\n", id[:8], templateName, dataName)

	if err := m.generator.Generate(context.Background(), templateName, dataName); err != nil {
		// The timed generator never fails; leave the workspace processing and
		// surface nothing rather than invent an error state.
		// TODO: add a failed status once a real generation engine that can
		// actually fail replaces the timer.
		fmt.Printf("[Generate %s] ERROR: generation failed: %v\n", id[:8], err)
		return
	}

	m.mu.Lock()
	ws, ok := m.workspaces[id]
	if !ok {
		m.mu.Unlock()
		return
	}

	if err := ws.State.CompleteGeneration(); err != nil {
		m.mu.Unlock()
		fmt.Printf("[Generate %s] ERROR: %v\n", id[:8], err)
		return
	}

	now := time.Now()
	ws.CompletedAt = &now
	ws.LastAccessed = now
	m.mu.Unlock()

	m.notifier.Notify(m.catalog.GenerationComplete.Render(""))

	fmt.Printf("[Generate %s] Generation complete in %dms\n", id[:8], time.Since(start).Milliseconds())
}

// cleanupOldWorkspacesIfNeeded removes completed workspaces if at capacity
func (m *Manager) cleanupOldWorkspacesIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workspaces) < MaxWorkspaces {
		return
	}

	toFree := len(m.workspaces) - MaxWorkspaces + 1
	deleted := 0
	for id, ws := range m.workspaces {
		if deleted >= toFree {
			break
		}
		if ws.State.Status == models.StatusComplete {
			delete(m.workspaces, id)
			deleted++
			fmt.Printf("[Manager] Cleaned up completed workspace %s to free memory\n", id[:8])
		}
	}
}

// CleanupOldWorkspaces removes workspaces older than maxAge, keeping ones
// accessed within KeepAliveWindow. In-flight generations are never removed.
func (m *Manager) CleanupOldWorkspaces(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAliveCutoff := time.Now().Add(-KeepAliveWindow)

	for id, ws := range m.workspaces {
		if ws.State.Status == models.StatusProcessing {
			continue
		}
		if ws.LastAccessed.After(keepAliveCutoff) {
			continue
		}
		if ws.LastAccessed.Before(cutoff) {
			delete(m.workspaces, id)
			fmt.Printf("[Manager] Cleaned up aged workspace %s (last accessed: %s ago)\n",
				id[:8], time.Since(ws.LastAccessed).Round(time.Second))
		}
	}
}

// view builds a client-facing snapshot. Callers must hold at least a read lock.
func view(ws *workspaceState) *models.ReportWorkspace {
	w := &models.ReportWorkspace{
		ID:          ws.ID,
		Template:    ws.State.Template,
		Data:        ws.State.Data,
		Status:      ws.State.Status,
		CanGenerate: ws.State.CanGenerate(),
		CreatedAt:   ws.CreatedAt.UnixMilli(),
	}
	if ws.CompletedAt != nil {
		w.CompletedAt = ws.CompletedAt.UnixMilli()
	}
	return w
}
