// handlers_workspace.go - Workspace lifecycle and generation handlers
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/bulk-report-generator/backend/internal/workspace"
	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// WorkspaceHandlerImpl implements the WorkspaceHandler interface
type WorkspaceHandlerImpl struct {
	workspaceMgr WorkspaceManager
}

// NewWorkspaceHandler creates a new workspace handler instance
func NewWorkspaceHandler(workspaceMgr WorkspaceManager) WorkspaceHandler {
	return &WorkspaceHandlerImpl{
		workspaceMgr: workspaceMgr,
	}
}

// HandleCreateWorkspace creates a new empty workspace
func (h *WorkspaceHandlerImpl) HandleCreateWorkspace(c echo.Context) error {
	ws := h.workspaceMgr.Create()
	return c.JSON(http.StatusCreated, ws)
}

// HandleGetWorkspace returns the current state of a workspace
func (h *WorkspaceHandlerImpl) HandleGetWorkspace(c echo.Context) error {
	id := c.Param("workspaceId")
	if id == "" {
		return NewValidationError("workspaceId")
	}

	ws, ok := h.workspaceMgr.Get(id)
	if !ok {
		return NewNotFoundError("workspace", id)
	}

	// Touch to prevent cleanup while being viewed
	h.workspaceMgr.Touch(id)

	return c.JSON(http.StatusOK, ws)
}

// HandleGetWorkspaceMsgpack returns workspace state in MessagePack format
// for low-overhead polling clients
func (h *WorkspaceHandlerImpl) HandleGetWorkspaceMsgpack(c echo.Context) error {
	id := c.Param("workspaceId")
	if id == "" {
		return NewValidationError("workspaceId")
	}

	ws, ok := h.workspaceMgr.Get(id)
	if !ok {
		return NewNotFoundError("workspace", id)
	}

	h.workspaceMgr.Touch(id)

	data, err := msgpack.Marshal(ws)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleStartGeneration triggers a generation attempt.
// The processing transition is synchronous: the returned workspace already
// reports processing status.
func (h *WorkspaceHandlerImpl) HandleStartGeneration(c echo.Context) error {
	id := c.Param("workspaceId")
	if id == "" {
		return NewValidationError("workspaceId")
	}

	ws, err := h.workspaceMgr.StartGeneration(id)
	if err != nil {
		switch {
		case errors.Is(err, workspace.ErrWorkspaceNotFound):
			return NewNotFoundError("workspace", id)
		case errors.Is(err, workspace.ErrMissingFiles):
			return NewMissingFilesError()
		case errors.Is(err, workspace.ErrAlreadyRunning),
			errors.Is(err, workspace.ErrAlreadyComplete):
			return NewConflictError(err.Error())
		default:
			return NewInternalError("failed to start generation", err)
		}
	}

	return c.JSON(http.StatusAccepted, ws)
}

// HandleGenerationProgressStream streams workspace status via SSE until the
// generation attempt reaches its terminal state
func (h *WorkspaceHandlerImpl) HandleGenerationProgressStream(c echo.Context) error {
	id := c.Param("workspaceId")
	if id == "" {
		return NewValidationError("workspaceId")
	}

	// Set SSE headers
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	ws, ok := h.workspaceMgr.Get(id)
	if !ok {
		h.sendSSEError(c, "workspace not found")
		return nil
	}

	// Send initial status
	h.sendSSEData(c, ws)

	if ws.Status == models.StatusComplete {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	timeout := time.NewTimer(1 * time.Minute)
	defer timeout.Stop()

	for {
		select {
		case <-ticker.C:
			ws, ok := h.workspaceMgr.Get(id)
			if !ok {
				h.sendSSEError(c, "workspace not found")
				return nil
			}

			h.sendSSEData(c, ws)

			if ws.Status == models.StatusComplete {
				return nil
			}

		case <-timeout.C:
			h.sendSSEError(c, "stream timeout")
			return nil

		case <-c.Request().Context().Done():
			return nil
		}
	}
}

// HandleWorkspaceKeepAlive extends workspace lifetime for active viewing
func (h *WorkspaceHandlerImpl) HandleWorkspaceKeepAlive(c echo.Context) error {
	id := c.Param("workspaceId")
	if id == "" {
		return NewValidationError("workspaceId")
	}

	if ok := h.workspaceMgr.Touch(id); !ok {
		return NewNotFoundError("workspace", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// SSE helpers

func (h *WorkspaceHandlerImpl) sendSSEData(c echo.Context, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Response(), "data: %s\n\n", data)
	c.Response().Flush()
}

func (h *WorkspaceHandlerImpl) sendSSEError(c echo.Context, message string) {
	fmt.Fprintf(c.Response(), "event: error\ndata: %q\n\n", message)
	c.Response().Flush()
}
