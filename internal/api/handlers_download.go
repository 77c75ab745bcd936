// handlers_download.go - Completion panel download handlers
package api

import (
	"net/http"

	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// DownloadHandlerImpl implements the DownloadHandler interface
type DownloadHandlerImpl struct {
	workspaceMgr WorkspaceManager
}

// NewDownloadHandler creates a new download handler instance
func NewDownloadHandler(workspaceMgr WorkspaceManager) DownloadHandler {
	return &DownloadHandlerImpl{
		workspaceMgr: workspaceMgr,
	}
}

// HandleDownloadIndividual is the "download individual reports" action.
// No artifact exists to transfer: the generation step is simulated, so this
// is a reserved no-op boundary that changes no state and emits no toast.
// TODO: wire to a real export pipeline once document generation exists.
func (h *DownloadHandlerImpl) HandleDownloadIndividual(c echo.Context) error {
	return h.handleDownload(c)
}

// HandleDownloadArchive is the "download all as archive" action.
// Same reserved no-op boundary as the individual download.
func (h *DownloadHandlerImpl) HandleDownloadArchive(c echo.Context) error {
	return h.handleDownload(c)
}

func (h *DownloadHandlerImpl) handleDownload(c echo.Context) error {
	id := c.Param("workspaceId")
	if id == "" {
		return NewValidationError("workspaceId")
	}

	ws, ok := h.workspaceMgr.Get(id)
	if !ok {
		return NewNotFoundError("workspace", id)
	}

	if ws.Status != models.StatusComplete {
		return NewConflictError("reports have not been generated yet")
	}

	return c.NoContent(http.StatusNoContent)
}
