// handlers_upload.go - File slot upload handlers
package api

import (
	"net/http"

	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/bulk-report-generator/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	registry     storage.Registry
	workspaceMgr WorkspaceManager
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(registry storage.Registry, workspaceMgr WorkspaceManager) UploadHandler {
	return &UploadHandlerImpl{
		registry:     registry,
		workspaceMgr: workspaceMgr,
	}
}

// HandleUploadTemplate captures a file for the template slot
func (h *UploadHandlerImpl) HandleUploadTemplate(c echo.Context) error {
	return h.handleSlotUpload(c, models.SlotTemplate)
}

// HandleUploadData captures a file for the data slot
func (h *UploadHandlerImpl) HandleUploadData(c echo.Context) error {
	return h.handleSlotUpload(c, models.SlotData)
}

// handleSlotUpload records metadata for the first file part and replaces the
// corresponding slot. The content is never opened; only the display name and
// size are kept. Multi-file submissions are truncated to the first file, and
// no extension, size or content validation is performed.
func (h *UploadHandlerImpl) handleSlotUpload(c echo.Context, slot models.Slot) error {
	id := c.Param("workspaceId")
	if id == "" {
		return NewValidationError("workspaceId")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	info := h.registry.Register(file.Filename, file.Size, slot)

	var (
		ws *models.ReportWorkspace
		ok bool
	)
	if slot == models.SlotTemplate {
		ws, ok = h.workspaceMgr.SetTemplate(id, info)
	} else {
		ws, ok = h.workspaceMgr.SetData(id, info)
	}
	if !ok {
		return NewNotFoundError("workspace", id)
	}

	return c.JSON(http.StatusOK, ws)
}

// HandleRecentFiles returns metadata for recently chosen files
func (h *UploadHandlerImpl) HandleRecentFiles(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.List(20))
}
