// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UploadHandler handles file slot uploads
type UploadHandler interface {
	HandleUploadTemplate(c echo.Context) error
	HandleUploadData(c echo.Context) error
	HandleRecentFiles(c echo.Context) error
}

// WorkspaceHandler handles workspace lifecycle and generation operations
type WorkspaceHandler interface {
	HandleCreateWorkspace(c echo.Context) error
	HandleGetWorkspace(c echo.Context) error
	HandleGetWorkspaceMsgpack(c echo.Context) error
	HandleStartGeneration(c echo.Context) error
	HandleGenerationProgressStream(c echo.Context) error
	HandleWorkspaceKeepAlive(c echo.Context) error
}

// DownloadHandler handles the completion panel's download actions
type DownloadHandler interface {
	HandleDownloadIndividual(c echo.Context) error
	HandleDownloadArchive(c echo.Context) error
}

// ConfigHandler serves client-facing configuration
type ConfigHandler interface {
	HandleGetAcceptFilters(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// WorkspaceManager defines the interface for workspace management
// This allows mocking in tests
type WorkspaceManager interface {
	Create() *models.ReportWorkspace
	Get(id string) (*models.ReportWorkspace, bool)
	Touch(id string) bool
	SetTemplate(id string, f *models.FileInfo) (*models.ReportWorkspace, bool)
	SetData(id string, f *models.FileInfo) (*models.ReportWorkspace, bool)
	StartGeneration(id string) (*models.ReportWorkspace, error)
}
