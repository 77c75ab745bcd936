// routes.go - Route registration helpers
package api

import (
	"github.com/bulk-report-generator/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Registry       storage.Registry
	WorkspaceMgr   WorkspaceManager
	TemplateAccept string
	DataAccept     string
	Version        string
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Upload    UploadHandler
	Workspace WorkspaceHandler
	Download  DownloadHandler
	Config    ConfigHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version),
		Upload:    NewUploadHandler(deps.Registry, deps.WorkspaceMgr),
		Workspace: NewWorkspaceHandler(deps.WorkspaceMgr),
		Download:  NewDownloadHandler(deps.WorkspaceMgr),
		Config:    NewConfigHandler(deps.TemplateAccept, deps.DataAccept),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers, hub *NotificationHub) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Toast notification stream
	apiGroup.GET("/ws/notifications", hub.HandleWebSocket)

	// Client-facing configuration
	apiGroup.GET("/config/accept-filters", handlers.Config.HandleGetAcceptFilters)

	// Recently chosen files (metadata only)
	apiGroup.GET("/files/recent", handlers.Upload.HandleRecentFiles)

	// Workspace lifecycle
	wsGroup := apiGroup.Group("/workspaces")
	wsGroup.POST("", handlers.Workspace.HandleCreateWorkspace)
	wsGroup.GET("/:workspaceId", handlers.Workspace.HandleGetWorkspace)
	wsGroup.GET("/:workspaceId/msgpack", handlers.Workspace.HandleGetWorkspaceMsgpack)
	wsGroup.POST("/:workspaceId/keepalive", handlers.Workspace.HandleWorkspaceKeepAlive)

	// File slots
	wsGroup.POST("/:workspaceId/template", handlers.Upload.HandleUploadTemplate)
	wsGroup.POST("/:workspaceId/data", handlers.Upload.HandleUploadData)

	// Generation
	wsGroup.POST("/:workspaceId/generate", handlers.Workspace.HandleStartGeneration)
	wsGroup.GET("/:workspaceId/progress", handlers.Workspace.HandleGenerationProgressStream)

	// Completion panel actions (reserved no-op boundaries)
	wsGroup.POST("/:workspaceId/download/individual", handlers.Download.HandleDownloadIndividual)
	wsGroup.POST("/:workspaceId/download/archive", handlers.Download.HandleDownloadArchive)
}
