// handlers_config.go - Client-facing configuration handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ConfigHandlerImpl implements the ConfigHandler interface
type ConfigHandlerImpl struct {
	templateAccept string
	dataAccept     string
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(templateAccept, dataAccept string) ConfigHandler {
	return &ConfigHandlerImpl{
		templateAccept: templateAccept,
		dataAccept:     dataAccept,
	}
}

// HandleGetAcceptFilters returns the advisory accept filters for the two
// file pickers. Advisory only: drops bypass them and the server enforces
// nothing.
func (h *ConfigHandlerImpl) HandleGetAcceptFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"template": h.templateAccept,
		"data":     h.dataAccept,
	})
}
