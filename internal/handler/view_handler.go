package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/teamchat-backend/internal/view"
)

type ViewHandler struct {
	versions view.Versioner
}

func NewViewHandler(versions view.Versioner) *ViewHandler {
	return &ViewHandler{versions: versions}
}

type ViewVersionResponse struct {
	Scope   string `json:"scope"`
	Version int64  `json:"version"`
}

// Version lets clients poll whether their cached rendering of a scope is stale.
func (h *ViewHandler) Version(c echo.Context) error {
	scope, err := view.ParseScope(c.QueryParam("scope"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	v, err := h.versions.Version(c.Request().Context(), scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to read view version"))
	}
	return c.JSON(http.StatusOK, ViewVersionResponse{Scope: scope.String(), Version: v})
}
