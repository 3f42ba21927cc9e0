package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/teamchat-backend/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c echo.Context) error {
	id := callerID(c)
	if id == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "no profile for caller"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "profile not found"))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context()))
}

func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "profile not found"))
	}
	return c.JSON(http.StatusOK, p)
}
