package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/teamchat-backend/internal/model"
	"github.com/shinyyama/teamchat-backend/internal/service"
)

type ChannelHandler struct {
	svc service.ChannelService
}

func NewChannelHandler(svc service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

type CreateChannelRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Visibility  model.Visibility `json:"visibility"`
}

func (h *ChannelHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context(), c.QueryParam("q")))
}

func (h *ChannelHandler) Create(c echo.Context) error {
	var req CreateChannelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ch, err := h.svc.Create(c.Request().Context(), callerID(c), req.Name, req.Description, req.Visibility)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ch)
}

func (h *ChannelHandler) Get(c echo.Context) error {
	ch, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ch)
}
