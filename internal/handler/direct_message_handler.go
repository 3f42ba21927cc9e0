package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/teamchat-backend/internal/service"
)

type DirectMessageHandler struct {
	svc   service.DirectMessageService
	convs service.ConversationService
}

func NewDirectMessageHandler(svc service.DirectMessageService, convs service.ConversationService) *DirectMessageHandler {
	return &DirectMessageHandler{svc: svc, convs: convs}
}

type DirectMessageRequest struct {
	Content string `json:"content"`
}

// Conversations lists the profiles the caller has exchanged messages with.
func (h *DirectMessageHandler) Conversations(c echo.Context) error {
	list, err := h.convs.List(c.Request().Context(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DirectMessageHandler) List(c echo.Context) error {
	list, err := h.svc.ListConversation(c.Request().Context(), callerID(c), c.Param("profileId"), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DirectMessageHandler) Create(c echo.Context) error {
	var req DirectMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	dm, err := h.svc.Create(c.Request().Context(), req.Content, callerID(c), c.Param("profileId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dm)
}

func (h *DirectMessageHandler) Update(c echo.Context) error {
	var req DirectMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	dm, err := h.svc.Update(c.Request().Context(), c.Param("id"), req.Content, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dm)
}

func (h *DirectMessageHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), callerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
