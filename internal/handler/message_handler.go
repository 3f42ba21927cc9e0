package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/teamchat-backend/internal/service"
)

type MessageHandler struct {
	svc     service.MessageService
	threads service.ThreadService
}

func NewMessageHandler(svc service.MessageService, threads service.ThreadService) *MessageHandler {
	return &MessageHandler{svc: svc, threads: threads}
}

type CreateMessageRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

type UpdateMessageRequest struct {
	Content string `json:"content"`
}

// ListByChannel returns top-level messages, newest first.
func (h *MessageHandler) ListByChannel(c echo.Context) error {
	list, err := h.svc.ListTopLevel(c.Request().Context(), c.Param("id"), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MessageHandler) Create(c echo.Context) error {
	var req CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.Create(c.Request().Context(), req.Content, c.Param("id"), callerID(c), req.ParentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) Get(c echo.Context) error {
	msg, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) Update(c echo.Context) error {
	var req UpdateMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.Update(c.Request().Context(), c.Param("id"), req.Content, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), callerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MessageHandler) Thread(c echo.Context) error {
	th, err := h.threads.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, th)
}
