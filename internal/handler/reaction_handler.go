package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/teamchat-backend/internal/service"
)

type ReactionHandler struct {
	svc service.ReactionService
}

func NewReactionHandler(svc service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

type AddReactionRequest struct {
	Emoji string `json:"emoji"`
}

// Summary returns the per-emoji groups for a message from the caller's view.
func (h *ReactionHandler) Summary(c echo.Context) error {
	groups, err := h.svc.Summary(c.Request().Context(), c.Param("id"), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *ReactionHandler) Add(c echo.Context) error {
	var req AddReactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	rc, err := h.svc.Add(c.Request().Context(), c.Param("id"), callerID(c), req.Emoji)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rc)
}

func (h *ReactionHandler) Remove(c echo.Context) error {
	if err := h.svc.Remove(c.Request().Context(), c.Param("id"), callerID(c), c.QueryParam("emoji")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
