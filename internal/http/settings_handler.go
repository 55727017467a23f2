package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listSettings(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	list, total, err := h.svc.Settings.List(c.Request.Context(), p, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(list, toSettingsResponse))
}

func (h *Handler) createSettings(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req settingsRequest
	if !h.bind(c, &req) {
		return
	}
	settings, err := h.svc.Settings.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSettingsResponse(*settings))
}

func (h *Handler) getSettings(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	settings, err := h.svc.Settings.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(*settings))
}

func (h *Handler) updateSettings(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req settingsRequest
	if !h.bind(c, &req) {
		return
	}
	settings, err := h.svc.Settings.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(*settings))
}

func (h *Handler) deleteSettings(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.Settings.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
