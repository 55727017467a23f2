package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listUsers(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	users, total, err := h.svc.Users.List(c.Request.Context(), p, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(users, toUserResponse))
}

func (h *Handler) createUser(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req userCreateRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.svc.Users.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*user))
}

func (h *Handler) me(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	user, err := h.svc.Users.Me(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (h *Handler) getUser(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	user, err := h.svc.Users.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req userUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.svc.Users.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.Users.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
