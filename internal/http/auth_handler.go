package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) obtainToken(c *gin.Context) {
	var req tokenRequest
	if !h.bind(c, &req) {
		return
	}
	pair, err := h.svc.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *Handler) refreshToken(c *gin.Context) {
	var req refreshRequest
	if !h.bind(c, &req) {
		return
	}
	pair, err := h.svc.Auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
