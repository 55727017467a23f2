package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listContracts(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	list, total, err := h.svc.Contracts.List(c.Request.Context(), p, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(list, toContractResponse))
}

func (h *Handler) createContract(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req contractRequest
	if !h.bind(c, &req) {
		return
	}
	contract, err := h.svc.Contracts.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContractResponse(*contract))
}

func (h *Handler) getContract(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	contract, err := h.svc.Contracts.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractResponse(*contract))
}

func (h *Handler) updateContract(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req contractRequest
	if !h.bind(c, &req) {
		return
	}
	contract, err := h.svc.Contracts.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractResponse(*contract))
}

func (h *Handler) deleteContract(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.Contracts.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
