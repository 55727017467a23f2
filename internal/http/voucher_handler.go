package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listVouchers(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	list, total, err := h.svc.Vouchers.List(c.Request.Context(), p, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(list, toVoucherResponse))
}

func (h *Handler) createVoucher(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req voucherRequest
	if !h.bind(c, &req) {
		return
	}
	v, err := h.svc.Vouchers.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVoucherResponse(*v))
}

func (h *Handler) getVoucher(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	v, err := h.svc.Vouchers.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVoucherResponse(*v))
}

func (h *Handler) updateVoucher(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req voucherRequest
	if !h.bind(c, &req) {
		return
	}
	v, err := h.svc.Vouchers.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVoucherResponse(*v))
}

func (h *Handler) deleteVoucher(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.Vouchers.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportVouchers(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	doc, err := h.svc.Vouchers.Export(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeDocument(c, doc)
}
