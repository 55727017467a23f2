package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/service"
)

func (h *Handler) listQuotations(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	list, total, err := h.svc.Quotations.List(c.Request.Context(), p, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(list, toQuotationResponse))
}

func (h *Handler) createQuotation(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req quotationRequest
	if !h.bind(c, &req) {
		return
	}
	q, err := h.svc.Quotations.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toQuotationResponse(*q))
}

func (h *Handler) getQuotation(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	q, err := h.svc.Quotations.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationResponse(*q))
}

func (h *Handler) updateQuotation(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req quotationRequest
	if !h.bind(c, &req) {
		return
	}
	q, err := h.svc.Quotations.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationResponse(*q))
}

func (h *Handler) deleteQuotation(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.Quotations.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setQuotationStatus(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Invalid status"})
		return
	}
	q, err := h.svc.Quotations.SetStatus(c.Request.Context(), p, c.Param("id"), model.QuotationStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "Invalid status"})
			return
		}
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationResponse(*q))
}

func (h *Handler) quotationPDF(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	doc, err := h.svc.Quotations.PDF(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeDocument(c, doc)
}
