package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/service"
)

func (h *Handler) listSMSLogs(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	list, total, err := h.svc.SMSLogs.List(c.Request.Context(), p, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(list, toSMSLogResponse))
}

func (h *Handler) createSMSLog(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req smsLogRequest
	if !h.bind(c, &req) {
		return
	}
	entry, err := h.svc.SMSLogs.Create(c.Request.Context(), p, service.SMSLogInput{
		To:     req.To,
		Body:   req.Body,
		Status: model.SMSStatus(req.Status),
		Error:  req.Error,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSMSLogResponse(*entry))
}

func (h *Handler) getSMSLog(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	entry, err := h.svc.SMSLogs.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSMSLogResponse(*entry))
}

func (h *Handler) deleteSMSLog(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.SMSLogs.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// sendSMS answers with {success, sid} or {success: false, error}.
func (h *Handler) sendSMS(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req sendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "to and body are required"})
		return
	}
	res, err := h.svc.Notifications.Send(c.Request.Context(), p, req.To, req.Body)
	if err != nil {
		var smsErr *service.SMSError
		if !errors.As(err, &smsErr) {
			h.handleError(c, err)
			return
		}
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrUpstream) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"success": false, "error": smsErr.Reason})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sid": res.SID})
}
