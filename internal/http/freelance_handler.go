package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listFreelancers(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	list, total, err := h.svc.Freelancers.List(c.Request.Context(), p, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(list, toFreelancerResponse))
}

func (h *Handler) createFreelancer(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req freelancerRequest
	if !h.bind(c, &req) {
		return
	}
	f, err := h.svc.Freelancers.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFreelancerResponse(*f))
}

func (h *Handler) getFreelancer(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	f, err := h.svc.Freelancers.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFreelancerResponse(*f))
}

func (h *Handler) updateFreelancer(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req freelancerRequest
	if !h.bind(c, &req) {
		return
	}
	f, err := h.svc.Freelancers.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFreelancerResponse(*f))
}

func (h *Handler) deleteFreelancer(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.Freelancers.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listFreelanceWorks(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	page, err := h.page(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	list, total, err := h.svc.FreelanceWorks.List(c.Request.Context(), p, c.Query("freelancerId"), page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeList(c, page, total, mapSlice(list, toFreelanceWorkResponse))
}

func (h *Handler) createFreelanceWork(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req freelanceWorkRequest
	if !h.bind(c, &req) {
		return
	}
	w, err := h.svc.FreelanceWorks.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFreelanceWorkResponse(*w))
}

func (h *Handler) getFreelanceWork(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	w, err := h.svc.FreelanceWorks.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFreelanceWorkResponse(*w))
}

func (h *Handler) updateFreelanceWork(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req freelanceWorkRequest
	if !h.bind(c, &req) {
		return
	}
	w, err := h.svc.FreelanceWorks.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFreelanceWorkResponse(*w))
}

func (h *Handler) deleteFreelanceWork(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.svc.FreelanceWorks.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
