package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pointdigital/manager-api/internal/http/middleware"
	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/service"
)

type Services struct {
	Auth           *service.AuthService
	Users          *service.UserService
	Settings       *service.SettingsService
	Quotations     *service.QuotationService
	Vouchers       *service.VoucherService
	Contracts      *service.ContractService
	Freelancers    *service.FreelancerService
	FreelanceWorks *service.FreelanceWorkService
	SMSLogs        *service.SMSLogService
	Notifications  *service.NotificationService
}

type Handler struct {
	svc      Services
	pageSize int
	log      zerolog.Logger
}

func NewHandler(svc Services, pageSize int, log zerolog.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Handler{svc: svc, pageSize: pageSize, log: log}
}

// route registers path with and without the trailing slash.
func route(g *gin.RouterGroup, method, path string, handlers ...gin.HandlerFunc) {
	g.Handle(method, path, handlers...)
	g.Handle(method, path+"/", handlers...)
}

func (h *Handler) Register(api *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	route(api, http.MethodPost, "/token", h.obtainToken)
	route(api, http.MethodPost, "/token/refresh", h.refreshToken)

	protected := api.Group("")
	protected.Use(authMiddleware)

	route(protected, http.MethodGet, "/users", h.listUsers)
	route(protected, http.MethodPost, "/users", h.createUser)
	route(protected, http.MethodGet, "/users/me", h.me)
	route(protected, http.MethodGet, "/users/:id", h.getUser)
	route(protected, http.MethodPut, "/users/:id", h.updateUser)
	route(protected, http.MethodPatch, "/users/:id", h.updateUser)
	route(protected, http.MethodDelete, "/users/:id", h.deleteUser)

	route(protected, http.MethodGet, "/settings", h.listSettings)
	route(protected, http.MethodPost, "/settings", h.createSettings)
	route(protected, http.MethodGet, "/settings/:id", h.getSettings)
	route(protected, http.MethodPut, "/settings/:id", h.updateSettings)
	route(protected, http.MethodPatch, "/settings/:id", h.updateSettings)
	route(protected, http.MethodDelete, "/settings/:id", h.deleteSettings)

	route(protected, http.MethodGet, "/quotations", h.listQuotations)
	route(protected, http.MethodPost, "/quotations", h.createQuotation)
	route(protected, http.MethodGet, "/quotations/:id", h.getQuotation)
	route(protected, http.MethodPut, "/quotations/:id", h.updateQuotation)
	route(protected, http.MethodPatch, "/quotations/:id", h.updateQuotation)
	route(protected, http.MethodDelete, "/quotations/:id", h.deleteQuotation)
	route(protected, http.MethodPost, "/quotations/:id/set_status", h.setQuotationStatus)
	route(protected, http.MethodGet, "/quotations/:id/pdf", h.quotationPDF)

	route(protected, http.MethodGet, "/vouchers", h.listVouchers)
	route(protected, http.MethodPost, "/vouchers", h.createVoucher)
	route(protected, http.MethodGet, "/vouchers/export", h.exportVouchers)
	route(protected, http.MethodGet, "/vouchers/:id", h.getVoucher)
	route(protected, http.MethodPut, "/vouchers/:id", h.updateVoucher)
	route(protected, http.MethodPatch, "/vouchers/:id", h.updateVoucher)
	route(protected, http.MethodDelete, "/vouchers/:id", h.deleteVoucher)

	route(protected, http.MethodGet, "/contracts", h.listContracts)
	route(protected, http.MethodPost, "/contracts", h.createContract)
	route(protected, http.MethodGet, "/contracts/:id", h.getContract)
	route(protected, http.MethodPut, "/contracts/:id", h.updateContract)
	route(protected, http.MethodPatch, "/contracts/:id", h.updateContract)
	route(protected, http.MethodDelete, "/contracts/:id", h.deleteContract)

	route(protected, http.MethodGet, "/freelancers", h.listFreelancers)
	route(protected, http.MethodPost, "/freelancers", h.createFreelancer)
	route(protected, http.MethodGet, "/freelancers/:id", h.getFreelancer)
	route(protected, http.MethodPut, "/freelancers/:id", h.updateFreelancer)
	route(protected, http.MethodPatch, "/freelancers/:id", h.updateFreelancer)
	route(protected, http.MethodDelete, "/freelancers/:id", h.deleteFreelancer)

	route(protected, http.MethodGet, "/freelance-works", h.listFreelanceWorks)
	route(protected, http.MethodPost, "/freelance-works", h.createFreelanceWork)
	route(protected, http.MethodGet, "/freelance-works/:id", h.getFreelanceWork)
	route(protected, http.MethodPut, "/freelance-works/:id", h.updateFreelanceWork)
	route(protected, http.MethodPatch, "/freelance-works/:id", h.updateFreelanceWork)
	route(protected, http.MethodDelete, "/freelance-works/:id", h.deleteFreelanceWork)

	// Log entries are append-only: no PUT or PATCH.
	route(protected, http.MethodGet, "/sms-logs", h.listSMSLogs)
	route(protected, http.MethodPost, "/sms-logs", h.createSMSLog)
	route(protected, http.MethodGet, "/sms-logs/:id", h.getSMSLog)
	route(protected, http.MethodDelete, "/sms-logs/:id", h.deleteSMSLog)

	route(protected, http.MethodPost, "/send-sms", h.sendSMS)
}

func errorBody(message, code string) gin.H {
	return gin.H{"error": message, "code": code}
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody("missing principal", "UNAUTHENTICATED"))
	}
	return p, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, errorBody(err.Error(), "UNAUTHENTICATED"))
	case errors.Is(err, service.ErrForbiddenCategory):
		c.JSON(http.StatusForbidden, errorBody(service.OwnerWithdrawalDenied, "FORBIDDEN_CATEGORY"))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorBody(err.Error(), "PERMISSION_DENIED"))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorBody(err.Error(), "VALIDATION_ERROR"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody(err.Error(), "NOT_FOUND"))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorBody(err.Error(), "CONFLICT"))
	case errors.Is(err, service.ErrUpstream):
		h.log.Warn().Err(err).Str("path", c.FullPath()).Msg("upstream failure")
		c.JSON(http.StatusBadGateway, errorBody(err.Error(), "UPSTREAM_ERROR"))
	default:
		h.log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, errorBody("internal error", "INTERNAL"))
	}
}

func (h *Handler) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorBody(err))
		return false
	}
	return true
}

func writeDocument(c *gin.Context, doc *service.Document) {
	c.Header("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
