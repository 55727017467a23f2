package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointdigital/manager-api/internal/auth"
	"github.com/pointdigital/manager-api/internal/config"
	"github.com/pointdigital/manager-api/internal/http/middleware"
	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/repository"
	"github.com/pointdigital/manager-api/internal/service"
	"github.com/pointdigital/manager-api/internal/testutil"
)

const testAPIKey = "test-key"

type stubExcel struct{}

func (stubExcel) Vouchers([]model.Voucher, time.Time) ([]byte, error) { return []byte("xlsx"), nil }

type stubPDF struct{}

func (stubPDF) Quotation(q model.Quotation, _ *model.AgencySettings) ([]byte, error) {
	return []byte("%PDF-" + q.ID), nil
}

type stubSender struct{ calls int }

func (s *stubSender) Send(model.SMSCredentials, string, string) (string, error) {
	s.calls++
	return "SM123", nil
}

type testServer struct {
	router *gin.Engine
	sender *stubSender
	tokens map[model.UserRole]string
}

func newTestServer(t *testing.T, pageSize int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := testutil.NewDB(t)
	log := zerolog.Nop()
	cfg := &config.Config{
		Environment: "test",
		Auth: config.AuthConfig{
			AccessSecret:  "access",
			RefreshSecret: "refresh",
			AccessTTL:     time.Hour,
			RefreshTTL:    24 * time.Hour,
			APIKeys:       []string{testAPIKey},
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	users := repository.NewUserRepository(database)
	settings := repository.NewSettingsRepository(database)
	smsLogs := repository.NewSMSLogRepository(database)
	freelancers := repository.NewFreelancerRepository(database)
	sender := &stubSender{}

	authService := service.NewAuthService(users, repository.NewTokenRepository(database), auth.NewManager(cfg.Auth), log)
	userService := service.NewUserService(users, log)
	svc := Services{
		Auth:           authService,
		Users:          userService,
		Settings:       service.NewSettingsService(settings),
		Quotations:     service.NewQuotationService(repository.NewQuotationRepository(database), settings, stubPDF{}),
		Vouchers:       service.NewVoucherService(repository.NewVoucherRepository(database), stubExcel{}),
		Contracts:      service.NewContractService(repository.NewContractRepository(database)),
		Freelancers:    service.NewFreelancerService(freelancers),
		FreelanceWorks: service.NewFreelanceWorkService(repository.NewFreelanceWorkRepository(database), freelancers),
		SMSLogs:        service.NewSMSLogService(smsLogs),
		Notifications:  service.NewNotificationService(settings, smsLogs, sender, "964", log),
	}
	router := NewRouter(NewHandler(svc, pageSize, log), middleware.APIKey(cfg.Auth.APIKeys), middleware.Auth(authService), cfg, log)

	ctx := context.Background()
	require.NoError(t, userService.Bootstrap(ctx, "admin", "admin-pass"))
	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	_, err = userService.Create(ctx, model.Principal{UserID: admin.ID, Username: admin.Username, Role: admin.Role}, service.CreateUserInput{
		Name: "Acc Ount", Username: "acc", Password: "acc-pass", Role: model.RoleAccountant,
	})
	require.NoError(t, err)

	s := &testServer{router: router, sender: sender, tokens: map[model.UserRole]string{}}
	s.tokens[model.RoleAdmin] = s.login(t, "admin", "admin-pass")
	s.tokens[model.RoleAccountant] = s.login(t, "acc", "acc-pass")
	return s
}

func (s *testServer) do(t *testing.T, method, path string, role model.UserRole, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	if token, ok := s.tokens[role]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/token/", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.Access)
	return pair.Access
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_APIKeyRequired(t *testing.T) {
	s := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/quotations/", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail":"Valid X-API-Key header required."}`, w.Body.String())
}

func TestRouter_HealthOutsideAPI(t *testing.T) {
	s := newTestServer(t, 100)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Unauthenticated(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", decode(t, w)["code"])
}

func TestRouter_QuotationLifecycle(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPost, "/api/quotations/", model.RoleAccountant, gin.H{
		"clientName": "Acme",
		"items": []gin.H{
			{"description": "Design", "price": "10", "quantity": 2},
			{"description": "Print", "price": 5},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "QT-000001", created["id"])
	assert.Equal(t, "PENDING", created["status"])
	total, ok := created["total"].(string)
	require.True(t, ok, "total is rendered as a string")
	assert.True(t, decimal.RequireFromString(total).Equal(decimal.NewFromInt(25)))

	// Same route without the trailing slash.
	w = s.do(t, http.MethodGet, "/api/quotations/QT-000001", model.RoleAccountant, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/api/quotations/QT-000001/", model.RoleAccountant, gin.H{"note": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "PERMISSION_DENIED", decode(t, w)["code"])

	w = s.do(t, http.MethodPost, "/api/quotations/QT-000001/set_status/", model.RoleAdmin, gin.H{"status": "BOGUS"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"Invalid status"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/quotations/QT-000001/", model.RoleAdmin, nil)
	assert.Equal(t, "PENDING", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, "/api/quotations/QT-000001/set_status/", model.RoleAdmin, gin.H{"status": "ACCEPTED"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ACCEPTED", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, "/api/quotations/QT-999999/set_status/", model.RoleAdmin, gin.H{"status": "BOGUS"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/quotations/QT-000001/pdf/", model.RoleAccountant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "QT-000001.pdf")

	w = s.do(t, http.MethodDelete, "/api/quotations/QT-000001/", model.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_OwnerWithdrawalHiddenFromAccountant(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPost, "/api/vouchers/", model.RoleAccountant, gin.H{
		"type": "PAYMENT", "amount": "100", "partyName": "Owner", "category": "OWNER_WITHDRAWAL",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	body := decode(t, w)
	assert.Equal(t, "FORBIDDEN_CATEGORY", body["code"])
	assert.Equal(t, service.OwnerWithdrawalDenied, body["error"])

	w = s.do(t, http.MethodPost, "/api/vouchers/", model.RoleAdmin, gin.H{
		"type": "PAYMENT", "amount": "100", "partyName": "Owner", "category": "OWNER_WITHDRAWAL",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/vouchers/", model.RoleAccountant, gin.H{
		"type": "RECEIPT", "amount": "50", "partyName": "Client",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var list []map[string]interface{}
	w = s.do(t, http.MethodGet, "/api/vouchers/", model.RoleAccountant, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "RECEIPT", list[0]["type"])

	w = s.do(t, http.MethodGet, "/api/vouchers/", model.RoleAdmin, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = s.do(t, http.MethodGet, "/api/vouchers/export/", model.RoleAccountant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestRouter_ValidationFields(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPost, "/api/users/", model.RoleAdmin, gin.H{"name": "No Login"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}

func TestRouter_SMSLogsRejectUpdates(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPut, "/api/sms-logs/SMS-000001/", model.RoleAdmin, gin.H{"to": "x"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, w)["code"])

	w = s.do(t, http.MethodPatch, "/api/sms-logs/SMS-000001", model.RoleAdmin, gin.H{"to": "x"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_SendSMS(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPost, "/api/send-sms/", model.RoleAccountant, gin.H{"to": "07701234567", "body": "hi"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
	assert.Zero(t, s.sender.calls)

	w = s.do(t, http.MethodPost, "/api/settings/", model.RoleAdmin, gin.H{
		"name": "Point",
		"twilio": gin.H{
			"accountSid": "AC1", "authToken": "tok", "fromNumber": "+15550000", "enabled": true,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/send-sms/", model.RoleAccountant, gin.H{"to": "07701234567", "body": "hi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"sid":"SM123"}`, w.Body.String())
	assert.Equal(t, 1, s.sender.calls)

	var logs []map[string]interface{}
	w = s.do(t, http.MethodGet, "/api/sms-logs/", model.RoleAdmin, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "SUCCESS", logs[0]["status"])
}

func TestRouter_Pagination(t *testing.T) {
	s := newTestServer(t, 2)

	for _, name := range []string{"A", "B", "C"} {
		w := s.do(t, http.MethodPost, "/api/freelancers/", model.RoleAdmin, gin.H{"name": name})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/api/freelancers/?page=1", model.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 3, body["count"])
	assert.Nil(t, body["previous"])
	assert.Contains(t, body["next"], "page=2")
	assert.Len(t, body["results"], 2)

	w = s.do(t, http.MethodGet, "/api/freelancers/?page=2", model.RoleAdmin, nil)
	body = decode(t, w)
	assert.Nil(t, body["next"])
	assert.NotNil(t, body["previous"])
	assert.Len(t, body["results"], 1)

	w = s.do(t, http.MethodGet, "/api/freelancers/?page=3", model.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid page.", decode(t, w)["error"])

	for _, page := range []string{"99999999999999999999", "1000000000000", "0"} {
		w = s.do(t, http.MethodGet, "/api/freelancers/?page="+page, model.RoleAdmin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "page=%s", page)
	}

	w = s.do(t, http.MethodGet, "/api/freelancers/", model.RoleAdmin, nil)
	var plain []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plain))
	assert.Len(t, plain, 3)
}

func TestRouter_TokenRefreshRotation(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPost, "/api/token", "", gin.H{"username": "admin", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	w = s.do(t, http.MethodPost, "/api/token/refresh/", "", gin.H{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/token/refresh/", "", gin.H{"refresh": pair.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/token/", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ContractClauseReplaceIssuesFreshIDs(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPost, "/api/contracts/", model.RoleAdmin, gin.H{
		"partyAName": "Point", "partyBName": "Client", "totalValue": "1000",
		"clauses": []gin.H{{"title": "Scope", "content": "Monthly"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	clauses := created["clauses"].([]interface{})
	require.Len(t, clauses, 1)
	oldID := clauses[0].(map[string]interface{})["id"]
	assert.Equal(t, "CL-000001", oldID)

	w = s.do(t, http.MethodPut, "/api/contracts/"+created["id"].(string)+"/", model.RoleAdmin, gin.H{
		"clauses": []gin.H{{"title": "Payment", "content": "Net 30"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	clauses = decode(t, w)["clauses"].([]interface{})
	require.Len(t, clauses, 1)
	newID := clauses[0].(map[string]interface{})["id"]
	assert.Equal(t, "CL-000002", newID)
	assert.NotEqual(t, oldID, newID)
}
