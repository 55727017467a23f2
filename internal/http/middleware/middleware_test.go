package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pointdigital/manager-api/internal/model"
)

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (model.Principal, error) {
	if token == "good" {
		return model.Principal{UserID: "US-000001", Role: model.RoleAdmin}, nil
	}
	return model.Principal{}, errors.New("bad token")
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKey([]string{"k1", "k2"}), Auth(stubAuthenticator{}))
	r.GET("/whoami", func(c *gin.Context) {
		p, _ := MustPrincipal(c)
		c.String(http.StatusOK, p.UserID)
	})
	return r
}

func TestAPIKeyAndAuth(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		bearer string
		status int
		body   string
	}{
		{"missing key", "", "good", http.StatusForbidden, `{"detail":"Valid X-API-Key header required."}`},
		{"wrong key", "nope", "good", http.StatusForbidden, `{"detail":"Valid X-API-Key header required."}`},
		{"missing token", "k2", "", http.StatusUnauthorized, ""},
		{"bad token", "k1", "bad", http.StatusUnauthorized, ""},
		{"ok", "k1", "good", http.StatusOK, "US-000001"},
	}
	r := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				if tt.status == http.StatusOK {
					assert.Equal(t, tt.body, w.Body.String())
				} else {
					assert.JSONEq(t, tt.body, w.Body.String())
				}
			}
		})
	}
}
