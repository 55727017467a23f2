package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pointdigital/manager-api/internal/model"
)

const (
	principalKey = "principal"
	bearerPrefix = "Bearer "
)

// Authenticator resolves an access token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.Principal, error)
}

// Auth requires a valid bearer access token and stores the principal on the context.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication credentials were not provided",
				"code":  "UNAUTHENTICATED",
			})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		principal, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "token is invalid or expired",
				"code":  "UNAUTHENTICATED",
			})
			return
		}
		SetPrincipal(c, principal)
		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p model.Principal) {
	c.Set(principalKey, p)
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := value.(model.Principal)
	return p, ok && !p.IsZero()
}
