package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const APIKeyHeader = "X-API-Key"

// APIKey rejects requests whose X-API-Key is not in keys. It runs before
// authentication so unknown clients never reach the token check.
func APIKey(keys []string) gin.HandlerFunc {
	allowed := make([][]byte, 0, len(keys))
	for _, k := range keys {
		allowed = append(allowed, []byte(k))
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		given := []byte(c.GetHeader(APIKeyHeader))
		if len(given) > 0 {
			for _, k := range allowed {
				if subtle.ConstantTimeCompare(given, k) == 1 {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Valid X-API-Key header required."})
	}
}
