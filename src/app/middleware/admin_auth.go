package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/response"
)

// AdminTokenHeader carries the shared admin secret for privileged routes.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth guards boss lifecycle and reward template routes. Requests
// must present the configured token in X-Admin-Token. An empty
// configured token disables the admin surface entirely.
//
// Usage:
//
//	admin := router.Group("/v1/admin", middleware.AdminAuth(cfg.Admin.Token))
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error{
				Error: response.ErrorDetail{
					Code:      "FORBIDDEN",
					Message:   "admin API is disabled",
					RequestID: requestID,
				},
			})
			return
		}

		provided := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error{
				Error: response.ErrorDetail{
					Code:      "UNAUTHORIZED",
					Message:   "invalid admin token",
					RequestID: requestID,
				},
			})
			return
		}

		c.Next()
	}
}
