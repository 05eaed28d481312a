package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/utils"
)

// WSAuthMiddleware reads the JWT from the query string first, since browsers
// cannot set headers on a websocket handshake, then from the header.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "missing token")
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxRole, claims.Role)
		c.Next()
	}
}
