package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/utils"
)

// AuthMiddleware checks the bearer token and, when roles are given, that the
// caller holds one of them. Both failures answer 401.
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "Not authorized to access this route")
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			resp.Unauthorized(c, "Not authorized to access this route")
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxRole, claims.Role)

		if len(requiredRoles) > 0 && !hasRole(claims.Role, requiredRoles) {
			resp.Unauthorized(c, "User role "+claims.Role+" is not authorized to access this route")
			return
		}

		c.Next()
	}
}

// RequireRole gates on the role AuthMiddleware already put in the context,
// for routes inside a group that verified the token once.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.CurrentRole(c)
		if utils.CurrentUserID(c) == "" {
			resp.Unauthorized(c, "Not authorized to access this route")
			return
		}
		if !hasRole(role, roles) {
			resp.Unauthorized(c, "User role "+role+" is not authorized to access this route")
			return
		}
		c.Next()
	}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
