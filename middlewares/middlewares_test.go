package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigbadbobbo/foodtruck-api/utils"
)

const secret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": utils.CurrentUserID(c), "role": utils.CurrentRole(c)})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, id, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, role, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret, "operator", "admin"))

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = do(r, token(t, "u2", "user"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User role user is not authorized")

	w = do(r, token(t, "u1", "operator"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1","role":"operator"}`, w.Body.String())
}

func TestAuthMiddlewareAnyRole(t *testing.T) {
	r := newRouter(AuthMiddleware(secret))
	assert.Equal(t, http.StatusOK, do(r, token(t, "u", "user")).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "not-a-token").Code)
}

func TestRequireRoleAfterAuth(t *testing.T) {
	r := newRouter(AuthMiddleware(secret), RequireRole("user", "admin"))
	assert.Equal(t, http.StatusOK, do(r, token(t, "u", "user")).Code)

	w := do(r, token(t, "o", "operator"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User role operator is not authorized")

	// without a preceding AuthMiddleware nobody gets through
	bare := newRouter(RequireRole("user"))
	assert.Equal(t, http.StatusUnauthorized, do(bare, token(t, "u", "user")).Code)
}

func TestWSAuthMiddlewareQueryToken(t *testing.T) {
	r := gin.New()
	r.GET("/ws", WSAuthMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, utils.CurrentUserID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token(t, "u9", "user"), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u9", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := newRouter(rl.Handler())

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "").Code)

	rl.Cleanup(0)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
}
