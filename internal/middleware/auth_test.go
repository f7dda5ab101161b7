package middleware

import (
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func claimsSetter(claims *util.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", claims)
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestRoleMiddlewareForbidsNonAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/admin",
		claimsSetter(&util.Claims{UserID: 2, Role: model.RoleCandidate}),
		RoleMiddleware(model.RoleAdmin),
		okHandler,
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), util.ErrPermissionDenied.Error())
}

func TestRoleMiddlewareAdminPassesEverywhere(t *testing.T) {
	r := gin.New()
	r.GET("/candidate-only",
		claimsSetter(&util.Claims{UserID: 1, Role: model.RoleAdmin}),
		RoleMiddleware(model.RoleCandidate),
		okHandler,
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/candidate-only", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareReadsSessionCookie(t *testing.T) {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
		},
	}
	user := &model.User{
		BaseModel: model.BaseModel{ID: 7},
		Email:     "c@example.com",
		Role:      model.RoleCandidate,
	}
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		require.NotNil(t, claims)
		c.String(http.StatusOK, "%d", claims.UserID)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef"}}

	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
