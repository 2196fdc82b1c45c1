package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"acservice/internal/model"
	"acservice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tokens *service.TokenIssuer, roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := NewAuthenticator(tokens)
	r.GET("/guarded", auth.RequireRole(roles...), func(c *gin.Context) {
		actor := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	return r
}

func call(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	tokens := service.NewTokenIssuer([]byte("secret"), time.Hour)
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	tech := &model.User{ID: uuid.New(), Role: model.RoleUser}
	adminToken, _, err := tokens.Issue(admin)
	require.NoError(t, err)
	techToken, _, err := tokens.Issue(tech)
	require.NoError(t, err)

	adminOnly := newRouter(tokens, model.RoleAdmin)
	anyone := newRouter(tokens)

	tests := []struct {
		name   string
		router *gin.Engine
		header string
		want   int
	}{
		{"missing header", anyone, "", http.StatusUnauthorized},
		{"wrong scheme", anyone, "Token " + techToken, http.StatusUnauthorized},
		{"garbage token", anyone, "Bearer nope", http.StatusUnauthorized},
		{"any role passes", anyone, "Bearer " + techToken, http.StatusOK},
		{"admin passes admin route", adminOnly, "Bearer " + adminToken, http.StatusOK},
		{"technician forbidden on admin route", adminOnly, "Bearer " + techToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(tt.router, tt.header).Code)
		})
	}
}

func TestRequireRoleSetsActor(t *testing.T) {
	tokens := service.NewTokenIssuer([]byte("secret"), time.Hour)
	tech := &model.User{ID: uuid.New(), Role: model.RoleUser}
	token, _, err := tokens.Issue(tech)
	require.NoError(t, err)

	w := call(newRouter(tokens), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+tech.ID.String()+`","role":"user"}`, w.Body.String())
}

func TestRequireRoleRejectsOtherSecret(t *testing.T) {
	issued, _, err := service.NewTokenIssuer([]byte("other"), time.Hour).Issue(&model.User{ID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)

	w := call(newRouter(service.NewTokenIssuer([]byte("secret"), time.Hour)), "Bearer "+issued)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
