package middleware

import (
	"net/http"
	"slices"
	"strings"

	"acservice/internal/model"
	"acservice/internal/service"
	"acservice/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// TokenParser verifies a bearer token and returns its claims
type TokenParser interface {
	Parse(tokenString string) (*service.Claims, error)
}

// Authenticator guards routes with the session tokens issued at login
type Authenticator struct {
	tokens TokenParser
}

func NewAuthenticator(tokens TokenParser) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// RequireRole validates the bearer token and checks the caller's role is in allowedRoles.
// With no roles given any authenticated caller passes.
func (a *Authenticator) RequireRole(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return
		}

		claims, err := a.tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// CurrentActor returns the caller set by RequireRole
func CurrentActor(c *gin.Context) service.Actor {
	id := c.GetString(ctxUserID)
	role, _ := c.Get(ctxUserRole)
	r, _ := role.(model.Role)
	return service.Actor{ID: id, Role: r}
}
