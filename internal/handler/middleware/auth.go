package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"minimarket-backoffice/internal/domain/user"
	"minimarket-backoffice/internal/handler/httperr"
	"minimarket-backoffice/internal/pkg/cookie"
	"minimarket-backoffice/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

// Roles form a strict ladder; a higher level implies every permission of
// the levels below it.
var roleLevels = map[user.Role]int{
	user.RoleCashier: 1,
	user.RoleAdmin:   2,
}

type AuthMiddleware struct {
	tokens usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokenValidator}
}

// extractToken prefers the session cookie and falls back to a bearer
// Authorization header, which is what API clients send.
func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func abortWithStatus(c *gin.Context, status int, msg string) {
	resp := httperr.Response{Status: status}
	resp.Error.Message = msg
	c.AbortWithStatusJSON(status, resp)
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortWithStatus(c, http.StatusUnauthorized, "Access token required")
			return
		}

		userID, role, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("token rejected", "error", err.Error())
			abortWithStatus(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"user_id": userID.String(),
			"role":    string(role),
		})
		c.Next()
	}
}

// RequireRoleAtLeast gates catalog and discount administration to admins.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			abortWithStatus(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		if roleLevels[role] < roleLevels[minRole] {
			abortWithStatus(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	v, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}
