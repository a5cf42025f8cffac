package middleware

import (
	"net/http"
	"strings"

	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	// AccessTokenCookie carries the access token for browser sessions
	AccessTokenCookie = "access_token"

	ctxUserID = "userID"
	ctxRole   = "role"
)

// AuthMiddleware validates the JWT access token from the Authorization header
// or, for browser sessions, the access token cookie
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}
		if token == "" {
			token, _ = c.Cookie(AccessTokenCookie)
		}
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated.")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(token)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// PageAuth guards server rendered pages; visitors without a valid session cookie go to /login
func PageAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(AccessTokenCookie)
		claims, err := utils.ValidateAccessToken(token)
		if token == "" || err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRoles allows the request when the user's role is in the comma separated list
func RequireRoles(roles string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range strings.Split(roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			allowed[r] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if _, ok := allowed[role.(string)]; !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "This action is unauthorized.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, 0 for anonymous requests
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

// CurrentRole returns the authenticated user's role
func CurrentRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// bearerToken reads the Authorization header. A missing header yields "", true.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", true
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
