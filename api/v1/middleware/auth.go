package middleware

import (
	"errors"
	"strings"

	"ipocket/internal/auth"
	"ipocket/internal/httpx"
	"ipocket/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired is a middleware that validates the JWT bearer token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpx.FailErr(c, httpx.ErrUnauthorized("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpx.FailErr(c, httpx.ErrUnauthorized("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				httpx.FailErr(c, httpx.ErrTokenExpired("token expired"))
			} else {
				httpx.FailErr(c, httpx.ErrInvalidToken("invalid token"))
			}
			c.Abort()
			return
		}

		c.Set("uid", claims.UID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// EditorRequired rejects requests from roles that cannot mutate data.
// Must run after AuthRequired.
func EditorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.UserRole(c.GetString("role"))
		if !role.CanEdit() {
			httpx.FailErr(c, httpx.ErrForbidden("read-only role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
