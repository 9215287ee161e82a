package middleware

import (
	"github.com/carpediction/server/internal/pkg/jwt"
	"github.com/carpediction/server/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// TokenCookie is the cookie carrying the session JWT, kept name-compatible
	// with the original client.
	TokenCookie = "usertoken"

	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// Authenticate enforces a valid usertoken cookie, responding 401
// {verified: false} otherwise.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentUsername extracts the authenticated username from context.
func CurrentUsername(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUsername)
	name, _ := v.(string)
	return name
}
