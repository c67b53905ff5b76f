package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/models"
)

type contextKey string

const UserContextKey contextKey = "user"

// SetUser stores the authenticated user on the request.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(string(UserContextKey), user)
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(c *gin.Context) *models.User {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if u, ok := user.(*models.User); ok {
		return u
	}
	return nil
}
