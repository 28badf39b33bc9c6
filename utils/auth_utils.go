package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/models"
)

type UserClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// IsModerator reports whether the claims carry moderation rights.
func (u *UserClaims) IsModerator() bool {
	return u != nil && (u.Role == models.RoleModerator || u.Role == models.RoleAdmin)
}

func (u *UserClaims) IsAdmin() bool {
	return u != nil && u.Role == models.RoleAdmin
}

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the authenticated identity from the gin context, or nil
// for an anonymous request.
func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
