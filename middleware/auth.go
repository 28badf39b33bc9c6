package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware requires a valid bearer token for an active account and
// stores the resolved identity in the request context. Accounts suspended
// after the token was issued are rejected here.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errMsg := claimsFromHeader(c, db)
		if errMsg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves an identity when a valid bearer token
// for an active account is present and passes the request through
// anonymously otherwise. Read endpoints use it so anonymous visitors can
// browse while authenticated ones get per-row like annotations.
func OptionalAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, errMsg := claimsFromHeader(c, db); errMsg == "" {
				c.Set(string(utils.UserContextKey), claims)
			}
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, db *gorm.DB) (*utils.UserClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header is required"
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil, "Invalid token format"
	}

	token := bearerToken[1]
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, "Invalid token"
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, "Invalid token claims"
	}

	// The token only proves who signed in; account status and role come
	// from the current user row.
	var user models.User
	if err := db.First(&user, uint(userID)).Error; err != nil {
		return nil, "Invalid token"
	}
	if !user.IsActive() {
		return nil, "Account is not active"
	}

	return &utils.UserClaims{
		UserID: user.ID,
		Role:   user.Role,
	}, ""
}
