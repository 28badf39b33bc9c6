package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *models.User, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	user := models.User{
		Username:      "actor",
		Email:         "actor@example.com",
		Password:      "hashed",
		Role:          models.RoleUser,
		AccountStatus: "active",
	}
	require.NoError(t, db.Create(&user).Error)

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return db, &user, token
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewarePassesActiveAccount(t *testing.T) {
	db, user, token := setupAuthTest(t)

	router := gin.New()
	router.Use(AuthMiddleware(db))
	router.GET("/ping", func(c *gin.Context) {
		claims := utils.GetUser(c)
		require.NotNil(t, claims)
		assert.Equal(t, user.ID, claims.UserID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsSuspendedAccount(t *testing.T) {
	db, user, token := setupAuthTest(t)

	router := gin.New()
	router.Use(AuthMiddleware(db))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// Suspension after the token was issued still locks the account out.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("account_status", "suspended").Error)

	w := doRequest(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsDeletedAccount(t *testing.T) {
	db, user, token := setupAuthTest(t)

	router := gin.New()
	router.Use(AuthMiddleware(db))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	w := doRequest(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddlewareTreatsSuspendedAsAnonymous(t *testing.T) {
	db, user, token := setupAuthTest(t)

	router := gin.New()
	router.Use(OptionalAuthMiddleware(db))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": utils.GetUser(c) == nil})
	})

	w := doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":false`)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("account_status", "suspended").Error)

	w = doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}
