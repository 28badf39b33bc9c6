package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/poliscope/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupControllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.RefreshToken{},
		&models.Party{}, &models.Politician{}, &models.Topic{},
		&models.Statement{}, &models.StatementTopic{},
		&models.Reaction{}, &models.Comment{}, &models.CommentReport{},
		&models.Follow{}, &models.UserActivity{},
	))
	return db
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetPoliticianStatementsExistenceCheck(t *testing.T) {
	db := setupControllerDB(t)
	controller := NewStatementController(db)

	router := gin.New()
	router.GET("/politicians/:id/statements", controller.GetPoliticianStatements)

	// Unknown politician is a 404.
	w := getPath(router, "/politicians/9999/statements")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A failing existence check is a server error, not a 404.
	require.NoError(t, db.Migrator().DropTable(&models.Politician{}))
	w = getPath(router, "/politicians/9999/statements")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetPartyStatementsExistenceCheck(t *testing.T) {
	db := setupControllerDB(t)
	controller := NewStatementController(db)

	router := gin.New()
	router.GET("/parties/:id/statements", controller.GetPartyStatements)

	w := getPath(router, "/parties/9999/statements")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, db.Migrator().DropTable(&models.Party{}))
	w = getPath(router, "/parties/9999/statements")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetTopicStatementsExistenceCheck(t *testing.T) {
	db := setupControllerDB(t)
	controller := NewStatementController(db)

	router := gin.New()
	router.GET("/topics/:id/statements", controller.GetTopicStatements)

	w := getPath(router, "/topics/9999/statements")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, db.Migrator().DropTable(&models.Topic{}))
	w = getPath(router, "/topics/9999/statements")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
