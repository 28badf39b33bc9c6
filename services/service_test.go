package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory DB.
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

// setupRaceDB opens a file-backed database in WAL mode with two
// independent connections, so a second session can commit a row while the
// first one is inside a transaction.
func setupRaceDB(t *testing.T) (*gorm.DB, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "race.db") + "?_pragma=journal_mode(WAL)"
	open := func() *gorm.DB {
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)
		return db
	}

	db := open()
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.RefreshToken{},
		&models.Party{}, &models.Politician{}, &models.Topic{},
		&models.Statement{}, &models.StatementTopic{},
		&models.Reaction{}, &models.Comment{}, &models.CommentReport{},
		&models.Follow{}, &models.UserActivity{},
	))
	return db, open()
}

var fixtureSeq int

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	fixtureSeq++
	user := models.User{
		Username:      fmt.Sprintf("user%d", fixtureSeq),
		Email:         fmt.Sprintf("user%d@example.com", fixtureSeq),
		Password:      "hashed",
		Role:          role,
		AccountStatus: "active",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func claimsFor(user *models.User) *utils.UserClaims {
	return &utils.UserClaims{UserID: user.ID, Role: user.Role}
}

func createParty(t *testing.T, db *gorm.DB, name string) *models.Party {
	t.Helper()
	party := models.Party{Name: name, Status: "active"}
	require.NoError(t, db.Create(&party).Error)
	return &party
}

func createPolitician(t *testing.T, db *gorm.DB, name string, partyID *uint) *models.Politician {
	t.Helper()
	politician := models.Politician{Name: name, CurrentPartyID: partyID, Status: "active"}
	require.NoError(t, db.Create(&politician).Error)
	return &politician
}

func createTopic(t *testing.T, db *gorm.DB, name string) *models.Topic {
	t.Helper()
	fixtureSeq++
	topic := models.Topic{
		Name:   name,
		Slug:   fmt.Sprintf("%s-%d", name, fixtureSeq),
		Status: "active",
	}
	require.NoError(t, db.Create(&topic).Error)
	return &topic
}

func createStatement(t *testing.T, db *gorm.DB, politicianID uint, title string, date time.Time) *models.Statement {
	t.Helper()
	statement := models.Statement{
		PoliticianID:  politicianID,
		Title:         title,
		Content:       "content of " + title,
		StatementDate: date,
		Status:        models.StatementPublished,
	}
	require.NoError(t, db.Create(&statement).Error)
	return &statement
}

func linkTopic(t *testing.T, db *gorm.DB, statementID, topicID uint) {
	t.Helper()
	link := models.StatementTopic{StatementID: statementID, TopicID: topicID, Relevance: 50}
	require.NoError(t, db.Create(&link).Error)
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}
