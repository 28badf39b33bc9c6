package services

import (
	"testing"

	"github.com/poliscope/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRequiresIdentity(t *testing.T) {
	db := setupTestDB(t)
	service := NewFeedService(db)

	_, err := service.Feed(nil, 0, 20)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFeedWithNoFollowsIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := NewFeedService(db)

	user := createUser(t, db, models.RoleUser)
	politician := createPolitician(t, db, "Tanaka", nil)
	createStatement(t, db, politician.ID, "Not followed", day("2026-01-10"))

	page, err := service.Feed(claimsFor(user), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Statements)
	assert.Nil(t, page.NextCursor)
}

func TestFeedShowsOnlyFollowedPoliticians(t *testing.T) {
	db := setupTestDB(t)
	service := NewFeedService(db)
	follows := NewFollowService(db)

	user := createUser(t, db, models.RoleUser)
	followed := createPolitician(t, db, "Sato", nil)
	other := createPolitician(t, db, "Suzuki", nil)

	createStatement(t, db, followed.ID, "Older followed", day("2026-02-01"))
	createStatement(t, db, followed.ID, "Newer followed", day("2026-02-15"))
	createStatement(t, db, other.ID, "Unfollowed", day("2026-02-20"))

	_, err := follows.Follow(claimsFor(user), models.FollowPolitician, followed.ID)
	require.NoError(t, err)

	page, err := service.Feed(claimsFor(user), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Statements, 2)
	assert.Equal(t, "Newer followed", page.Statements[0].Title)
	assert.Equal(t, "Older followed", page.Statements[1].Title)
}

func TestFeedFollowingTopicsOnlyStaysEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := NewFeedService(db)
	follows := NewFollowService(db)

	user := createUser(t, db, models.RoleUser)
	topic := createTopic(t, db, "economy")
	politician := createPolitician(t, db, "Yamada", nil)
	statement := createStatement(t, db, politician.ID, "Tagged", day("2026-03-01"))
	linkTopic(t, db, statement.ID, topic.ID)

	_, err := follows.Follow(claimsFor(user), models.FollowTopic, topic.ID)
	require.NoError(t, err)

	// The feed is driven by politician follows alone.
	page, err := service.Feed(claimsFor(user), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Statements)
}

func TestFeedPaginates(t *testing.T) {
	db := setupTestDB(t)
	service := NewFeedService(db)
	follows := NewFollowService(db)

	user := createUser(t, db, models.RoleUser)
	politician := createPolitician(t, db, "Ito", nil)
	createStatement(t, db, politician.ID, "One", day("2026-04-01"))
	createStatement(t, db, politician.ID, "Two", day("2026-04-02"))
	createStatement(t, db, politician.ID, "Three", day("2026-04-03"))

	_, err := follows.Follow(claimsFor(user), models.FollowPolitician, politician.ID)
	require.NoError(t, err)

	page, err := service.Feed(claimsFor(user), 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Statements, 2)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "2", *page.NextCursor)

	page, err = service.Feed(claimsFor(user), 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Statements, 1)
	assert.Nil(t, page.NextCursor)
}
