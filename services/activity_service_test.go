package services

import (
	"testing"

	"github.com/poliscope/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecordsEngagementActions(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	reactions := NewReactionService(db)
	comments := NewCommentService(db)
	follows := NewFollowService(db)

	user := createUser(t, db, models.RoleUser)
	other := createUser(t, db, models.RoleUser)
	politician := createPolitician(t, db, "Tanaka", nil)
	statement := createStatement(t, db, politician.ID, "Budget speech", day("2026-01-10"))

	_, err := reactions.Add(claimsFor(user), models.TargetStatement, statement.ID, "like")
	require.NoError(t, err)
	_, err = comments.Create(claimsFor(user), statement.ID, "Noted", nil)
	require.NoError(t, err)
	_, err = follows.Follow(claimsFor(user), models.FollowPolitician, politician.ID)
	require.NoError(t, err)
	_, err = follows.Follow(claimsFor(other), models.FollowPolitician, politician.ID)
	require.NoError(t, err)

	activities, total, err := service.History(user.ID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, activities, 3)
	// Newest first.
	assert.Equal(t, "follow", activities[0].ActivityType)
	assert.Equal(t, "comment", activities[1].ActivityType)
	assert.Equal(t, "like", activities[2].ActivityType)
	for _, activity := range activities {
		assert.Equal(t, user.ID, activity.UserID)
	}
}

func TestHistoryDoesNotRepeatIdempotentNoops(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	reactions := NewReactionService(db)

	user := createUser(t, db, models.RoleUser)
	politician := createPolitician(t, db, "Sato", nil)
	statement := createStatement(t, db, politician.ID, "Tax reform", day("2026-02-01"))

	_, err := reactions.Add(claimsFor(user), models.TargetStatement, statement.ID, "like")
	require.NoError(t, err)
	_, err = reactions.Add(claimsFor(user), models.TargetStatement, statement.ID, "like")
	require.NoError(t, err)

	_, total, err := service.History(user.ID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestHistoryPaginates(t *testing.T) {
	db := setupTestDB(t)
	service := NewActivityService(db)
	follows := NewFollowService(db)

	user := createUser(t, db, models.RoleUser)
	for _, name := range []string{"Suzuki", "Yamada", "Ito"} {
		politician := createPolitician(t, db, name, nil)
		_, err := follows.Follow(claimsFor(user), models.FollowPolitician, politician.ID)
		require.NoError(t, err)
	}

	activities, total, err := service.History(user.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, activities, 2)

	activities, _, err = service.History(user.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}
