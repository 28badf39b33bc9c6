package services

import (
	"fmt"
	"testing"

	"github.com/poliscope/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateForPolitician(t *testing.T) {
	db := setupTestDB(t)
	service := NewStanceService(db)

	politician := createPolitician(t, db, "Tanaka", nil)
	economy := createTopic(t, db, "economy")
	defense := createTopic(t, db, "defense")
	createTopic(t, db, "untouched")

	first := createStatement(t, db, politician.ID, "Budget", day("2026-01-10"))
	second := createStatement(t, db, politician.ID, "Stimulus", day("2026-02-10"))
	third := createStatement(t, db, politician.ID, "Bases", day("2026-03-10"))
	linkTopic(t, db, first.ID, economy.ID)
	linkTopic(t, db, second.ID, economy.ID)
	linkTopic(t, db, third.ID, defense.ID)

	stances, err := service.AggregateForPolitician(politician.ID)
	require.NoError(t, err)
	require.Len(t, stances, 2)

	// Topics without statements are omitted; ordering is by count.
	assert.Equal(t, economy.ID, stances[0].TopicID)
	assert.Equal(t, int64(2), stances[0].Count)
	assert.Equal(t, defense.ID, stances[1].TopicID)
	assert.Equal(t, int64(1), stances[1].Count)

	assert.Equal(t, "neutral", stances[0].Stance)
	assert.Equal(t, 50, stances[0].Confidence)
	assert.Equal(t, "2 statements recorded on economy.", stances[0].Summary)

	require.NotNil(t, stances[0].LastUpdated)
	assert.True(t, stances[0].LastUpdated.Equal(day("2026-02-10")))
}

func TestAggregateForMissingPolitician(t *testing.T) {
	db := setupTestDB(t)
	service := NewStanceService(db)

	_, err := service.AggregateForPolitician(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAggregateIgnoresUnpublishedStatements(t *testing.T) {
	db := setupTestDB(t)
	service := NewStanceService(db)

	politician := createPolitician(t, db, "Sato", nil)
	topic := createTopic(t, db, "energy")
	draft := createStatement(t, db, politician.ID, "Draft", day("2026-04-01"))
	linkTopic(t, db, draft.ID, topic.ID)
	require.NoError(t, db.Model(&models.Statement{}).Where("id = ?", draft.ID).
		Update("status", models.StatementDraft).Error)

	stances, err := service.AggregateForPolitician(politician.ID)
	require.NoError(t, err)
	assert.Empty(t, stances)
}

func TestAggregateForParty(t *testing.T) {
	db := setupTestDB(t)
	service := NewStanceService(db)

	party := createParty(t, db, "Reform Party")
	active := createPolitician(t, db, "Suzuki", &party.ID)
	former := createPolitician(t, db, "Yamada", &party.ID)
	require.NoError(t, db.Model(&models.Politician{}).Where("id = ?", former.ID).
		Update("status", "former").Error)

	topic := createTopic(t, db, "welfare")
	counted := createStatement(t, db, active.ID, "Pension floor", day("2026-05-01"))
	skipped := createStatement(t, db, former.ID, "Old promise", day("2026-05-02"))
	linkTopic(t, db, counted.ID, topic.ID)
	linkTopic(t, db, skipped.ID, topic.ID)

	stances, err := service.AggregateForParty(party.ID)
	require.NoError(t, err)
	require.Len(t, stances, 1)
	assert.Equal(t, topic.ID, stances[0].TopicID)
	// Former members do not contribute.
	assert.Equal(t, int64(1), stances[0].Count)

	_, err = service.AggregateForParty(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAggregateForPartyWithNoActivePoliticians(t *testing.T) {
	db := setupTestDB(t)
	service := NewStanceService(db)

	party := createParty(t, db, "Ghost Party")

	stances, err := service.AggregateForParty(party.ID)
	require.NoError(t, err)
	assert.Empty(t, stances)
}

func TestPartyStancesForTopic(t *testing.T) {
	db := setupTestDB(t)
	service := NewStanceService(db)

	vocal := createParty(t, db, "Vocal Party")
	silent := createParty(t, db, "Silent Party")
	speaker := createPolitician(t, db, "Ito", &vocal.ID)
	createPolitician(t, db, "Kobayashi", &silent.ID)

	topic := createTopic(t, db, "immigration")
	statement := createStatement(t, db, speaker.ID, "Open the doors", day("2026-06-01"))
	linkTopic(t, db, statement.ID, topic.ID)

	stances, err := service.PartyStancesForTopic(topic.ID)
	require.NoError(t, err)
	require.Len(t, stances, 1)
	assert.Equal(t, vocal.ID, stances[0].PartyID)
	assert.Equal(t, "Vocal Party", stances[0].PartyName)
	assert.Equal(t, int64(1), stances[0].Count)
	assert.Equal(t, "neutral", stances[0].Stance)

	_, err = service.PartyStancesForTopic(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

type fixedScorer struct{}

func (fixedScorer) Score(topic models.Topic, recent []models.Statement, total int64) StanceResult {
	return StanceResult{
		Stance:     "support",
		Confidence: 90,
		Summary:    fmt.Sprintf("strongly for %s", topic.Name),
	}
}

func TestScorerIsPluggable(t *testing.T) {
	db := setupTestDB(t)
	service := NewStanceService(db)
	service.Scorer = fixedScorer{}

	politician := createPolitician(t, db, "Watanabe", nil)
	topic := createTopic(t, db, "trade")
	statement := createStatement(t, db, politician.ID, "Tariff cuts", day("2026-07-01"))
	linkTopic(t, db, statement.ID, topic.ID)

	stances, err := service.AggregateForPolitician(politician.ID)
	require.NoError(t, err)
	require.Len(t, stances, 1)
	assert.Equal(t, "support", stances[0].Stance)
	assert.Equal(t, 90, stances[0].Confidence)
	assert.Equal(t, "strongly for trade", stances[0].Summary)
	// The aggregation shape is unchanged by the scorer.
	assert.Equal(t, int64(1), stances[0].Count)
}
