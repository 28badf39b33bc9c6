package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/poliscope/api-go/models"
	"gorm.io/gorm"
)

// StanceService aggregates topic-level summaries from the statement/topic
// relevance links of a politician or party. The stance label itself comes
// from a pluggable scorer; the default is a placeholder until a real
// classifier exists.
type StanceService struct {
	DB     *gorm.DB
	Scorer StanceScorer
}

func NewStanceService(db *gorm.DB) *StanceService {
	return &StanceService{DB: db, Scorer: NeutralScorer{}}
}

type StanceResult struct {
	Stance     string `json:"stance"`     // support, oppose, neutral
	Confidence int    `json:"confidence"` // 0-100
	Summary    string `json:"summary"`
}

// StanceScorer derives a stance from a topic's recent statements. Swapping
// in a real classifier must not reshape the aggregation output.
type StanceScorer interface {
	Score(topic models.Topic, recent []models.Statement, total int64) StanceResult
}

// NeutralScorer is the stand-in scorer: always neutral at fixed confidence,
// with a generated summary line.
type NeutralScorer struct{}

func (NeutralScorer) Score(topic models.Topic, recent []models.Statement, total int64) StanceResult {
	return StanceResult{
		Stance:     "neutral",
		Confidence: 50,
		Summary:    fmt.Sprintf("%d statements recorded on %s.", total, topic.Name),
	}
}

type TopicStance struct {
	TopicID     uint       `json:"topic_id"`
	TopicName   string     `json:"topic_name"`
	TopicSlug   string     `json:"topic_slug"`
	Stance      string     `json:"stance"`
	Confidence  int        `json:"confidence"`
	Summary     string     `json:"summary"`
	Count       int64      `json:"count"`
	LastUpdated *time.Time `json:"last_updated"`
}

type PartyStance struct {
	PartyID    uint   `json:"party_id"`
	PartyName  string `json:"party_name"`
	Stance     string `json:"stance"`
	Confidence int    `json:"confidence"`
	Summary    string `json:"summary"`
	Count      int64  `json:"count"`
}

// recentSample bounds how many statements feed the scorer per topic.
const recentSample = 5

// AggregateForPolitician summarizes each topic the politician has
// published statements on, ranked by statement count. Topics with zero
// statements are omitted.
func (sts *StanceService) AggregateForPolitician(politicianID uint) ([]TopicStance, error) {
	var n int64
	if err := sts.DB.Model(&models.Politician{}).Where("id = ?", politicianID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return sts.aggregate([]uint{politicianID})
}

// AggregateForParty aggregates over the party's active politicians. A
// party with no active politicians yields an empty result.
func (sts *StanceService) AggregateForParty(partyID uint) ([]TopicStance, error) {
	var party models.Party
	if err := sts.DB.First(&party, partyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	politicianIDs, err := sts.activePoliticians(partyID)
	if err != nil {
		return nil, err
	}
	if len(politicianIDs) == 0 {
		return []TopicStance{}, nil
	}
	return sts.aggregate(politicianIDs)
}

// PartyStancesForTopic summarizes, per active party, the statements its
// active politicians have published on the topic. Parties with no
// statements on the topic are skipped.
func (sts *StanceService) PartyStancesForTopic(topicID uint) ([]PartyStance, error) {
	var topic models.Topic
	if err := sts.DB.First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var parties []models.Party
	if err := sts.DB.Where("status = ?", "active").Find(&parties).Error; err != nil {
		return nil, err
	}

	result := []PartyStance{}
	for _, party := range parties {
		politicianIDs, err := sts.activePoliticians(party.ID)
		if err != nil {
			return nil, err
		}
		if len(politicianIDs) == 0 {
			continue
		}

		var count int64
		err = sts.DB.Model(&models.Statement{}).
			Joins("JOIN statement_topics ON statement_topics.statement_id = statements.id").
			Where("statements.politician_id IN ? AND statement_topics.topic_id = ? AND statements.status = ?",
				politicianIDs, topicID, models.StatementPublished).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}

		recent, err := sts.recentStatements(politicianIDs, topicID)
		if err != nil {
			return nil, err
		}
		scored := sts.Scorer.Score(topic, recent, count)
		result = append(result, PartyStance{
			PartyID:    party.ID,
			PartyName:  party.Name,
			Stance:     scored.Stance,
			Confidence: scored.Confidence,
			Summary:    scored.Summary,
			Count:      count,
		})
	}
	return result, nil
}

func (sts *StanceService) aggregate(politicianIDs []uint) ([]TopicStance, error) {
	var groups []struct {
		TopicID uint
		Total   int64
	}
	err := sts.DB.Model(&models.StatementTopic{}).
		Select("statement_topics.topic_id AS topic_id, COUNT(statement_topics.statement_id) AS total").
		Joins("JOIN statements ON statements.id = statement_topics.statement_id").
		Where("statements.politician_id IN ? AND statements.status = ? AND statements.deleted_at IS NULL",
			politicianIDs, models.StatementPublished).
		Group("statement_topics.topic_id").
		Order("total DESC").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}

	result := []TopicStance{}
	for _, group := range groups {
		var topic models.Topic
		if err := sts.DB.First(&topic, group.TopicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Link to a topic deleted out of band; skip it.
				continue
			}
			return nil, err
		}

		recent, err := sts.recentStatements(politicianIDs, group.TopicID)
		if err != nil {
			return nil, err
		}

		scored := sts.Scorer.Score(topic, recent, group.Total)
		stance := TopicStance{
			TopicID:    topic.ID,
			TopicName:  topic.Name,
			TopicSlug:  topic.Slug,
			Stance:     scored.Stance,
			Confidence: scored.Confidence,
			Summary:    scored.Summary,
			Count:      group.Total,
		}
		if len(recent) > 0 {
			last := recent[0].StatementDate
			stance.LastUpdated = &last
		}
		result = append(result, stance)
	}
	return result, nil
}

func (sts *StanceService) recentStatements(politicianIDs []uint, topicID uint) ([]models.Statement, error) {
	var statements []models.Statement
	err := sts.DB.Model(&models.Statement{}).
		Joins("JOIN statement_topics ON statement_topics.statement_id = statements.id").
		Where("statements.politician_id IN ? AND statement_topics.topic_id = ? AND statements.status = ?",
			politicianIDs, topicID, models.StatementPublished).
		Order("statements.statement_date DESC").
		Limit(recentSample).
		Find(&statements).Error
	return statements, err
}

func (sts *StanceService) activePoliticians(partyID uint) ([]uint, error) {
	var ids []uint
	err := sts.DB.Model(&models.Politician{}).
		Where("current_party_id = ? AND status = ?", partyID, "active").
		Pluck("id", &ids).Error
	return ids, err
}
