package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

// StatementService is the query engine over published statements and the
// owner of their engagement counters. Filters combine with AND; pagination
// is offset-based with a synthesized continuation cursor.
type StatementService struct {
	DB        *gorm.DB
	reactions *ReactionService
}

func NewStatementService(db *gorm.DB) *StatementService {
	return &StatementService{DB: db, reactions: NewReactionService(db)}
}

type StatementFilters struct {
	PartyID       *uint
	TopicID       *uint
	PoliticianIDs []uint
	DateStart     string // YYYY-MM-DD, inclusive
	DateEnd       string // YYYY-MM-DD, inclusive
	Search        string // substring match on title and content
}

// StatementView is a statement row annotated with its politician's display
// name and current party, plus the viewer's like state.
type StatementView struct {
	models.Statement
	PoliticianName string `json:"politician_name"`
	PartyID        *uint  `json:"party_id"`
	IsLiked        bool   `gorm:"-" json:"is_liked"`
}

type StatementPage struct {
	Statements []StatementView `json:"statements"`
	Total      int64           `json:"total"`
	NextCursor *string         `json:"next_cursor"`
}

type TopicRef struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Category  string `json:"category"`
	Relevance int    `json:"relevance"`
}

type StatementDetail struct {
	StatementView
	Topics []TopicRef `json:"topics"`
}

// StatementInput is the curator-facing create/update payload.
type StatementInput struct {
	PoliticianID  uint
	Title         string
	Content       string
	Source        string
	SourceURL     string
	Context       string
	StatementDate time.Time
	Status        string
	Importance    int
	TopicIDs      []uint
}

// Query filters, sorts and paginates published statements. Only statements
// in published status are eligible; all filters are optional and combine
// with AND.
func (ss *StatementService) Query(filters StatementFilters, sort string, skip, limit int, viewer *utils.UserClaims) (*StatementPage, error) {
	order, err := statementOrder(sort)
	if err != nil {
		return nil, err
	}
	dateStart, dateEnd, err := parseDateRange(filters.DateStart, filters.DateEnd)
	if err != nil {
		return nil, err
	}
	skip, limit = normalizePage(skip, limit)

	var total int64
	if err := ss.filtered(filters, dateStart, dateEnd).Count(&total).Error; err != nil {
		return nil, err
	}

	var views []StatementView
	err = ss.filtered(filters, dateStart, dateEnd).
		Select("statements.*, politicians.name AS politician_name, politicians.current_party_id AS party_id").
		Order(order).
		Offset(skip).
		Limit(limit).
		Find(&views).Error
	if err != nil {
		return nil, err
	}

	if err := ss.annotateLikes(views, viewer); err != nil {
		return nil, err
	}

	page := &StatementPage{Statements: views, Total: total}
	if int64(skip+len(views)) < total {
		cursor := strconv.Itoa(skip + limit)
		page.NextCursor = &cursor
	}
	return page, nil
}

// LikedByUser pages through the published statements the user has liked,
// most recent like first.
func (ss *StatementService) LikedByUser(userID uint, skip, limit int) (*StatementPage, error) {
	skip, limit = normalizePage(skip, limit)

	liked := func() *gorm.DB {
		return ss.DB.Model(&models.Statement{}).
			Joins("JOIN politicians ON politicians.id = statements.politician_id").
			Joins("JOIN reactions ON reactions.target_id = statements.id AND reactions.target_kind = ? AND reactions.reaction_type = ?",
				models.TargetStatement, models.ReactionLike).
			Where("reactions.user_id = ? AND statements.status = ?", userID, models.StatementPublished)
	}

	var total int64
	if err := liked().Count(&total).Error; err != nil {
		return nil, err
	}

	var views []StatementView
	err := liked().
		Select("statements.*, politicians.name AS politician_name, politicians.current_party_id AS party_id").
		Order("reactions.created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].IsLiked = true
	}

	page := &StatementPage{Statements: views, Total: total}
	if int64(skip+len(views)) < total {
		cursor := strconv.Itoa(skip + limit)
		page.NextCursor = &cursor
	}
	return page, nil
}

// Get returns one statement with its topic links regardless of status;
// visibility of drafts is the caller's concern.
func (ss *StatementService) Get(id uint, viewer *utils.UserClaims) (*StatementDetail, error) {
	var view StatementView
	err := ss.DB.Model(&models.Statement{}).
		Joins("JOIN politicians ON politicians.id = statements.politician_id").
		Select("statements.*, politicians.name AS politician_name, politicians.current_party_id AS party_id").
		Where("statements.id = ?", id).
		First(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	topics, err := ss.Topics(id)
	if err != nil {
		return nil, err
	}

	detail := &StatementDetail{StatementView: view, Topics: topics}
	if viewer != nil {
		liked, err := ss.reactions.IsLiked(viewer.UserID, models.TargetStatement, id)
		if err != nil {
			return nil, err
		}
		detail.IsLiked = liked
	}
	return detail, nil
}

// Topics lists a statement's topic links with their relevance scores.
func (ss *StatementService) Topics(statementID uint) ([]TopicRef, error) {
	var refs []TopicRef
	err := ss.DB.Model(&models.StatementTopic{}).
		Joins("JOIN topics ON topics.id = statement_topics.topic_id").
		Select("topics.id, topics.name, topics.slug, topics.category, statement_topics.relevance").
		Where("statement_topics.statement_id = ?", statementID).
		Order("statement_topics.relevance DESC").
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// Create persists a curated statement with its topic links. Admin only.
func (ss *StatementService) Create(actor *utils.UserClaims, input StatementInput) (*models.Statement, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" || input.StatementDate.IsZero() {
		return nil, ErrInvalid
	}

	var n int64
	if err := ss.DB.Model(&models.Politician{}).Where("id = ?", input.PoliticianID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	if err := ss.topicsExist(input.TopicIDs); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.StatementPublished
	}

	statement := models.Statement{
		PoliticianID:  input.PoliticianID,
		Title:         input.Title,
		Content:       input.Content,
		Source:        input.Source,
		SourceURL:     input.SourceURL,
		Context:       input.Context,
		StatementDate: input.StatementDate,
		Status:        status,
		Importance:    input.Importance,
	}

	err := ss.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&statement).Error; err != nil {
			return err
		}
		return linkTopics(tx, statement.ID, input.TopicIDs)
	})
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

// Update rewrites a statement's curated fields and, when TopicIDs is
// non-nil, replaces its topic links. Admin only.
func (ss *StatementService) Update(actor *utils.UserClaims, id uint, input StatementInput) (*models.Statement, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var statement models.Statement
	if err := ss.DB.First(&statement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := ss.topicsExist(input.TopicIDs); err != nil {
		return nil, err
	}

	if input.Title != "" {
		statement.Title = input.Title
	}
	if input.Content != "" {
		statement.Content = input.Content
	}
	if input.Source != "" {
		statement.Source = input.Source
	}
	if input.SourceURL != "" {
		statement.SourceURL = input.SourceURL
	}
	if input.Context != "" {
		statement.Context = input.Context
	}
	if !input.StatementDate.IsZero() {
		statement.StatementDate = input.StatementDate
	}
	if input.Status != "" {
		statement.Status = input.Status
	}
	if input.Importance != 0 {
		statement.Importance = input.Importance
	}

	err := ss.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&statement).Error; err != nil {
			return err
		}
		if input.TopicIDs == nil {
			return nil
		}
		if err := tx.Where("statement_id = ?", statement.ID).Delete(&models.StatementTopic{}).Error; err != nil {
			return err
		}
		return linkTopics(tx, statement.ID, input.TopicIDs)
	})
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

// Delete removes a statement from circulation. Admin only.
func (ss *StatementService) Delete(actor *utils.UserClaims, id uint) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	var statement models.Statement
	if err := ss.DB.First(&statement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return ss.DB.Delete(&statement).Error
}

func (ss *StatementService) filtered(filters StatementFilters, dateStart, dateEnd *time.Time) *gorm.DB {
	query := ss.DB.Model(&models.Statement{}).
		Joins("JOIN politicians ON politicians.id = statements.politician_id").
		Where("statements.status = ?", models.StatementPublished)

	if filters.PartyID != nil {
		query = query.Where("politicians.current_party_id = ?", *filters.PartyID)
	}
	if filters.TopicID != nil {
		query = query.Joins(
			"JOIN statement_topics ON statement_topics.statement_id = statements.id AND statement_topics.topic_id = ?",
			*filters.TopicID,
		)
	}
	if len(filters.PoliticianIDs) > 0 {
		query = query.Where("statements.politician_id IN ?", filters.PoliticianIDs)
	}
	if dateStart != nil {
		query = query.Where("statements.statement_date >= ?", *dateStart)
	}
	if dateEnd != nil {
		// Inclusive day range: anything before the following midnight.
		query = query.Where("statements.statement_date < ?", dateEnd.AddDate(0, 0, 1))
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(statements.title) LIKE ? OR LOWER(statements.content) LIKE ?", pattern, pattern)
	}
	return query
}

func (ss *StatementService) annotateLikes(views []StatementView, viewer *utils.UserClaims) error {
	if viewer == nil || len(views) == 0 {
		return nil
	}
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	liked, err := ss.reactions.LikedSet(viewer.UserID, models.TargetStatement, ids)
	if err != nil {
		return err
	}
	for i := range views {
		views[i].IsLiked = liked[views[i].ID]
	}
	return nil
}

func (ss *StatementService) topicsExist(topicIDs []uint) error {
	if len(topicIDs) == 0 {
		return nil
	}
	var n int64
	if err := ss.DB.Model(&models.Topic{}).Where("id IN ?", topicIDs).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(topicIDs)) {
		return ErrNotFound
	}
	return nil
}

func linkTopics(tx *gorm.DB, statementID uint, topicIDs []uint) error {
	for _, topicID := range topicIDs {
		link := models.StatementTopic{
			StatementID: statementID,
			TopicID:     topicID,
			Relevance:   50,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func statementOrder(sort string) (string, error) {
	switch sort {
	case "", "date_desc":
		return "statements.statement_date DESC", nil
	case "date_asc":
		return "statements.statement_date ASC", nil
	case "likes":
		return "statements.likes_count DESC", nil
	default:
		return "", ErrInvalid
	}
}

func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var startAt, endAt *time.Time
	if start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, nil, ErrInvalid
		}
		startAt = &parsed
	}
	if end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, nil, ErrInvalid
		}
		endAt = &parsed
	}
	if startAt != nil && endAt != nil && endAt.Before(*startAt) {
		return nil, nil, ErrInvalid
	}
	return startAt, endAt, nil
}
