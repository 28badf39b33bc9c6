package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/services"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

type StatementController struct {
	DB         *gorm.DB
	Statements *services.StatementService
	Reactions  *services.ReactionService
}

type StatementQuery struct {
	Skip            int    `form:"skip,default=0" binding:"min=0"`
	Limit           int    `form:"limit,default=20" binding:"min=1,max=100"`
	Sort            string `form:"sort"`
	FilterParty     *uint  `form:"filter_party"`
	FilterTopic     *uint  `form:"filter_topic"`
	FilterDateStart string `form:"filter_date_start"`
	FilterDateEnd   string `form:"filter_date_end"`
	Search          string `form:"search"`
}

type StatementInput struct {
	PoliticianID  uint   `json:"politicianId" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	Source        string `json:"source"`
	SourceURL     string `json:"sourceUrl"`
	Context       string `json:"context"`
	StatementDate string `json:"statementDate" binding:"required"`
	Status        string `json:"status" binding:"omitempty,oneof=published draft archived"`
	Importance    int    `json:"importance" binding:"min=0,max=100"`
	TopicIDs      []uint `json:"topicIds"`
}

// StatementUpdateInput carries partial updates; empty fields are left as
// they are.
type StatementUpdateInput struct {
	PoliticianID  uint   `json:"politicianId"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Source        string `json:"source"`
	SourceURL     string `json:"sourceUrl"`
	Context       string `json:"context"`
	StatementDate string `json:"statementDate"`
	Status        string `json:"status" binding:"omitempty,oneof=published draft archived"`
	Importance    int    `json:"importance" binding:"min=0,max=100"`
	TopicIDs      []uint `json:"topicIds"`
}

func NewStatementController(db *gorm.DB) *StatementController {
	return &StatementController{
		DB:         db,
		Statements: services.NewStatementService(db),
		Reactions:  services.NewReactionService(db),
	}
}

// ListStatements returns published statements with all filters applied.
func (sc *StatementController) ListStatements(c *gin.Context) {
	var query StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	page, err := sc.Statements.Query(services.StatementFilters{
		PartyID:   query.FilterParty,
		TopicID:   query.FilterTopic,
		DateStart: query.FilterDateStart,
		DateEnd:   query.FilterDateEnd,
		Search:    query.Search,
	}, query.Sort, query.Skip, query.Limit, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondStatementPage(c, page, query.Skip, query.Limit)
}

// SearchStatements is keyword search over the same query engine.
func (sc *StatementController) SearchStatements(c *gin.Context) {
	var query StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required", "success": false})
		return
	}

	page, err := sc.Statements.Query(services.StatementFilters{
		PartyID:   query.FilterParty,
		TopicID:   query.FilterTopic,
		DateStart: query.FilterDateStart,
		DateEnd:   query.FilterDateEnd,
		Search:    q,
	}, "date_desc", query.Skip, query.Limit, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondStatementPage(c, page, query.Skip, query.Limit)
}

func (sc *StatementController) GetStatement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := sc.Statements.Get(id, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "statement": detail})
}

// GetPoliticianStatements lists one politician's published statements.
func (sc *StatementController) GetPoliticianStatements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var n int64
	if err := sc.DB.Model(&models.Politician{}).Where("id = ?", id).Count(&n).Error; err != nil {
		abortWithError(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Politician not found", "success": false})
		return
	}

	page, err := sc.Statements.Query(services.StatementFilters{
		PoliticianIDs: []uint{id},
	}, query.Sort, query.Skip, query.Limit, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondStatementPage(c, page, query.Skip, query.Limit)
}

func (sc *StatementController) GetPartyStatements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var n int64
	if err := sc.DB.Model(&models.Party{}).Where("id = ?", id).Count(&n).Error; err != nil {
		abortWithError(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Party not found", "success": false})
		return
	}

	page, err := sc.Statements.Query(services.StatementFilters{
		PartyID: &id,
	}, query.Sort, query.Skip, query.Limit, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondStatementPage(c, page, query.Skip, query.Limit)
}

func (sc *StatementController) GetTopicStatements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var n int64
	if err := sc.DB.Model(&models.Topic{}).Where("id = ?", id).Count(&n).Error; err != nil {
		abortWithError(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Topic not found", "success": false})
		return
	}

	page, err := sc.Statements.Query(services.StatementFilters{
		TopicID: &id,
	}, query.Sort, query.Skip, query.Limit, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondStatementPage(c, page, query.Skip, query.Limit)
}

// LikeStatement records a like; liking twice is a no-op that still returns
// the current count.
func (sc *StatementController) LikeStatement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	likes, err := sc.Reactions.Add(utils.GetUser(c), models.TargetStatement, id, models.ReactionLike)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likesCount": likes})
}

func (sc *StatementController) UnlikeStatement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	likes, err := sc.Reactions.Remove(utils.GetUser(c), models.TargetStatement, id, models.ReactionLike)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likesCount": likes})
}

// CreateStatement creates a curated statement (admin only).
func (sc *StatementController) CreateStatement(c *gin.Context) {
	var input StatementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	statementDate, err := time.Parse("2006-01-02", input.StatementDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statementDate must be YYYY-MM-DD", "success": false})
		return
	}

	statement, err := sc.Statements.Create(utils.GetUser(c), services.StatementInput{
		PoliticianID:  input.PoliticianID,
		Title:         input.Title,
		Content:       input.Content,
		Source:        input.Source,
		SourceURL:     input.SourceURL,
		Context:       input.Context,
		StatementDate: statementDate,
		Status:        input.Status,
		Importance:    input.Importance,
		TopicIDs:      input.TopicIDs,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "statement": statement})
}

func (sc *StatementController) UpdateStatement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input StatementUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var statementDate time.Time
	if input.StatementDate != "" {
		parsed, err := time.Parse("2006-01-02", input.StatementDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "statementDate must be YYYY-MM-DD", "success": false})
			return
		}
		statementDate = parsed
	}

	statement, err := sc.Statements.Update(utils.GetUser(c), id, services.StatementInput{
		PoliticianID:  input.PoliticianID,
		Title:         input.Title,
		Content:       input.Content,
		Source:        input.Source,
		SourceURL:     input.SourceURL,
		Context:       input.Context,
		StatementDate: statementDate,
		Status:        input.Status,
		Importance:    input.Importance,
		TopicIDs:      input.TopicIDs,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "statement": statement})
}

func (sc *StatementController) DeleteStatement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := sc.Statements.Delete(utils.GetUser(c), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondStatementPage(c *gin.Context, page *services.StatementPage, skip, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"total":      page.Total,
		"statements": page.Statements,
		"nextCursor": page.NextCursor,
		"pagination": PaginationMeta{
			Skip:       skip,
			Limit:      limit,
			TotalItems: page.Total,
			NextCursor: page.NextCursor,
		},
	})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "success": false})
		return 0, false
	}
	return uint(id), true
}
