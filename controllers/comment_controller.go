package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/services"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

type CommentController struct {
	DB        *gorm.DB
	Comments  *services.CommentService
	Reactions *services.ReactionService
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{
		DB:        db,
		Comments:  services.NewCommentService(db),
		Reactions: services.NewReactionService(db),
	}
}

type CommentQuery struct {
	Skip     int    `form:"skip,default=0" binding:"min=0"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
	Sort     string `form:"sort"`
	ParentID *uint  `form:"parent_id"`
}

// GetStatementComments lists a statement's top-level comments, or the
// direct replies of parent_id when given.
func (cc *CommentController) GetStatementComments(c *gin.Context) {
	statementID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query CommentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var n int64
	if err := cc.DB.Model(&models.Statement{}).Where("id = ?", statementID).Count(&n).Error; err != nil {
		abortWithError(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found", "success": false})
		return
	}

	comments, total, err := cc.Comments.List(statementID, query.ParentID, query.Sort, query.Skip, query.Limit, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"total":    total,
		"comments": comments,
	})
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	statementID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content  string `json:"content" binding:"required"`
		ParentID *uint  `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	comment, err := cc.Comments.Create(utils.GetUser(c), statementID, input.Content, input.ParentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

func (cc *CommentController) GetComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := cc.Comments.Get(id, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comment": comment})
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	comment, err := cc.Comments.Update(utils.GetUser(c), id, input.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comment": comment})
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := cc.Comments.Delete(utils.GetUser(c), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetCommentReplies lists the direct replies of a comment. A missing
// comment yields an empty list so the UI survives races with deletion.
func (cc *CommentController) GetCommentReplies(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query CommentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	replies, total, err := cc.Comments.Replies(id, query.Sort, query.Skip, query.Limit, utils.GetUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"total":    total,
		"comments": replies,
	})
}

func (cc *CommentController) LikeComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	likes, err := cc.Reactions.Add(utils.GetUser(c), models.TargetComment, id, models.ReactionLike)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likesCount": likes})
}

func (cc *CommentController) UnlikeComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	likes, err := cc.Reactions.Remove(utils.GetUser(c), models.TargetComment, id, models.ReactionLike)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likesCount": likes})
}

func (cc *CommentController) ReportComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Reason  string `json:"reason" binding:"required"`
		Details string `json:"details"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := cc.Comments.Report(utils.GetUser(c), id, input.Reason, input.Details); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
