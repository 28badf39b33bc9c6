package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/services"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB         *gorm.DB
	Follows    *services.FollowService
	Statements *services.StatementService
	Comments   *services.CommentService
	Activity   *services.ActivityService
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{
		DB:         db,
		Follows:    services.NewFollowService(db),
		Statements: services.NewStatementService(db),
		Comments:   services.NewCommentService(db),
		Activity:   services.NewActivityService(db),
	}
}

// FollowPolitician is idempotent: following twice keeps one edge and both
// calls succeed with the current follower count.
func (ic *InteractionController) FollowPolitician(c *gin.Context) {
	ic.follow(c, models.FollowPolitician)
}

func (ic *InteractionController) UnfollowPolitician(c *gin.Context) {
	ic.unfollow(c, models.FollowPolitician)
}

func (ic *InteractionController) FollowTopic(c *gin.Context) {
	ic.follow(c, models.FollowTopic)
}

func (ic *InteractionController) UnfollowTopic(c *gin.Context) {
	ic.unfollow(c, models.FollowTopic)
}

func (ic *InteractionController) follow(c *gin.Context, entityKind string) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	count, err := ic.Follows.Follow(utils.GetUser(c), entityKind, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "followersCount": count})
}

func (ic *InteractionController) unfollow(c *gin.Context, entityKind string) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	count, err := ic.Follows.Unfollow(utils.GetUser(c), entityKind, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "followersCount": count})
}

// GetFollowedPoliticians returns the authenticated user's followed
// politicians, newest follow first.
func (ic *InteractionController) GetFollowedPoliticians(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}
	skip, limit := pageParams(c)

	politicians, total, err := ic.Follows.FollowedPoliticians(user.UserID, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"total":       total,
		"politicians": politicians,
	})
}

func (ic *InteractionController) GetFollowedTopics(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}
	skip, limit := pageParams(c)

	topics, total, err := ic.Follows.FollowedTopics(user.UserID, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   total,
		"topics":  topics,
	})
}

// GetLikedStatements returns the statements the authenticated user has
// liked, most recent like first.
func (ic *InteractionController) GetLikedStatements(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}
	skip, limit := pageParams(c)

	page, err := ic.Statements.LikedByUser(user.UserID, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondStatementPage(c, page, skip, limit)
}

// GetOwnComments returns the authenticated user's comments, newest first.
func (ic *InteractionController) GetOwnComments(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}
	skip, limit := pageParams(c)

	comments, total, err := ic.Comments.ByUser(user.UserID, skip, limit)
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

// GetActivityHistory returns the authenticated user's recorded activity,
// newest first.
func (ic *InteractionController) GetActivityHistory(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}
	skip, limit := pageParams(c)

	activities, total, err := ic.Activity.History(user.UserID, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"total":      total,
		"activities": activities,
	})
}

func pageParams(c *gin.Context) (int, int) {
	var query struct {
		Skip  int `form:"skip,default=0" binding:"min=0"`
		Limit int `form:"limit,default=20" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		return 0, 20
	}
	return query.Skip, query.Limit
}
