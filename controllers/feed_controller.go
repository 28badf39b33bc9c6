package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/services"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

type FeedController struct {
	DB   *gorm.DB
	Feed *services.FeedService
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db, Feed: services.NewFeedService(db)}
}

// GetUserFeed returns the latest statements from the politicians the
// authenticated user follows.
func (fc *FeedController) GetUserFeed(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "success": false})
		return
	}
	skip, limit := pageParams(c)

	page, err := fc.Feed.Feed(user, skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondStatementPage(c, page, skip, limit)
}
