package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/controllers"
)

func SetupFeedRoutes(protected *gin.RouterGroup, feedController *controllers.FeedController) {
	protected.GET("/feed", feedController.GetUserFeed)
}
