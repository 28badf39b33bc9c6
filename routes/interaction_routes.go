package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	politicians := protected.Group("/politicians")
	{
		politicians.POST("/:id/follow", interactionController.FollowPolitician)
		politicians.DELETE("/:id/follow", interactionController.UnfollowPolitician)
	}

	topics := protected.Group("/topics")
	{
		topics.POST("/:id/follow", interactionController.FollowTopic)
		topics.DELETE("/:id/follow", interactionController.UnfollowTopic)
	}

	mypage := protected.Group("/mypage")
	{
		mypage.GET("/following/politicians", interactionController.GetFollowedPoliticians)
		mypage.GET("/following/topics", interactionController.GetFollowedTopics)
		mypage.GET("/likes", interactionController.GetLikedStatements)
		mypage.GET("/comments", interactionController.GetOwnComments)
		mypage.GET("/history", interactionController.GetActivityHistory)
	}
}
