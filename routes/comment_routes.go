package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/controllers"
)

func SetupCommentRoutes(protected *gin.RouterGroup, commentController *controllers.CommentController) {
	protected.POST("/statements/:id/comments", commentController.CreateComment)

	comments := protected.Group("/comments")
	{
		comments.PUT("/:id", commentController.UpdateComment)
		comments.DELETE("/:id", commentController.DeleteComment)
		comments.POST("/:id/like", commentController.LikeComment)
		comments.DELETE("/:id/like", commentController.UnlikeComment)
		comments.POST("/:id/report", commentController.ReportComment)
	}
}
