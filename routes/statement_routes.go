package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/controllers"
)

func SetupStatementReadRoutes(browse *gin.RouterGroup, statementController *controllers.StatementController, commentController *controllers.CommentController) {
	statements := browse.Group("/statements")
	{
		statements.GET("", statementController.ListStatements)
		statements.GET("/:id", statementController.GetStatement)
		statements.GET("/:id/comments", commentController.GetStatementComments)
	}

	browse.GET("/search/statements", statementController.SearchStatements)
	browse.GET("/politicians/:id/statements", statementController.GetPoliticianStatements)
	browse.GET("/parties/:id/statements", statementController.GetPartyStatements)
	browse.GET("/topics/:id/statements", statementController.GetTopicStatements)

	comments := browse.Group("/comments")
	{
		comments.GET("/:id", commentController.GetComment)
		comments.GET("/:id/replies", commentController.GetCommentReplies)
	}
}

func SetupStatementWriteRoutes(protected *gin.RouterGroup, statementController *controllers.StatementController) {
	statements := protected.Group("/statements")
	{
		statements.POST("/:id/like", statementController.LikeStatement)
		statements.DELETE("/:id/like", statementController.UnlikeStatement)

		// Curator endpoints (admin role enforced in the service)
		statements.POST("", statementController.CreateStatement)
		statements.PUT("/:id", statementController.UpdateStatement)
		statements.DELETE("/:id", statementController.DeleteStatement)
	}
}
