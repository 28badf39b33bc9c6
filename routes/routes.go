package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/controllers"
	"github.com/poliscope/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	statementController := controllers.NewStatementController(db)
	commentController := controllers.NewCommentController(db)
	interactionController := controllers.NewInteractionController(db)
	feedController := controllers.NewFeedController(db)
	stanceController := controllers.NewStanceController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/refresh-token", authController.RefreshToken)
	}

	// Read routes: anonymous allowed, identity used for like annotations
	// when present.
	browse := r.Group("/api")
	browse.Use(middleware.OptionalAuthMiddleware(db))
	{
		SetupStatementReadRoutes(browse, statementController, commentController)
		SetupStanceRoutes(browse, stanceController)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupStatementWriteRoutes(protected, statementController)
		SetupCommentRoutes(protected, commentController)
		SetupInteractionRoutes(protected, interactionController)
		SetupFeedRoutes(protected, feedController)
	}
}
