package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/controllers"
)

func SetupStanceRoutes(browse *gin.RouterGroup, stanceController *controllers.StanceController) {
	browse.GET("/politicians/:id/topics", stanceController.GetPoliticianStances)
	browse.GET("/parties/:id/topics", stanceController.GetPartyStances)
	browse.GET("/topics/:id/parties", stanceController.GetTopicPartyStances)
}
