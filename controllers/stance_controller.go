package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/services"
	"gorm.io/gorm"
)

type StanceController struct {
	DB      *gorm.DB
	Stances *services.StanceService
}

func NewStanceController(db *gorm.DB) *StanceController {
	return &StanceController{DB: db, Stances: services.NewStanceService(db)}
}

// GetPoliticianStances summarizes a politician's published statements per
// topic.
func (stc *StanceController) GetPoliticianStances(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stances, err := stc.Stances.AggregateForPolitician(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "topics": stances})
}

// GetPartyStances summarizes the statements of a party's active
// politicians per topic.
func (stc *StanceController) GetPartyStances(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stances, err := stc.Stances.AggregateForParty(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "topics": stances})
}

// GetTopicPartyStances lists each active party's position on one topic.
func (stc *StanceController) GetTopicPartyStances(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stances, err := stc.Stances.PartyStancesForTopic(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "parties": stances})
}
