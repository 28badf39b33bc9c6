package services

import (
	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

// FeedService composes the follow graph with the statement query engine to
// produce a per-user feed.
type FeedService struct {
	DB         *gorm.DB
	follows    *FollowService
	statements *StatementService
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		DB:         db,
		follows:    NewFollowService(db),
		statements: NewStatementService(db),
	}
}

// Feed returns the latest statements from the politicians the user
// follows. A user following nobody gets an empty feed, not all statements
// and not an error.
func (fs *FeedService) Feed(actor *utils.UserClaims, skip, limit int) (*StatementPage, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	politicianIDs, err := fs.follows.ListFollowedIDs(actor.UserID, models.FollowPolitician)
	if err != nil {
		return nil, err
	}
	if len(politicianIDs) == 0 {
		return &StatementPage{Statements: []StatementView{}, Total: 0}, nil
	}

	return fs.statements.Query(
		StatementFilters{PoliticianIDs: politicianIDs},
		"date_desc",
		skip, limit,
		actor,
	)
}
