package services

import (
	"github.com/poliscope/api-go/models"
	"gorm.io/gorm"
)

// ActivityService reads back the audit rows the engagement services write
// alongside likes, comments, and follows.
type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// History pages through a user's activity rows, newest first.
func (as *ActivityService) History(userID uint, skip, limit int) ([]models.UserActivity, int64, error) {
	skip, limit = normalizePage(skip, limit)

	query := as.DB.Model(&models.UserActivity{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []models.UserActivity
	err := query.Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
