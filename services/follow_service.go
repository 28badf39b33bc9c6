package services

import (
	"errors"

	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

// FollowService stores the user -> politician and user -> topic follow
// edges behind the personalized feed.
type FollowService struct {
	DB *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{DB: db}
}

func validFollowKind(kind string) bool {
	return kind == models.FollowPolitician || kind == models.FollowTopic
}

// Follow creates the edge unless it already exists; either way it returns
// the entity's current follower count.
func (fs *FollowService) Follow(actor *utils.UserClaims, entityKind string, entityID uint) (int64, error) {
	if actor == nil {
		return 0, ErrUnauthorized
	}
	if !validFollowKind(entityKind) {
		return 0, ErrInvalid
	}
	if err := fs.entityExists(entityKind, entityID); err != nil {
		return 0, err
	}

	err := fs.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Follow
		result := tx.Where("follower_user_id = ? AND entity_kind = ? AND entity_id = ?",
			actor.UserID, entityKind, entityID).First(&existing)
		if result.Error == nil {
			// Already following.
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		follow := models.Follow{
			FollowerUserID: actor.UserID,
			EntityKind:     entityKind,
			EntityID:       entityID,
		}
		if err := tx.Create(&follow).Error; err != nil {
			return err
		}

		activity := models.UserActivity{
			UserID:       actor.UserID,
			ActivityType: "follow",
			TargetType:   entityKind,
			TargetID:     entityID,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		// Lost the create race to a concurrent identical request. Postgres
		// aborts the transaction on the constraint violation, so re-check
		// on a fresh session; the unique index already holds the edge.
		var raced models.Follow
		recheck := fs.DB.Where("follower_user_id = ? AND entity_kind = ? AND entity_id = ?",
			actor.UserID, entityKind, entityID).First(&raced)
		if recheck.Error != nil {
			return 0, err
		}
	}

	return fs.FollowersCount(entityKind, entityID)
}

// Unfollow deletes the edge if present; a never-followed entity is a
// successful no-op. Returns the current follower count either way.
func (fs *FollowService) Unfollow(actor *utils.UserClaims, entityKind string, entityID uint) (int64, error) {
	if actor == nil {
		return 0, ErrUnauthorized
	}
	if !validFollowKind(entityKind) {
		return 0, ErrInvalid
	}
	if err := fs.entityExists(entityKind, entityID); err != nil {
		return 0, err
	}

	err := fs.DB.Where("follower_user_id = ? AND entity_kind = ? AND entity_id = ?",
		actor.UserID, entityKind, entityID).Delete(&models.Follow{}).Error
	if err != nil {
		return 0, err
	}

	return fs.FollowersCount(entityKind, entityID)
}

func (fs *FollowService) FollowersCount(entityKind string, entityID uint) (int64, error) {
	var n int64
	err := fs.DB.Model(&models.Follow{}).
		Where("entity_kind = ? AND entity_id = ?", entityKind, entityID).
		Count(&n).Error
	return n, err
}

// ListFollowedIDs returns the ids of every entity of the given kind the
// user follows. No ordering guarantee.
func (fs *FollowService) ListFollowedIDs(userID uint, entityKind string) ([]uint, error) {
	if !validFollowKind(entityKind) {
		return nil, ErrInvalid
	}
	var ids []uint
	err := fs.DB.Model(&models.Follow{}).
		Where("follower_user_id = ? AND entity_kind = ?", userID, entityKind).
		Pluck("entity_id", &ids).Error
	return ids, err
}

func (fs *FollowService) IsFollowing(userID uint, entityKind string, entityID uint) (bool, error) {
	var n int64
	err := fs.DB.Model(&models.Follow{}).
		Where("follower_user_id = ? AND entity_kind = ? AND entity_id = ?",
			userID, entityKind, entityID).
		Count(&n).Error
	return n > 0, err
}

// FollowedPoliticians pages through the politicians a user follows, newest
// follow first.
func (fs *FollowService) FollowedPoliticians(userID uint, skip, limit int) ([]models.Politician, int64, error) {
	skip, limit = normalizePage(skip, limit)

	base := fs.DB.Model(&models.Follow{}).
		Where("follows.follower_user_id = ? AND follows.entity_kind = ?", userID, models.FollowPolitician)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var politicians []models.Politician
	err := fs.DB.Model(&models.Politician{}).
		Joins("JOIN follows ON follows.entity_id = politicians.id AND follows.entity_kind = ?", models.FollowPolitician).
		Where("follows.follower_user_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&politicians).Error
	if err != nil {
		return nil, 0, err
	}
	return politicians, total, nil
}

func (fs *FollowService) FollowedTopics(userID uint, skip, limit int) ([]models.Topic, int64, error) {
	skip, limit = normalizePage(skip, limit)

	base := fs.DB.Model(&models.Follow{}).
		Where("follows.follower_user_id = ? AND follows.entity_kind = ?", userID, models.FollowTopic)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var topics []models.Topic
	err := fs.DB.Model(&models.Topic{}).
		Joins("JOIN follows ON follows.entity_id = topics.id AND follows.entity_kind = ?", models.FollowTopic).
		Where("follows.follower_user_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

func (fs *FollowService) entityExists(entityKind string, entityID uint) error {
	var n int64
	var err error
	switch entityKind {
	case models.FollowPolitician:
		err = fs.DB.Model(&models.Politician{}).Where("id = ?", entityID).Count(&n).Error
	case models.FollowTopic:
		err = fs.DB.Model(&models.Topic{}).Where("id = ?", entityID).Count(&n).Error
	default:
		return ErrInvalid
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
