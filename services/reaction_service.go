package services

import (
	"errors"
	"strings"

	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

// ReactionService owns the reaction ledger: append-only rows keyed by
// (target, user, type). Adding or removing a reaction resynchronizes the
// target's likes_count inside the same transaction.
type ReactionService struct {
	DB *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{DB: db}
}

var validReactionTypes = map[string]bool{
	"like":     true,
	"dislike":  true,
	"agree":    true,
	"disagree": true,
}

func validTargetKind(kind string) bool {
	return kind == models.TargetStatement || kind == models.TargetComment
}

// Add records a reaction unless an identical row already exists; the
// duplicate case is a successful no-op. Returns the target's current like
// count either way.
func (rs *ReactionService) Add(actor *utils.UserClaims, targetKind string, targetID uint, reactionType string) (int64, error) {
	if actor == nil {
		return 0, ErrUnauthorized
	}
	reactionType = strings.ToLower(strings.TrimSpace(reactionType))
	if !validTargetKind(targetKind) || !validReactionTypes[reactionType] {
		return 0, ErrInvalid
	}
	if err := rs.targetExists(targetKind, targetID); err != nil {
		return 0, err
	}

	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		result := tx.Where(
			"target_kind = ? AND target_id = ? AND user_id = ? AND reaction_type = ?",
			targetKind, targetID, actor.UserID, reactionType,
		).First(&existing)
		if result.Error == nil {
			// Already reacted; retry of an earlier request.
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		reaction := models.Reaction{
			TargetKind:   targetKind,
			TargetID:     targetID,
			UserID:       actor.UserID,
			ReactionType: reactionType,
		}
		if err := tx.Create(&reaction).Error; err != nil {
			return err
		}

		activity := models.UserActivity{
			UserID:       actor.UserID,
			ActivityType: "like",
			TargetType:   targetKind,
			TargetID:     targetID,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		if reactionType == models.ReactionLike {
			return syncLikesCount(tx, targetKind, targetID)
		}
		return nil
	})
	if err != nil {
		// A concurrent identical request can win the insert between our
		// existence check and the create; the unique index is the
		// authority. Postgres aborts the whole transaction on a constraint
		// violation, so the re-check must run on a fresh session. "Now
		// present" means the winner already recorded everything.
		var raced models.Reaction
		recheck := rs.DB.Where(
			"target_kind = ? AND target_id = ? AND user_id = ? AND reaction_type = ?",
			targetKind, targetID, actor.UserID, reactionType,
		).First(&raced)
		if recheck.Error != nil {
			return 0, err
		}
	}

	return rs.CountLikes(targetKind, targetID)
}

// Remove deletes the reaction row if present; absence is a successful
// no-op. Returns the target's current like count either way.
func (rs *ReactionService) Remove(actor *utils.UserClaims, targetKind string, targetID uint, reactionType string) (int64, error) {
	if actor == nil {
		return 0, ErrUnauthorized
	}
	reactionType = strings.ToLower(strings.TrimSpace(reactionType))
	if !validTargetKind(targetKind) || !validReactionTypes[reactionType] {
		return 0, ErrInvalid
	}
	if err := rs.targetExists(targetKind, targetID); err != nil {
		return 0, err
	}

	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(
			"target_kind = ? AND target_id = ? AND user_id = ? AND reaction_type = ?",
			targetKind, targetID, actor.UserID, reactionType,
		).Delete(&models.Reaction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if reactionType == models.ReactionLike {
			return syncLikesCount(tx, targetKind, targetID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return rs.CountLikes(targetKind, targetID)
}

func (rs *ReactionService) CountLikes(targetKind string, targetID uint) (int64, error) {
	var likes int64
	err := rs.DB.Model(&models.Reaction{}).
		Where("target_kind = ? AND target_id = ? AND reaction_type = ?",
			targetKind, targetID, models.ReactionLike).
		Count(&likes).Error
	return likes, err
}

func (rs *ReactionService) IsLiked(userID uint, targetKind string, targetID uint) (bool, error) {
	var n int64
	err := rs.DB.Model(&models.Reaction{}).
		Where("target_kind = ? AND target_id = ? AND user_id = ? AND reaction_type = ?",
			targetKind, targetID, userID, models.ReactionLike).
		Count(&n).Error
	return n > 0, err
}

// LikedSet returns, in one query, which of the given targets the user has
// liked. Used to annotate list responses without a per-row lookup.
func (rs *ReactionService) LikedSet(userID uint, targetKind string, targetIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := rs.DB.Model(&models.Reaction{}).
		Where("target_kind = ? AND user_id = ? AND reaction_type = ? AND target_id IN ?",
			targetKind, userID, models.ReactionLike, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (rs *ReactionService) targetExists(targetKind string, targetID uint) error {
	var n int64
	var err error
	switch targetKind {
	case models.TargetStatement:
		err = rs.DB.Model(&models.Statement{}).Where("id = ?", targetID).Count(&n).Error
	case models.TargetComment:
		err = rs.DB.Model(&models.Comment{}).Where("id = ?", targetID).Count(&n).Error
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
