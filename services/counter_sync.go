package services

import (
	"github.com/poliscope/api-go/models"
	"gorm.io/gorm"
)

// Denormalized counters are always recomputed from their source rows, never
// incremented in place. Recompute is idempotent, so a retried mutation or a
// concurrent duplicate can only ever converge the counter, not drift it.
// Every sync runs on the transaction of the mutation that triggered it.

func syncLikesCount(tx *gorm.DB, targetKind string, targetID uint) error {
	var likes int64
	err := tx.Model(&models.Reaction{}).
		Where("target_kind = ? AND target_id = ? AND reaction_type = ?",
			targetKind, targetID, models.ReactionLike).
		Count(&likes).Error
	if err != nil {
		return err
	}

	switch targetKind {
	case models.TargetStatement:
		return tx.Model(&models.Statement{}).Where("id = ?", targetID).
			Update("likes_count", likes).Error
	case models.TargetComment:
		return tx.Model(&models.Comment{}).Where("id = ?", targetID).
			Update("likes_count", likes).Error
	}
	return ErrInvalid
}

// syncRepliesCount recounts the published direct children of a comment.
func syncRepliesCount(tx *gorm.DB, commentID uint) error {
	var replies int64
	err := tx.Model(&models.Comment{}).
		Where("parent_id = ? AND status = ?", commentID, models.CommentPublished).
		Count(&replies).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Comment{}).Where("id = ?", commentID).
		Update("replies_count", replies).Error
}

// syncReportsCount counts every report row for the comment regardless of
// review status.
func syncReportsCount(tx *gorm.DB, commentID uint) error {
	var reports int64
	err := tx.Model(&models.CommentReport{}).
		Where("comment_id = ?", commentID).
		Count(&reports).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Comment{}).Where("id = ?", commentID).
		Update("reports_count", reports).Error
}

func syncCommentsCount(tx *gorm.DB, statementID uint) error {
	var comments int64
	err := tx.Model(&models.Comment{}).
		Where("statement_id = ? AND status = ?", statementID, models.CommentPublished).
		Count(&comments).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Statement{}).Where("id = ?", statementID).
		Update("comments_count", comments).Error
}
