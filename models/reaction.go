package models

import (
	"time"
)

const (
	TargetStatement = "statement"
	TargetComment   = "comment"

	ReactionLike = "like"
)

// Reaction rows are only ever created and hard-deleted, never updated.
// The unique index is the authority for idempotence under concurrent
// duplicate requests.
type Reaction struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TargetKind   string    `gorm:"not null;type:varchar(20);uniqueIndex:idx_reaction_identity" json:"target_kind"` // statement, comment
	TargetID     uint      `gorm:"not null;uniqueIndex:idx_reaction_identity" json:"target_id"`
	UserID       uint      `gorm:"not null;index;uniqueIndex:idx_reaction_identity" json:"user_id"`
	ReactionType string    `gorm:"not null;type:varchar(20);uniqueIndex:idx_reaction_identity" json:"reaction_type"` // like, dislike, agree, disagree
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
