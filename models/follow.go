package models

import (
	"time"
)

const (
	FollowPolitician = "politician"
	FollowTopic      = "topic"
)

// Follow is a directed subscription edge from a user to a politician or
// topic. Edges are created and hard-deleted freely by their owner; the
// unique index makes follow/unfollow idempotent under retry.
type Follow struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerUserID uint      `gorm:"not null;index;uniqueIndex:idx_follow_identity" json:"follower_user_id"`
	EntityKind     string    `gorm:"not null;type:varchar(20);uniqueIndex:idx_follow_identity" json:"entity_kind"` // politician, topic
	EntityID       uint      `gorm:"not null;uniqueIndex:idx_follow_identity" json:"entity_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	FollowerUser User `gorm:"foreignKey:FollowerUserID" json:"follower_user,omitempty"`
}
