package models

import (
	"time"
)

// UserActivity is an append-only audit row recorded alongside engagement
// actions (likes, comments, follows).
type UserActivity struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ActivityType string    `gorm:"not null;type:varchar(20)" json:"activity_type"` // view, like, comment, follow, search
	TargetType   string    `gorm:"not null;type:varchar(20)" json:"target_type"`   // statement, politician, party, topic, comment
	TargetID     uint      `gorm:"not null" json:"target_id"`
	Metadata     string    `gorm:"type:text" json:"metadata"` // JSON blob
}
