package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CommentPublished = "published"
	CommentHidden    = "hidden"
	CommentDeleted   = "deleted"
)

type Comment struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	StatementID uint           `gorm:"not null;index" json:"statement_id"`
	Statement   Statement      `json:"-" gorm:"foreignKey:StatementID"`
	// ParentID must reference a comment on the same statement.
	ParentID     *uint  `gorm:"index" json:"parent_id"`
	Content      string `gorm:"type:text;not null" json:"content"`
	Status       string `gorm:"not null;default:'published';index" json:"status"` // published, hidden, deleted
	LikesCount   int64  `gorm:"not null;default:0" json:"likes_count"`
	RepliesCount int64  `gorm:"not null;default:0" json:"replies_count"`
	ReportsCount int64  `gorm:"not null;default:0" json:"reports_count"`
}
