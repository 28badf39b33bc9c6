package models

import (
	"time"
)

const (
	ReportPending   = "pending"
	ReportReviewed  = "reviewed"
	ReportActioned  = "actioned"
	ReportDismissed = "dismissed"
)

type CommentReport struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CommentID      uint      `gorm:"not null;index;uniqueIndex:idx_report_identity" json:"comment_id"`
	ReporterUserID uint      `gorm:"not null;uniqueIndex:idx_report_identity" json:"reporter_user_id"`
	Reason         string    `gorm:"not null;type:varchar(50)" json:"reason"` // spam, hate_speech, inappropriate, misinformation, other
	Details        string    `gorm:"type:text" json:"details"`
	Status         string    `gorm:"not null;default:'pending';index" json:"status"` // pending, reviewed, actioned, dismissed
	AdminNotes     string    `gorm:"type:text" json:"admin_notes"`

	Comment      Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
	ReporterUser User    `gorm:"foreignKey:ReporterUserID" json:"reporter_user,omitempty"`
}
