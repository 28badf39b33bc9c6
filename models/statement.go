package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatementPublished = "published"
	StatementDraft     = "draft"
	StatementArchived  = "archived"
)

type Statement struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	PoliticianID  uint           `gorm:"not null;index" json:"politician_id"`
	Politician    Politician     `json:"politician,omitempty" gorm:"foreignKey:PoliticianID"`
	Title         string         `gorm:"not null;index" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Source        string         `json:"source"`
	SourceURL     string         `json:"source_url"`
	StatementDate time.Time      `gorm:"not null;index" json:"statement_date"`
	Context       string         `gorm:"type:text" json:"context"`
	Status        string         `gorm:"not null;default:'published';index" json:"status"` // published, draft, archived
	Importance    int            `gorm:"not null;default:0;index" json:"importance"`       // 0-100
	LikesCount    int64          `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int64          `gorm:"not null;default:0" json:"comments_count"`
	Comments      []Comment      `json:"comments,omitempty" gorm:"foreignKey:StatementID"`
	Topics        []StatementTopic `json:"topics,omitempty" gorm:"foreignKey:StatementID"`
}

// StatementTopic links a statement to a topic with an advisory relevance
// score (0-100) used for ranking, not filtering.
type StatementTopic struct {
	StatementID uint      `gorm:"primaryKey" json:"statement_id"`
	TopicID     uint      `gorm:"primaryKey" json:"topic_id"`
	Relevance   int       `gorm:"not null;default:50" json:"relevance"`
	CreatedAt   time.Time `json:"created_at"`
}
