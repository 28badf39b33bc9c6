package models

import (
	"time"

	"gorm.io/gorm"
)

type Topic struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Name        string         `gorm:"not null;index" json:"name"`
	Slug        string         `gorm:"unique;not null" json:"slug"`
	Category    string         `gorm:"type:varchar(50);index" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"not null;default:'active'" json:"status"` // active, archived
}
