package models

import (
	"time"

	"gorm.io/gorm"
)

type Party struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Name        string         `gorm:"not null;index" json:"name"`
	ShortName   string         `gorm:"type:varchar(50)" json:"short_name"`
	Description string         `gorm:"type:text" json:"description"`
	LogoURL     string         `json:"logo_url"`
	Website     string         `json:"website"`
	Status      string         `gorm:"not null;default:'active';index" json:"status"` // active, dissolved
	Politicians []Politician   `json:"politicians,omitempty" gorm:"foreignKey:CurrentPartyID"`
}
