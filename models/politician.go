package models

import (
	"time"

	"gorm.io/gorm"
)

type Politician struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Name           string         `gorm:"not null;index" json:"name"`
	NameKana       string         `json:"name_kana"`
	CurrentPartyID *uint          `gorm:"index" json:"current_party_id"`
	CurrentParty   *Party         `json:"current_party,omitempty" gorm:"foreignKey:CurrentPartyID"`
	Role           string         `json:"role"`                                          // e.g. "Minister of Finance"
	Status         string         `gorm:"not null;default:'active';index" json:"status"` // active, inactive, former
	ImageURL       string         `json:"image_url"`
	ProfileSummary string         `gorm:"type:text" json:"profile_summary"`
	Statements     []Statement    `json:"statements,omitempty" gorm:"foreignKey:PoliticianID"`
}
