package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username      string         `gorm:"unique;not null" json:"username"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	DisplayName   string         `json:"display_name"`
	Bio           string         `json:"bio"`
	Avatar        string         `json:"avatar"`
	Role          string         `gorm:"not null;default:'user';type:varchar(20)" json:"role"` // user, moderator, admin
	AccountStatus string         `gorm:"not null;default:'active'" json:"account_status"`      // active, suspended, deactivated
	EmailVerified bool           `json:"email_verified"`
	Comments      []Comment      `json:"comments,omitempty" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) IsActive() bool {
	return u.AccountStatus == "active"
}
