package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is a back-office operator account.
type User struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Email        string       `json:"email" gorm:"type:text;not null;uniqueIndex"`
	DisplayName  string       `json:"display_name" gorm:"type:text;not null"`
	PasswordHash string       `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
