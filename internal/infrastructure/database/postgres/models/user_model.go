package models

import (
	"time"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(50);not null;default:'user'"`
	IsConfirmed    bool      `gorm:"default:false;not null"`
	Avatar         *string   `gorm:"type:varchar(512)"`
	RefreshToken   *string   `gorm:"type:varchar(512)"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
