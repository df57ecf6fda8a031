package models

import (
	"time"
)

// ContactModel represents the database model for Contact
type ContactModel struct {
	ID          uint       `gorm:"primaryKey"`
	FirstName   string     `gorm:"type:varchar(100);not null"`
	LastName    string     `gorm:"type:varchar(100)"`
	Email       string     `gorm:"type:varchar(255);not null"`
	Phone       string     `gorm:"type:varchar(30)"`
	BirthDate   *time.Time `gorm:"type:date"`
	Description *string    `gorm:"type:text"`
	UserID      uint       `gorm:"not null;index"`
	User        UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (ContactModel) TableName() string {
	return "contacts"
}
