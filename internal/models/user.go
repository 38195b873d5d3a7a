package models

import "gorm.io/gorm"

// User represents a trader in the system.
type User struct {
	gorm.Model
	Nickname     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"` // stored lowercase
	PasswordHash string `gorm:"size:255;not null"`
	Bio          string `gorm:"size:500"`
}
