package user

import (
	"time"
)

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null;size:255;column:email" json:"email"`
	HashedPassword string    `gorm:"not null;size:255;column:hashed_password" json:"-"`
	FullName       *string   `gorm:"size:255;column:full_name" json:"full_name"`
	IsActive       bool      `gorm:"not null;column:is_active" json:"is_active"`
	IsMentor       bool      `gorm:"not null;column:is_mentor" json:"is_mentor"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// DisplayName falls back to the email when no full name was given.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}
