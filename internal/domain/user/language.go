package user

import "time"

const DefaultLanguageCode = "en"

type LanguagePreference struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;uniqueIndex;column:user_id" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	LanguageCode string    `gorm:"not null;size:10;column:language_code" json:"language_code"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (LanguagePreference) TableName() string { return "language_preferences" }
