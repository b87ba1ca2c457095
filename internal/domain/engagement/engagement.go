package engagement

import (
	"time"

	"github.com/yungbote/skillbridge-backend/internal/domain/user"
)

type PortfolioItem struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64      `gorm:"not null;index;column:user_id" json:"user_id"`
	User        *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title       string     `gorm:"not null;size:255;column:title" json:"title"`
	Description *string    `gorm:"type:text;column:description" json:"description"`
	URL         *string    `gorm:"size:1024;column:url" json:"url"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (PortfolioItem) TableName() string { return "portfolio_items" }

type Notification struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"not null;index;column:user_id" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Message   string     `gorm:"not null;size:500;column:message" json:"message"`
	IsRead    bool       `gorm:"not null;column:is_read" json:"is_read"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
