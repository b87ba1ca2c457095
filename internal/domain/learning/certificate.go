package learning

import (
	"time"

	"github.com/yungbote/skillbridge-backend/internal/domain/user"
)

// Certificate is issued once per (user, module) when the module's progress first reaches completed.
type Certificate struct {
	ID       int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64      `gorm:"not null;uniqueIndex:idx_certificate_user_module,priority:1;column:user_id" json:"user_id"`
	User     *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	ModuleID *int64     `gorm:"uniqueIndex:idx_certificate_user_module,priority:2;column:module_id" json:"module_id"`
	Module   *Module    `gorm:"constraint:OnDelete:SET NULL;foreignKey:ModuleID;references:ID" json:"-"`
	Title    string     `gorm:"not null;size:255;column:title" json:"title"`
	IssuedAt time.Time  `gorm:"not null;column:issued_at" json:"issued_at"`
}

func (Certificate) TableName() string { return "certificates" }
