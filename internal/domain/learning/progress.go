package learning

import (
	"time"

	"github.com/yungbote/skillbridge-backend/internal/domain/user"
)

const (
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// Progress is unique per (user_id, module_id).
type Progress struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64      `gorm:"not null;uniqueIndex:idx_progress_user_module,priority:1;column:user_id" json:"user_id"`
	User            *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	ModuleID        int64      `gorm:"not null;uniqueIndex:idx_progress_user_module,priority:2;index;column:module_id" json:"module_id"`
	Module          *Module    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"-"`
	CurrentLessonID *int64     `gorm:"column:current_lesson_id" json:"current_lesson_id"`
	CurrentLesson   *Lesson    `gorm:"constraint:OnDelete:SET NULL;foreignKey:CurrentLessonID;references:ID" json:"-"`
	Status          string     `gorm:"not null;size:20;default:'in_progress';column:status" json:"status"`
	ProgressPercent float64    `gorm:"not null;default:0;column:progress_percent" json:"progress_percent"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (Progress) TableName() string { return "progress" }

func (p *Progress) IsCompleted() bool {
	return p != nil && p.Status == ProgressCompleted
}
