package learning

import (
	"time"

	"github.com/yungbote/skillbridge-backend/internal/domain/user"
	"gorm.io/datatypes"
)

// Attempt is an append-only record of one quiz submission.
type Attempt struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64          `gorm:"not null;index;column:user_id" json:"user_id"`
	User        *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	QuizID      int64          `gorm:"not null;index;column:quiz_id" json:"quiz_id"`
	Quiz        *Quiz          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"-"`
	Score       float64        `gorm:"not null;column:score" json:"score"`
	Answers     datatypes.JSON `gorm:"column:answers" json:"answers"`
	SubmittedAt time.Time      `gorm:"not null;column:submitted_at" json:"submitted_at"`
}

func (Attempt) TableName() string { return "attempts" }
