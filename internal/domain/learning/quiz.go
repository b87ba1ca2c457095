package learning

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ModuleID  int64     `gorm:"not null;index;column:module_id" json:"module_id"`
	Module    *Module   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"-"`
	Title     string    `gorm:"not null;size:255;column:title" json:"title"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Quiz) TableName() string { return "quizzes" }

var validOptions = map[string]bool{"A": true, "B": true, "C": true, "D": true}

type Question struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID        int64  `gorm:"not null;index;column:quiz_id" json:"quiz_id"`
	Quiz          *Quiz  `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"-"`
	Prompt        string `gorm:"type:text;not null;column:prompt" json:"prompt"`
	OptionA       string `gorm:"not null;size:255;column:option_a" json:"option_a"`
	OptionB       string `gorm:"not null;size:255;column:option_b" json:"option_b"`
	OptionC       string `gorm:"not null;size:255;column:option_c" json:"option_c"`
	OptionD       string `gorm:"not null;size:255;column:option_d" json:"option_d"`
	CorrectOption string `gorm:"not null;size:1;column:correct_option" json:"-"`
}

func (Question) TableName() string { return "questions" }

// BeforeSave keeps correct_option within A-D.
func (q *Question) BeforeSave(tx *gorm.DB) error {
	opt := strings.ToUpper(strings.TrimSpace(q.CorrectOption))
	if !validOptions[opt] {
		return fmt.Errorf("question correct_option %q must be one of A, B, C, D", q.CorrectOption)
	}
	q.CorrectOption = opt
	return nil
}
