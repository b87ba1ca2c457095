package learning

import "time"

type Module struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null;size:255;index;column:title" json:"title"`
	Description *string   `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Module) TableName() string { return "modules" }

// Lesson belongs to a module; order_index ranks it within the module and is neither unique nor contiguous.
type Lesson struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ModuleID   int64     `gorm:"not null;index;column:module_id" json:"module_id"`
	Module     *Module   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"-"`
	Title      string    `gorm:"not null;size:255;column:title" json:"title"`
	Content    *string   `gorm:"type:text;column:content" json:"content"`
	OrderIndex int       `gorm:"not null;default:0;column:order_index" json:"order_index"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Lesson) TableName() string { return "lessons" }
