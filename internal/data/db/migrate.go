package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
)

// AutoMigrateAll creates or updates every table, then the indexes gorm tags cannot express.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureIndexes(db)
}

func EnsureIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_lessons_module_order ON lessons(module_id, order_index, id);`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_newest ON notifications(user_id, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user_quiz_submitted ON attempts(user_id, quiz_id, submitted_at);`,
		`CREATE INDEX IF NOT EXISTS idx_mentorship_requests_mentor_status ON mentorship_requests(mentor_id, status);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}
