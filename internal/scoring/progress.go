package scoring

import (
	types "github.com/yungbote/skillbridge-backend/internal/domain"
)

// LessonPercent is the module progress implied by completing a lesson at orderIndex.
// A zero order index counts as the first lesson; the result is clamped to [0, 100].
func LessonPercent(orderIndex int, totalLessons int64) float64 {
	if totalLessons < 1 {
		totalLessons = 1
	}
	index := orderIndex
	if index == 0 {
		index = 1
	}
	pct := float64(index) / float64(totalLessons) * 100
	return min(100, max(0, pct))
}

// ApplyLessonCompletion moves p to lesson and recomputes its percent. Status only ever moves
// forward to completed; a lower-order lesson completed afterwards can still lower the percent.
func ApplyLessonCompletion(p *types.Progress, lesson *types.Lesson, totalLessons int64) {
	lessonID := lesson.ID
	p.CurrentLessonID = &lessonID
	p.ProgressPercent = LessonPercent(lesson.OrderIndex, totalLessons)
	if p.Status == "" {
		p.Status = types.ProgressInProgress
	}
	if p.ProgressPercent >= 100 {
		p.Status = types.ProgressCompleted
	}
}
