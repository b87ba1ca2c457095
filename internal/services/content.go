package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

// ContentService is read-only access to modules and their lessons.
type ContentService interface {
	ListModules(ctx context.Context) ([]*types.Module, error)
	GetModule(ctx context.Context, moduleID int64) (*types.Module, error)
	ListLessons(ctx context.Context, moduleID int64) ([]*types.Lesson, error)
	GetLesson(ctx context.Context, lessonID int64) (*types.Lesson, error)
}

type contentService struct {
	db      *gorm.DB
	log     *logger.Logger
	modules repos.ModuleRepo
	lessons repos.LessonRepo
}

func NewContentService(db *gorm.DB, log *logger.Logger, modules repos.ModuleRepo, lessons repos.LessonRepo) ContentService {
	return &contentService{
		db:      db,
		log:     log.With("service", "ContentService"),
		modules: modules,
		lessons: lessons,
	}
}

func (s *contentService) ListModules(ctx context.Context) ([]*types.Module, error) {
	out, err := s.modules.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return out, nil
}

func (s *contentService) GetModule(ctx context.Context, moduleID int64) (*types.Module, error) {
	found, err := s.modules.GetByIDs(ctx, nil, []int64{moduleID})
	if err != nil {
		return nil, fmt.Errorf("load module: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("Module")
	}
	return found[0], nil
}

func (s *contentService) ListLessons(ctx context.Context, moduleID int64) ([]*types.Lesson, error) {
	if _, err := s.GetModule(ctx, moduleID); err != nil {
		return nil, err
	}
	out, err := s.lessons.GetByModuleID(ctx, nil, moduleID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return out, nil
}

func (s *contentService) GetLesson(ctx context.Context, lessonID int64) (*types.Lesson, error) {
	found, err := s.lessons.GetByIDs(ctx, nil, []int64{lessonID})
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("Lesson")
	}
	return found[0], nil
}
