package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type PortfolioInput struct {
	Title       string
	Description *string
	URL         *string
}

// PortfolioService is owner-scoped: another user's item is reported as NotFound.
type PortfolioService interface {
	List(ctx context.Context, userID int64) ([]*types.PortfolioItem, error)
	Create(ctx context.Context, userID int64, in PortfolioInput) (*types.PortfolioItem, error)
	Update(ctx context.Context, userID, itemID int64, in PortfolioInput) (*types.PortfolioItem, error)
	Delete(ctx context.Context, userID, itemID int64) error
}

type portfolioService struct {
	db    *gorm.DB
	log   *logger.Logger
	items repos.PortfolioItemRepo
}

func NewPortfolioService(db *gorm.DB, log *logger.Logger, items repos.PortfolioItemRepo) PortfolioService {
	return &portfolioService{
		db:    db,
		log:   log.With("service", "PortfolioService"),
		items: items,
	}
}

func (in PortfolioInput) normalize() (PortfolioInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, apierr.BadRequest("validation_error", "title is required")
	}
	return in, nil
}

func (s *portfolioService) List(ctx context.Context, userID int64) ([]*types.PortfolioItem, error) {
	out, err := s.items.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	return out, nil
}

func (s *portfolioService) Create(ctx context.Context, userID int64, in PortfolioInput) (*types.PortfolioItem, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	created, err := s.items.Create(ctx, nil, []*types.PortfolioItem{{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
	}})
	if err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}
	return created[0], nil
}

// Update replaces title, description and url wholesale.
func (s *portfolioService) Update(ctx context.Context, userID, itemID int64, in PortfolioInput) (*types.PortfolioItem, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var out *types.PortfolioItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.items.GetByIDForUser(ctx, tx, itemID, userID)
		if err != nil {
			return fmt.Errorf("load portfolio item: %w", err)
		}
		if existing == nil {
			return apierr.NotFound("Portfolio item")
		}
		if err := s.items.UpdateFields(ctx, tx, itemID, userID, map[string]interface{}{
			"title":       in.Title,
			"description": in.Description,
			"url":         in.URL,
		}); err != nil {
			return fmt.Errorf("update portfolio item: %w", err)
		}
		out, err = s.items.GetByIDForUser(ctx, tx, itemID, userID)
		if err != nil {
			return fmt.Errorf("reload portfolio item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *portfolioService) Delete(ctx context.Context, userID, itemID int64) error {
	deleted, err := s.items.DeleteByIDForUser(ctx, nil, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	if !deleted {
		return apierr.NotFound("Portfolio item")
	}
	return nil
}
