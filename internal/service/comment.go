package service

import (
	"context"

	"github.com/Skotchmaster/magazin/internal/models"
	"github.com/Skotchmaster/magazin/internal/transport"
)

const RecentCommentsLimit = 5

type CommentRepo interface {
	CommentsByProduct(ctx context.Context, productID uint) ([]models.Comment, error)
	RecentComments(ctx context.Context, limit int) ([]models.RecentComment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
}

type CommentService struct {
	Repo    CommentRepo
	Catalog *CatalogService
}

func (s *CommentService) GetComments(ctx context.Context, productID uint) ([]models.Comment, error) {
	return s.Repo.CommentsByProduct(ctx, productID)
}

// GetRecentComments returns the newest comments across all products; a
// non-positive limit means RecentCommentsLimit.
func (s *CommentService) GetRecentComments(ctx context.Context, limit int) ([]models.RecentComment, error) {
	if limit <= 0 {
		limit = RecentCommentsLimit
	}
	return s.Repo.RecentComments(ctx, limit)
}

func (s *CommentService) AddComment(ctx context.Context, productID uint, form transport.CommentForm) (*models.Comment, error) {
	form.Normalize()
	if err := validateForm(&form); err != nil {
		return nil, err
	}

	if _, err := s.Catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ProductID: productID,
		Author:    form.Author,
		Text:      form.Text,
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
