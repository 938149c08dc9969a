package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/magazin/internal/models"
)

const PopularLimit = 6

type CatalogRepo interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	PopularProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error)
	ProductsBySubcategory(ctx context.Context, subcategoryID uint) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
}

// ProductSearcher matches products whose name contains q, ignoring case.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, q string) ([]models.Product, error)
}

type CatalogService struct {
	Repo     CatalogRepo
	Searcher ProductSearcher
}

func (s *CatalogService) GetCatalog(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) GetPopularProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.PopularProducts(ctx, PopularLimit)
}

func (s *CatalogService) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	sub, err := s.Repo.GetSubcategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("subcategory %d: %w", id, ErrNotFound)
	}
	return sub, err
}

func (s *CatalogService) GetProductsBySubcategory(ctx context.Context, id uint) ([]models.Product, error) {
	products, err := s.Repo.ProductsBySubcategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	products, err := s.Searcher.SearchProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
