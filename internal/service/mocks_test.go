package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Skotchmaster/magazin/internal/models"
)

type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogRepo) PopularProducts(ctx context.Context, limit int) ([]models.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogRepo) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	args := m.Called(ctx, id)
	sub, _ := args.Get(0).(*models.Subcategory)
	return sub, args.Error(1)
}

func (m *MockCatalogRepo) ProductsBySubcategory(ctx context.Context, subcategoryID uint) ([]models.Product, error) {
	args := m.Called(ctx, subcategoryID)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockCatalogRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) CommentsByProduct(ctx context.Context, productID uint) ([]models.Comment, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepo) RecentComments(ctx context.Context, limit int) ([]models.RecentComment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.RecentComment), args.Error(1)
}

func (m *MockCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

type MockPriceLookup struct {
	mock.Mock
}

func (m *MockPriceLookup) ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

type MockOrderWriter struct {
	mock.Mock
}

func (m *MockOrderWriter) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
