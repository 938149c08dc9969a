package repo

import (
	"context"

	"github.com/Skotchmaster/magazin/internal/models"
)

func (r *GormRepo) CommentsByProduct(ctx context.Context, productID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *GormRepo) RecentComments(ctx context.Context, limit int) ([]models.RecentComment, error) {
	var recent []models.RecentComment
	if err := r.DB.WithContext(ctx).
		Table("comments AS c").
		Select("c.author, c.text, c.product_id, c.created_at, p.name AS product").
		Joins("JOIN products AS p ON p.id = c.product_id").
		Order("c.created_at DESC, c.id DESC").
		Limit(limit).
		Scan(&recent).Error; err != nil {
		return nil, err
	}
	return recent, nil
}

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}
