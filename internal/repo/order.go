package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/magazin/internal/models"
)

// CreateOrder inserts the order header and its lines in one transaction.
// On any error nothing is committed.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	lines := order.Lines
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(order).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Omit("Product").Create(&lines).Error
	})
	if err != nil {
		order.ID = 0
		return err
	}
	order.Lines = lines
	return nil
}
