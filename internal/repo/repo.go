package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/magazin/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.Comment{},
		&models.Order{},
		&models.OrderLine{},
	); err != nil {
		return err
	}
	return backfillSearchNames(db)
}

// backfillSearchNames fills search_name for rows written before the column
// existed or by tools that bypass the model hooks.
func backfillSearchNames(db *gorm.DB) error {
	var stale []models.Product
	if err := db.Where("search_name = '' AND name <> ''").Find(&stale).Error; err != nil {
		return err
	}
	for i := range stale {
		if err := db.Model(&stale[i]).UpdateColumn("search_name", models.FoldName(stale[i].Name)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
