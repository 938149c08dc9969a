package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/magazin/internal/models"
)

type seedProduct struct {
	name    string
	price   string
	image   string
	popular bool
}

type seedSubcategory struct {
	name     string
	products []seedProduct
}

type seedCategory struct {
	name string
	subs []seedSubcategory
}

var demoCatalog = []seedCategory{
	{name: "Kitchen", subs: []seedSubcategory{
		{name: "Mugs", products: []seedProduct{
			{name: "Red Mug", price: "10.00", image: "red-mug.jpg", popular: true},
			{name: "Blue Mug", price: "9.50", image: "blue-mug.jpg"},
		}},
		{name: "Teapots", products: []seedProduct{
			{name: "Glass Teapot", price: "24.90", image: "glass-teapot.jpg", popular: true},
		}},
	}},
	{name: "Home", subs: []seedSubcategory{
		{name: "Candles", products: []seedProduct{
			{name: "Vanilla Candle", price: "4.50", image: "vanilla-candle.jpg", popular: true},
			{name: "Cedar Candle", price: "5.20", image: "cedar-candle.jpg"},
		}},
		{name: "Textiles", products: []seedProduct{
			{name: "Linen Towel", price: "12.00", image: "linen-towel.jpg", popular: true},
		}},
	}},
}

// SeedDemo fills an empty catalog with a small demo assortment. It does
// nothing when any category exists.
func (r *GormRepo) SeedDemo(ctx context.Context) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sc := range demoCatalog {
			category := models.Category{Name: sc.name}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			for _, ss := range sc.subs {
				sub := models.Subcategory{Name: ss.name, CategoryID: category.ID}
				if err := tx.Create(&sub).Error; err != nil {
					return err
				}
				for _, sp := range ss.products {
					p := models.Product{
						Name:          sp.name,
						Price:         decimal.RequireFromString(sp.price),
						Image:         sp.image,
						SubcategoryID: sub.ID,
						Popular:       sp.popular,
					}
					if err := tx.Create(&p).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
