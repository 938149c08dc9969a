package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID            uint          `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name          string        `gorm:"not null"                  json:"name"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID"     json:"subcategories"`
}

type Subcategory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name       string    `gorm:"not null"                  json:"name"`
	CategoryID uint      `gorm:"index;not null"            json:"category_id"`
	Products   []Product `gorm:"foreignKey:SubcategoryID"  json:"-"`
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"                json:"id"`
	Name          string          `gorm:"not null;index"                          json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price >= 0" json:"price"`
	Image         string          `json:"image"`
	SubcategoryID uint            `gorm:"index;not null"                          json:"subcategory_id"`
	Popular       bool            `gorm:"not null;default:false;index"            json:"popular"`
	// SearchName is the name lowercased with Unicode rules. SQLite's LOWER
	// only folds ASCII, so search compares against this column instead.
	SearchName string `gorm:"not null;default:'';index" json:"-"`
}

func (p *Product) BeforeSave(*gorm.DB) error {
	p.SearchName = FoldName(p.Name)
	return nil
}

// FoldName is the case folding shared by stored names and search queries.
func FoldName(s string) string {
	return strings.ToLower(s)
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	ProductID uint      `gorm:"index;not null"            json:"product_id"`
	Author    string    `gorm:"not null"                  json:"author"`
	Text      string    `gorm:"not null"                  json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"      json:"created_at"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// RecentComment is a comment joined with the name of its product.
type RecentComment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	ProductID uint      `json:"product_id"`
	Product   string    `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name       string          `gorm:"not null"                  json:"name"`
	Phone      string          `gorm:"not null"                  json:"phone"`
	Address    string          `gorm:"not null"                  json:"address"`
	Comment    string          `json:"comment"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"            json:"created_at"`
	Lines      []OrderLine     `gorm:"foreignKey:OrderID"        json:"lines"`
}

type OrderLine struct {
	OrderID   uint            `gorm:"primaryKey;autoIncrement:false"  json:"order_id"`
	ProductID uint            `gorm:"primaryKey;autoIncrement:false"  json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity > 0"     json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"     json:"unit_price"`
	Product   *Product        `json:"-"`
}

func (OrderLine) TableName() string {
	return "order_products"
}
