package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product entity for the development server
type Product struct {
	ID          uuid.UUID       `json:"ID" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"Name" gorm:"not null"`
	Description string          `json:"Description"`
	Price       decimal.Decimal `json:"Price" gorm:"type:decimal(10,2);not null"`
	Category    string          `json:"Category" gorm:"not null"`
	InStock     bool            `json:"InStock"`
	Rating      *int            `json:"Rating"`
	CreatedAt   time.Time       `json:"CreatedAt"`
}

// BeforeCreate assigns a random ID to products created without one.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// productColumns maps the property names used in queries to column names.
var productColumns = map[string]string{
	"ID":          "id",
	"Name":        "name",
	"Description": "description",
	"Price":       "price",
	"Category":    "category",
	"InStock":     "in_stock",
	"Rating":      "rating",
	"CreatedAt":   "created_at",
}

func rating(v int) *int { return &v }

// GetSampleProducts returns sample product data for seeding the database
func GetSampleProducts() []Product {
	created := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

	return []Product{
		{
			Name:        "Laptop",
			Description: "High-performance laptop for productivity and gaming",
			Price:       decimal.RequireFromString("999.99"),
			Category:    "Electronics",
			InStock:     true,
			Rating:      rating(5),
			CreatedAt:   created,
		},
		{
			Name:        "Wireless Mouse",
			Description: "Ergonomic wireless mouse with precision tracking",
			Price:       decimal.RequireFromString("29.99"),
			Category:    "Electronics",
			InStock:     true,
			Rating:      rating(4),
			CreatedAt:   created.AddDate(0, 1, 0),
		},
		{
			Name:        "Coffee Mug",
			Description: "Ceramic coffee mug with heat retention technology",
			Price:       decimal.RequireFromString("15.50"),
			Category:    "Kitchen",
			InStock:     false,
			CreatedAt:   created.AddDate(0, 2, 0),
		},
		{
			Name:        "Office Chair",
			Description: "Ergonomic office chair with lumbar support",
			Price:       decimal.RequireFromString("249.99"),
			Category:    "Furniture",
			InStock:     true,
			Rating:      rating(3),
			CreatedAt:   created.AddDate(0, 3, 0),
		},
		{
			Name:        "Smartphone",
			Description: "Latest generation smartphone with advanced camera",
			Price:       decimal.RequireFromString("799.99"),
			Category:    "Electronics",
			InStock:     true,
			Rating:      rating(5),
			CreatedAt:   created.AddDate(0, 4, 0),
		},
		{
			Name:        "50% Off Voucher",
			Description: "Discount voucher for the kitchen department",
			Price:       decimal.RequireFromString("10.00"),
			Category:    "Vouchers",
			InStock:     true,
			CreatedAt:   created.AddDate(0, 5, 0),
		},
	}
}

// seedDatabase replaces all products with the sample data.
func seedDatabase(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Product{}).Error; err != nil {
		return err
	}
	products := GetSampleProducts()
	return db.Create(&products).Error
}
