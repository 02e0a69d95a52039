package models

import "time"

// Channel is a sales channel. Exactly one channel is marked as default.
type Channel struct {
	ID              uint   `gorm:"primaryKey;column:id"`
	Code            string `gorm:"column:code;type:varchar(64);uniqueIndex"`
	DefaultLanguage string `gorm:"column:default_language_code;type:varchar(16);default:en"`
	DefaultCurrency string `gorm:"column:default_currency_code;type:varchar(8);default:USD"`
	IsDefault       bool   `gorm:"column:is_default;default:false"`
}

func (Channel) TableName() string {
	return "channels"
}

// TaxCategory classifies variants for tax purposes.
type TaxCategory struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	Name      string `gorm:"column:name;type:varchar(255)"`
	IsDefault bool   `gorm:"column:is_default;default:false"`
}

func (TaxCategory) TableName() string {
	return "tax_categories"
}

// StockLocation is a place where stock is held.
type StockLocation struct {
	ID   uint   `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;type:varchar(255)"`
}

func (StockLocation) TableName() string {
	return "stock_locations"
}

// Brand priorities.
const (
	PriorityLow    = 0
	PriorityNormal = 1
	PriorityHigh   = 2
)

// Brand is a manufacturer referenced by products.
type Brand struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Name      string    `gorm:"column:name;type:varchar(255);index"`
	Priority  int       `gorm:"column:priority;default:0"`
}

func (Brand) TableName() string {
	return "brands"
}
