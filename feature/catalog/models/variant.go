package models

import (
	"time"

	"gorm.io/gorm"
)

// Variant is a purchasable version of a product, identified by its SKU.
type Variant struct {
	ID            uint           `gorm:"primaryKey;column:id"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
	ProductID     uint           `gorm:"column:product_id;index"`
	SKU           string         `gorm:"column:sku;type:varchar(255);index"`
	TaxCategoryID uint           `gorm:"column:tax_category_id"`

	Translations []VariantTranslation `gorm:"foreignKey:VariantID"`
	Prices       []VariantPrice       `gorm:"foreignKey:VariantID"`
	StockLevels  []StockLevel         `gorm:"foreignKey:VariantID"`
	Collections  []Collection         `gorm:"many2many:collection_variants;"`
	Channels     []Channel            `gorm:"many2many:variant_channels;"`
}

func (Variant) TableName() string {
	return "product_variants"
}

// VariantTranslation holds the language-specific fields of a variant.
type VariantTranslation struct {
	ID           uint   `gorm:"primaryKey;column:id"`
	VariantID    uint   `gorm:"column:variant_id;index"`
	LanguageCode string `gorm:"column:language_code;type:varchar(16)"`
	Name         string `gorm:"column:name;type:varchar(255)"`
}

func (VariantTranslation) TableName() string {
	return "product_variant_translations"
}

// VariantPrice is the price of a variant in one channel, in minor currency units.
type VariantPrice struct {
	ID           uint   `gorm:"primaryKey;column:id"`
	VariantID    uint   `gorm:"column:variant_id;index"`
	ChannelID    uint   `gorm:"column:channel_id;index"`
	CurrencyCode string `gorm:"column:currency_code;type:varchar(8)"`
	Price        int64  `gorm:"column:price"`
}

func (VariantPrice) TableName() string {
	return "product_variant_prices"
}

// StockLevel is the stock of a variant at one location.
type StockLevel struct {
	ID              uint `gorm:"primaryKey;column:id"`
	VariantID       uint `gorm:"column:variant_id;index"`
	StockLocationID uint `gorm:"column:stock_location_id;index"`
	StockOnHand     int  `gorm:"column:stock_on_hand;default:0"`
	StockAllocated  int  `gorm:"column:stock_allocated;default:0"`
}

func (StockLevel) TableName() string {
	return "stock_levels"
}

// Translation returns the translation for lang, or nil.
func (v *Variant) Translation(lang string) *VariantTranslation {
	for i := range v.Translations {
		if v.Translations[i].LanguageCode == lang {
			return &v.Translations[i]
		}
	}
	return nil
}

// PriceIn returns the price row for channelID, or nil.
func (v *Variant) PriceIn(channelID uint) *VariantPrice {
	for i := range v.Prices {
		if v.Prices[i].ChannelID == channelID {
			return &v.Prices[i]
		}
	}
	return nil
}

// InCollection reports whether the variant belongs to a collection named name in lang.
func (v *Variant) InCollection(name, lang string) bool {
	for _, c := range v.Collections {
		if t := c.Translation(lang); t != nil && t.Name == name {
			return true
		}
	}
	return false
}
