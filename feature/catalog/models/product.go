package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog product, matched to feed items by ExternalID.
type Product struct {
	ID        uint           `gorm:"primaryKey;column:id"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	ExternalID  string  `gorm:"column:webhook_id;type:varchar(255);index"`
	Unit        string  `gorm:"column:unit;type:varchar(64)"`
	Measurement string  `gorm:"column:measurement;type:varchar(64)"`
	BrandID     *uint   `gorm:"column:brand_id"`
	BrandName   *string `gorm:"column:brand_name;type:varchar(255)"` // Nullable

	Brand        *Brand               `gorm:"foreignKey:BrandID"`
	Translations []ProductTranslation `gorm:"foreignKey:ProductID"`
	Variants     []Variant            `gorm:"foreignKey:ProductID"`
	FacetValues  []FacetValue         `gorm:"many2many:product_facet_values;"`
	Channels     []Channel            `gorm:"many2many:product_channels;"`
}

func (Product) TableName() string {
	return "products"
}

// ProductTranslation holds the language-specific fields of a product.
type ProductTranslation struct {
	ID           uint   `gorm:"primaryKey;column:id"`
	ProductID    uint   `gorm:"column:product_id;index"`
	LanguageCode string `gorm:"column:language_code;type:varchar(16)"`
	Name         string `gorm:"column:name;type:varchar(255)"`
	Slug         string `gorm:"column:slug;type:varchar(255);index"`
	Description  string `gorm:"column:description;type:text"`
}

func (ProductTranslation) TableName() string {
	return "product_translations"
}

// Translation returns the translation for lang, or nil.
func (p *Product) Translation(lang string) *ProductTranslation {
	for i := range p.Translations {
		if p.Translations[i].LanguageCode == lang {
			return &p.Translations[i]
		}
	}
	return nil
}

// VariantBySKU returns the variant with the given sku, or nil.
func (p *Product) VariantBySKU(sku string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}

// HasFacetValue reports whether one of the product's facet values is named name in lang.
func (p *Product) HasFacetValue(name, lang string) bool {
	for _, v := range p.FacetValues {
		if t := v.Translation(lang); t != nil && t.Name == name {
			return true
		}
	}
	return false
}
