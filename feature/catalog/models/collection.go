package models

import "time"

// Collection groups variants selected by its filters.
type Collection struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	IsPrivate bool      `gorm:"column:is_private;default:false"`

	Filters []ConfigurableOperation `gorm:"column:filters;type:text;serializer:json"`

	Translations []CollectionTranslation `gorm:"foreignKey:CollectionID"`
	Variants     []Variant               `gorm:"many2many:collection_variants;"`
}

func (Collection) TableName() string {
	return "collections"
}

type CollectionTranslation struct {
	ID           uint   `gorm:"primaryKey;column:id"`
	CollectionID uint   `gorm:"column:collection_id;index"`
	LanguageCode string `gorm:"column:language_code;type:varchar(16)"`
	Name         string `gorm:"column:name;type:varchar(255);index"`
	Slug         string `gorm:"column:slug;type:varchar(255)"`
}

func (CollectionTranslation) TableName() string {
	return "collection_translations"
}

// Translation returns the translation for lang, or nil.
func (c *Collection) Translation(lang string) *CollectionTranslation {
	for i := range c.Translations {
		if c.Translations[i].LanguageCode == lang {
			return &c.Translations[i]
		}
	}
	return nil
}
