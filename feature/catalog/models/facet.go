package models

// Facet groups facet values, e.g. "Type".
type Facet struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	Code      string `gorm:"column:code;type:varchar(255);index"`
	IsPrivate bool   `gorm:"column:is_private;default:false"`

	Translations []FacetTranslation `gorm:"foreignKey:FacetID"`
	Values       []FacetValue       `gorm:"foreignKey:FacetID"`
}

func (Facet) TableName() string {
	return "facets"
}

type FacetTranslation struct {
	ID           uint   `gorm:"primaryKey;column:id"`
	FacetID      uint   `gorm:"column:facet_id;index"`
	LanguageCode string `gorm:"column:language_code;type:varchar(16)"`
	Name         string `gorm:"column:name;type:varchar(255);index"`
}

func (FacetTranslation) TableName() string {
	return "facet_translations"
}

// FacetValue is a tag under a facet, e.g. "Electronics".
type FacetValue struct {
	ID      uint   `gorm:"primaryKey;column:id"`
	FacetID uint   `gorm:"column:facet_id;index"`
	Code    string `gorm:"column:code;type:varchar(255);index"`

	Facet        *Facet                  `gorm:"foreignKey:FacetID"`
	Translations []FacetValueTranslation `gorm:"foreignKey:FacetValueID"`
}

func (FacetValue) TableName() string {
	return "facet_values"
}

type FacetValueTranslation struct {
	ID           uint   `gorm:"primaryKey;column:id"`
	FacetValueID uint   `gorm:"column:facet_value_id;index"`
	LanguageCode string `gorm:"column:language_code;type:varchar(16)"`
	Name         string `gorm:"column:name;type:varchar(255);index"`
}

func (FacetValueTranslation) TableName() string {
	return "facet_value_translations"
}

// Translation returns the translation for lang, or nil.
func (f *Facet) Translation(lang string) *FacetTranslation {
	for i := range f.Translations {
		if f.Translations[i].LanguageCode == lang {
			return &f.Translations[i]
		}
	}
	return nil
}

// Translation returns the translation for lang, or nil.
func (v *FacetValue) Translation(lang string) *FacetValueTranslation {
	for i := range v.Translations {
		if v.Translations[i].LanguageCode == lang {
			return &v.Translations[i]
		}
	}
	return nil
}
