package model

// CatalogEntry is one (drink, glass category) observation from the catalog (dim_glasses).
// The same drink seen under two categories yields two rows sharing one DrinkID.
type CatalogEntry struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Drink   string `gorm:"column:drink;type:varchar(255);not null;index" json:"drink"`
	APIID   string `gorm:"column:api_id;type:varchar(32);not null" json:"api_id"`
	Glass   string `gorm:"column:glass;type:varchar(128);not null" json:"glass"`
	DrinkID uint64 `gorm:"column:drink_id;not null;index" json:"drink_id"`
	GlassID uint64 `gorm:"column:glass_id;not null;index" json:"glass_id"`
}

func (CatalogEntry) TableName() string { return "dim_glasses" }

// CatalogDrink is a (display name, external id) pair returned for one category.
type CatalogDrink struct {
	Name  string
	APIID string
}
