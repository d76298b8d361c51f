package model

import "gorm.io/datatypes"

// InventoryItem is one row of the bar inventory table (bar_data).
type InventoryItem struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"` // row number in the source file
	Location   string         `gorm:"column:location;type:varchar(64);not null;index" json:"location"`
	GlassType  string         `gorm:"column:glass_type;type:varchar(128);not null" json:"glass_type"`
	Stock      int64          `gorm:"column:stock;not null;default:0" json:"stock"`
	GlassID    uint64         `gorm:"column:glass_id;not null;default:0;index" json:"glass_id"` // 0 = no catalog match
	Attributes datatypes.JSON `gorm:"column:attributes" json:"attributes,omitempty"`            // unrecognised source columns
}

func (InventoryItem) TableName() string { return "bar_data" }
