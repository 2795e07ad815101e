package models

// Medicine is a pharmacy inventory item
type Medicine struct {
	BaseModel
	Name         string  `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Stock        int     `gorm:"default:0;not null" json:"stock"`
	SoldUnits    int     `gorm:"default:0;not null" json:"soldUnits"`
	BuyingPrice  float64 `gorm:"not null" json:"buyingPrice"`
	SellingPrice float64 `gorm:"not null" json:"sellingPrice"`
	Unit         string  `gorm:"size:50;default:'tablet';not null" json:"unit"`
}
